// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/tokenstore"
	"github.com/netrunner-host/netrunner/lib/version"
)

// RequestIDHeader carries a fresh UUID on every request so client and
// server logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. https://ne7runner.ru/api.
	BaseURL string

	// Timeout bounds each request. Zero leaves the transport default.
	Timeout time.Duration

	// Tokens supplies bearer tokens for authenticated operations.
	Tokens tokenstore.Store

	// Logger receives one WARN record per failed operation. Nil
	// discards.
	Logger *slog.Logger

	// Transport overrides the HTTP transport. Tests leave it nil and
	// point BaseURL at an httptest server.
	Transport http.RoundTripper
}

// Client is the shared transport behind CustomerClient and AdminClient.
type Client struct {
	http   *resty.Client
	tokens tokenstore.Store
	logger *slog.Logger
}

// New creates a Client. Retries are disabled: a failed operation is
// reported once and the user decides whether to try again.
func New(options Options) *Client {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	httpClient := resty.New().
		SetBaseURL(options.BaseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent()).
		SetLogger(restyLogger{logger: logger})
	if options.Timeout > 0 {
		httpClient.SetTimeout(options.Timeout)
	}
	if options.Transport != nil {
		httpClient.SetTransport(options.Transport)
	}

	return &Client{
		http:   httpClient,
		tokens: options.Tokens,
		logger: logger,
	}
}

// Customer returns the customer-role operations.
func (client *Client) Customer() *CustomerClient {
	return &CustomerClient{client: client}
}

// Admin returns the administrator-role operations.
func (client *Client) Admin() *AdminClient {
	return &AdminClient{client: client}
}

// call describes one API operation.
type call struct {
	// operation names the call in log records.
	operation string
	method    string
	path      string

	// pathParams fill {name} placeholders in path. resty escapes
	// the values.
	pathParams map[string]string

	// identity selects the bearer token slot. Empty means the call is
	// unauthenticated.
	identity account.Role

	body   any
	result any
}

// do executes c and reports whether it succeeded. It never returns the
// reason: failures are logged here and collapse to false.
func (client *Client) do(ctx context.Context, c call) bool {
	requestID := uuid.NewString()
	logger := client.logger.With(
		"operation", c.operation,
		"request_id", requestID,
	)

	request := client.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID)

	if c.identity != "" {
		token, ok := client.tokens.Get(c.identity)
		if !ok {
			logger.Warn("api call skipped: no stored token", "identity", string(c.identity))
			return false
		}
		request.SetAuthToken(token)
	}
	if c.pathParams != nil {
		request.SetPathParams(c.pathParams)
	}
	if c.body != nil {
		request.SetHeader("Content-Type", "application/json").SetBody(c.body)
	}

	response, err := request.Execute(c.method, c.path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("api call cancelled")
			return false
		}
		logger.Warn("api call failed", "status", 0, "error", err)
		return false
	}
	if !response.IsSuccess() {
		logger.Warn("api call rejected",
			"status", response.StatusCode(),
			"body", truncate(response.String(), 200),
		)
		return false
	}

	if c.result != nil {
		body := response.Body()
		if len(body) == 0 {
			logger.Warn("api response empty", "status", response.StatusCode())
			return false
		}
		if err := json.Unmarshal(body, c.result); err != nil {
			logger.Warn("api response undecodable", "status", response.StatusCode(), "error", err)
			return false
		}
	}

	logger.Debug("api call succeeded", "status", response.StatusCode())
	return true
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// restyLogger routes resty's internal diagnostics into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error("resty: " + fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn("resty: " + fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug("resty: " + fmt.Sprintf(format, v...))
}
