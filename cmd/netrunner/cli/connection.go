// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/config"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/session"
	"github.com/netrunner-host/netrunner/lib/tokenstore"
)

// Connection holds the flags shared by every command that talks to the
// API. Embed it in a parameter struct; [BindFlags] registers its flags
// through AddFlags.
type Connection struct {
	ConfigPath string
	APIURL     string

	// Ephemeral keeps tokens in memory for this process only. The
	// interactive client exposes it as a flag; CLI commands leave it
	// off so sessions persist between invocations.
	Ephemeral bool
}

func (c *Connection) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigPath, "config", "", "configuration file (YAML, or JSONC with a .jsonc extension)")
	flagSet.StringVar(&c.APIURL, "api-url", "", "API base URL, overriding the configuration")
}

// Connected is an opened connection.
type Connected struct {
	Config  *config.Config
	Tokens  tokenstore.Store
	Client  *api.Client
	Session *session.Controller
}

// Open loads the configuration, opens the token store, and builds the
// client. Nothing is sent to the server.
func (c *Connection) Open(logger *slog.Logger) (*Connected, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, Validation("%w", err)
	}
	if c.APIURL != "" {
		cfg.API.BaseURL = c.APIURL
	}
	if c.Ephemeral {
		cfg.Storage.Ephemeral = true
	}
	tokens, err := cfg.OpenTokenStore()
	if err != nil {
		return nil, Internal("opening token store: %w", err)
	}
	client := api.New(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.Timeout(),
		Tokens:  tokens,
		Logger:  logger,
	})
	return &Connected{
		Config:  cfg,
		Tokens:  tokens,
		Client:  client,
		Session: session.New(client, tokens, logger),
	}, nil
}

// RequireCustomer fails unless a customer token is stored.
func (c *Connected) RequireCustomer() error {
	if _, ok := c.Tokens.Get(account.RoleCustomer); !ok {
		return Forbidden("not logged in").WithHint(`Run "netrunner login <access-code>" first.`)
	}
	return nil
}

// RequireAdmin fails unless an administrator token is stored. The
// token is not verified; a revoked one surfaces as a failed request.
func (c *Connected) RequireAdmin() error {
	if _, ok := c.Tokens.Get(account.RoleAdmin); !ok {
		return Forbidden("not logged in as administrator").WithHint(`Run "netrunner admin login --username NAME" first.`)
	}
	return nil
}

// CallContext bounds one command's API calls.
func CallContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 30*time.Second)
}
