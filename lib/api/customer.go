// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
)

// CustomerClient issues customer-role operations. Bearer operations use
// the customer token slot.
type CustomerClient struct {
	client *Client
}

// codeResponse accepts the code as a JSON string or number.
type codeResponse struct {
	Code json.RawMessage `json:"code"`
}

func (response codeResponse) accessCode() account.AccessCode {
	if len(response.Code) == 0 || string(response.Code) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(response.Code, &text); err == nil {
		return account.AccessCode(text)
	}
	return account.AccessCode(response.Code)
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RequestAccessCode asks the server to mint a new customer account and
// returns its access code. Unauthenticated.
func (customer *CustomerClient) RequestAccessCode(ctx context.Context) (account.AccessCode, bool) {
	var response codeResponse
	ok := customer.client.do(ctx, call{
		operation: "request-access-code",
		method:    http.MethodPost,
		path:      "/auth/generate",
		result:    &response,
	})
	code := response.accessCode()
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

// Login exchanges a normalized access code for a customer token.
// The token is not stored; that is the session layer's job.
func (customer *CustomerClient) Login(ctx context.Context, code account.AccessCode) (string, bool) {
	var response tokenResponse
	ok := customer.client.do(ctx, call{
		operation: "customer-login",
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      map[string]string{"code": string(code)},
		result:    &response,
	})
	if !ok || response.Token == "" {
		return "", false
	}
	return response.Token, true
}

// OwnCode returns the authenticated customer's access code.
func (customer *CustomerClient) OwnCode(ctx context.Context) (account.AccessCode, bool) {
	var response codeResponse
	ok := customer.client.do(ctx, call{
		operation: "own-code",
		method:    http.MethodGet,
		path:      "/auth/my-code",
		identity:  account.RoleCustomer,
		result:    &response,
	})
	code := response.accessCode()
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

// ListOwnTickets returns the customer's tickets in server order.
func (customer *CustomerClient) ListOwnTickets(ctx context.Context) ([]ticket.Ticket, bool) {
	var tickets []ticket.Ticket
	ok := customer.client.do(ctx, call{
		operation: "list-own-tickets",
		method:    http.MethodGet,
		path:      "/tickets/list",
		identity:  account.RoleCustomer,
		result:    &tickets,
	})
	if !ok {
		return []ticket.Ticket{}, false
	}
	return nonNil(tickets), true
}

// CreateTicket opens a ticket. Callers validate title and description
// first; the server is not relied on to reject empty fields.
func (customer *CustomerClient) CreateTicket(ctx context.Context, title, description string) (ticket.Ticket, bool) {
	var created ticket.Ticket
	ok := customer.client.do(ctx, call{
		operation: "create-ticket",
		method:    http.MethodPost,
		path:      "/tickets/open",
		identity:  account.RoleCustomer,
		body:      map[string]string{"title": title, "description": description},
		result:    &created,
	})
	if !ok {
		return ticket.Ticket{}, false
	}
	return created, true
}

// ListMessages returns a ticket's thread in creation order.
func (customer *CustomerClient) ListMessages(ctx context.Context, ticketID string) ([]ticket.Message, bool) {
	var messages []ticket.Message
	ok := customer.client.do(ctx, call{
		operation:  "list-messages",
		method:     http.MethodGet,
		path:       "/tickets/{id}/messages",
		pathParams: map[string]string{"id": ticketID},
		identity:   account.RoleCustomer,
		result:     &messages,
	})
	if !ok {
		return []ticket.Message{}, false
	}
	return nonNil(messages), true
}

// PostMessage appends content to a ticket's thread as the customer.
func (customer *CustomerClient) PostMessage(ctx context.Context, ticketID, content string) bool {
	return customer.client.do(ctx, call{
		operation:  "post-message",
		method:     http.MethodPost,
		path:       "/tickets/{id}/messages",
		pathParams: map[string]string{"id": ticketID},
		identity:   account.RoleCustomer,
		body:       map[string]string{"content": content},
	})
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
