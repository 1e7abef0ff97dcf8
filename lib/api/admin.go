// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"

	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
)

// AdminClient issues administrator operations. Bearer operations use
// the admin token slot.
type AdminClient struct {
	client *Client
}

// Login exchanges administrator credentials for an admin token.
func (admin *AdminClient) Login(ctx context.Context, username, password string) (string, bool) {
	var response tokenResponse
	ok := admin.client.do(ctx, call{
		operation: "admin-login",
		method:    http.MethodPost,
		path:      "/admin/login",
		body:      map[string]string{"username": username, "password": password},
		result:    &response,
	})
	if !ok || response.Token == "" {
		return "", false
	}
	return response.Token, true
}

// VerifySession asks the server whether the stored admin token still
// carries administrator rights.
func (admin *AdminClient) VerifySession(ctx context.Context) bool {
	var response struct {
		IsAdmin bool `json:"isAdmin"`
	}
	ok := admin.client.do(ctx, call{
		operation: "verify-admin",
		method:    http.MethodGet,
		path:      "/admin/profile",
		identity:  account.RoleAdmin,
		result:    &response,
	})
	return ok && response.IsAdmin
}

// ListUsers returns every customer account.
func (admin *AdminClient) ListUsers(ctx context.Context) ([]account.User, bool) {
	var users []account.User
	ok := admin.client.do(ctx, call{
		operation: "list-users",
		method:    http.MethodGet,
		path:      "/admin/users",
		identity:  account.RoleAdmin,
		result:    &users,
	})
	if !ok {
		return []account.User{}, false
	}
	return nonNil(users), true
}

// DeleteUser removes a customer account.
func (admin *AdminClient) DeleteUser(ctx context.Context, userID string) bool {
	return admin.client.do(ctx, call{
		operation:  "delete-user",
		method:     http.MethodDelete,
		path:       "/admin/users/{id}",
		pathParams: map[string]string{"id": userID},
		identity:   account.RoleAdmin,
	})
}

// ListTickets returns every ticket of every customer.
func (admin *AdminClient) ListTickets(ctx context.Context) ([]ticket.Ticket, bool) {
	var tickets []ticket.Ticket
	ok := admin.client.do(ctx, call{
		operation: "list-all-tickets",
		method:    http.MethodGet,
		path:      "/admin/tickets",
		identity:  account.RoleAdmin,
		result:    &tickets,
	})
	if !ok {
		return []ticket.Ticket{}, false
	}
	return nonNil(tickets), true
}

// UpdateTicketStatus sets a ticket's lifecycle status.
func (admin *AdminClient) UpdateTicketStatus(ctx context.Context, ticketID string, status ticket.Status) bool {
	return admin.client.do(ctx, call{
		operation:  "update-ticket-status",
		method:     http.MethodPut,
		path:       "/admin/tickets/{id}/status",
		pathParams: map[string]string{"id": ticketID},
		identity:   account.RoleAdmin,
		body:       map[string]string{"status": string(status)},
	})
}

// DeleteTicket removes a ticket and its thread.
func (admin *AdminClient) DeleteTicket(ctx context.Context, ticketID string) bool {
	return admin.client.do(ctx, call{
		operation:  "delete-ticket",
		method:     http.MethodDelete,
		path:       "/admin/tickets/{id}",
		pathParams: map[string]string{"id": ticketID},
		identity:   account.RoleAdmin,
	})
}

// ListMessages returns a ticket's thread through the admin endpoint.
func (admin *AdminClient) ListMessages(ctx context.Context, ticketID string) ([]ticket.Message, bool) {
	var messages []ticket.Message
	ok := admin.client.do(ctx, call{
		operation:  "admin-list-messages",
		method:     http.MethodGet,
		path:       "/tickets/{id}/messages/admin",
		pathParams: map[string]string{"id": ticketID},
		identity:   account.RoleAdmin,
		result:     &messages,
	})
	if !ok {
		return []ticket.Message{}, false
	}
	return nonNil(messages), true
}

// PostMessage appends content to a ticket's thread as an administrator.
func (admin *AdminClient) PostMessage(ctx context.Context, ticketID, content string) bool {
	return admin.client.do(ctx, call{
		operation:  "admin-post-message",
		method:     http.MethodPost,
		path:       "/tickets/{id}/messages/admin",
		pathParams: map[string]string{"id": ticketID},
		identity:   account.RoleAdmin,
		body:       map[string]string{"content": content},
	})
}
