// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"context"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
)

// Scope names which tickets a workflow lists.
type Scope string

const (
	// ScopeOwn lists the caller's own tickets (customer).
	ScopeOwn Scope = "own"
	// ScopeAll lists every ticket (administrator).
	ScopeAll Scope = "all"
)

// Gateway is the role-specific API surface a Workflow uses.
type Gateway interface {
	// Author is who messages posted through this gateway come from.
	Author() ticket.Author
	Scope() Scope

	ListTickets(ctx context.Context) ([]ticket.Ticket, bool)
	ListMessages(ctx context.Context, ticketID string) ([]ticket.Message, bool)
	PostMessage(ctx context.Context, ticketID, content string) bool
}

// Creator is implemented by gateways whose role may open tickets.
type Creator interface {
	CreateTicket(ctx context.Context, title, description string) (ticket.Ticket, bool)
}

// StatusUpdater is implemented by gateways whose role may change a
// ticket's status.
type StatusUpdater interface {
	UpdateTicketStatus(ctx context.Context, ticketID string, status ticket.Status) bool
}

// CustomerGateway adapts api.CustomerClient.
type CustomerGateway struct {
	Client *api.CustomerClient
}

func (gateway CustomerGateway) Author() ticket.Author { return ticket.AuthorCustomer }
func (gateway CustomerGateway) Scope() Scope          { return ScopeOwn }

func (gateway CustomerGateway) ListTickets(ctx context.Context) ([]ticket.Ticket, bool) {
	return gateway.Client.ListOwnTickets(ctx)
}

func (gateway CustomerGateway) ListMessages(ctx context.Context, ticketID string) ([]ticket.Message, bool) {
	return gateway.Client.ListMessages(ctx, ticketID)
}

func (gateway CustomerGateway) PostMessage(ctx context.Context, ticketID, content string) bool {
	return gateway.Client.PostMessage(ctx, ticketID, content)
}

func (gateway CustomerGateway) CreateTicket(ctx context.Context, title, description string) (ticket.Ticket, bool) {
	return gateway.Client.CreateTicket(ctx, title, description)
}

// AdminGateway adapts api.AdminClient.
type AdminGateway struct {
	Client *api.AdminClient
}

func (gateway AdminGateway) Author() ticket.Author { return ticket.AuthorAdmin }
func (gateway AdminGateway) Scope() Scope          { return ScopeAll }

func (gateway AdminGateway) ListTickets(ctx context.Context) ([]ticket.Ticket, bool) {
	return gateway.Client.ListTickets(ctx)
}

func (gateway AdminGateway) ListMessages(ctx context.Context, ticketID string) ([]ticket.Message, bool) {
	return gateway.Client.ListMessages(ctx, ticketID)
}

func (gateway AdminGateway) PostMessage(ctx context.Context, ticketID, content string) bool {
	return gateway.Client.PostMessage(ctx, ticketID, content)
}

func (gateway AdminGateway) UpdateTicketStatus(ctx context.Context, ticketID string, status ticket.Status) bool {
	return gateway.Client.UpdateTicketStatus(ctx, ticketID, status)
}

var (
	_ Gateway       = CustomerGateway{}
	_ Creator       = CustomerGateway{}
	_ Gateway       = AdminGateway{}
	_ StatusUpdater = AdminGateway{}
)
