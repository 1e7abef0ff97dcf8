// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package moderation

import (
	"context"
	"fmt"
	"slices"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/clock"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
	"github.com/netrunner-host/netrunner/lib/support"
)

// Tab is a section of the administrator console.
type Tab string

const (
	TabUsers   Tab = "users"
	TabTickets Tab = "tickets"
)

// Tabs lists the console sections in display order.
var Tabs = []Tab{TabUsers, TabTickets}

// Kind identifies what a staged action deletes.
type Kind string

const (
	KindUser   Kind = "user"
	KindTicket Kind = "ticket"
)

// Action is a delete waiting for confirmation.
type Action struct {
	Kind     Kind
	TargetID string
	Title    string
	Prompt   string
}

func stage(kind Kind, targetID string) Action {
	switch kind {
	case KindUser:
		return Action{
			Kind:     kind,
			TargetID: targetID,
			Title:    "Delete User",
			Prompt:   "Are you sure you want to delete this user? This action cannot be undone.",
		}
	default:
		return Action{
			Kind:     kind,
			TargetID: targetID,
			Title:    "Delete Ticket",
			Prompt:   "Are you sure you want to delete this ticket? This action cannot be undone.",
		}
	}
}

// Gateway is the subset of the administrator API the console needs
// beyond the ticket workflow. *api.AdminClient satisfies it.
type Gateway interface {
	ListUsers(ctx context.Context) ([]account.User, bool)
	DeleteUser(ctx context.Context, userID string) bool
	DeleteTicket(ctx context.Context, ticketID string) bool
}

var _ Gateway = (*api.AdminClient)(nil)

// Workflow is the state of one administrator console activation.
type Workflow struct {
	gateway Gateway

	Users   []account.User
	Tickets *support.Workflow
	Tab     Tab

	// Staged is the delete awaiting confirmation, or nil.
	Staged *Action

	Busy   bool
	Failed bool
}

// New builds a console over an administrator client.
func New(client *api.AdminClient, clk clock.Clock) *Workflow {
	return NewWorkflow(client, support.New(support.AdminGateway{Client: client}, clk))
}

// NewWorkflow builds a console from its parts. tickets must list every
// ticket (scope all).
func NewWorkflow(gateway Gateway, tickets *support.Workflow) *Workflow {
	return &Workflow{
		gateway: gateway,
		Users:   []account.User{},
		Tickets: tickets,
		Tab:     TabUsers,
	}
}

// SelectTab switches the active tab without fetching. Moving to the
// users tab drops any open ticket.
func (workflow *Workflow) SelectTab(tab Tab) {
	workflow.Tab = tab
	if tab == TabUsers {
		workflow.Tickets.Deselect()
	}
}

// Activate switches to tab and refetches its list.
func (workflow *Workflow) Activate(ctx context.Context, tab Tab) bool {
	workflow.SelectTab(tab)
	if tab == TabTickets {
		return workflow.Tickets.ListTickets(ctx)
	}
	return workflow.ListUsers(ctx)
}

// --- Users ---

// UsersResult is the outcome of FetchUsers.
type UsersResult struct {
	Users []account.User
	OK    bool
}

// FetchUsers retrieves the user list without touching state.
func (workflow *Workflow) FetchUsers(ctx context.Context) UsersResult {
	users, ok := workflow.gateway.ListUsers(ctx)
	return UsersResult{Users: users, OK: ok}
}

// CompleteListUsers replaces the user list on success and keeps the
// previous one on failure.
func (workflow *Workflow) CompleteListUsers(result UsersResult) bool {
	workflow.Busy = false
	workflow.Failed = !result.OK
	if !result.OK {
		return false
	}
	workflow.Users = result.Users
	return true
}

// ListUsers fetches and applies the user list.
func (workflow *Workflow) ListUsers(ctx context.Context) bool {
	workflow.Busy = true
	return workflow.CompleteListUsers(workflow.FetchUsers(ctx))
}

// FindUser returns the listed user with id.
func (workflow *Workflow) FindUser(userID string) (account.User, bool) {
	index := slices.IndexFunc(workflow.Users, func(user account.User) bool { return user.ID == userID })
	if index < 0 {
		return account.User{}, false
	}
	return workflow.Users[index], true
}

// --- Staged deletes ---

// StageDeleteUser stages deletion of a user. A previously staged
// action is replaced.
func (workflow *Workflow) StageDeleteUser(userID string) {
	action := stage(KindUser, userID)
	workflow.Staged = &action
}

// StageDeleteTicket stages deletion of a ticket.
func (workflow *Workflow) StageDeleteTicket(ticketID string) {
	action := stage(KindTicket, ticketID)
	workflow.Staged = &action
}

// Cancel discards the staged action.
func (workflow *Workflow) Cancel() { workflow.Staged = nil }

// DeleteResult is the outcome of Execute.
type DeleteResult struct {
	Action Action
	OK     bool
}

// Take removes and returns the staged action so it can be executed off
// the event loop. ok is false when nothing was staged.
func (workflow *Workflow) Take() (Action, bool) {
	if workflow.Staged == nil {
		return Action{}, false
	}
	action := *workflow.Staged
	workflow.Staged = nil
	workflow.Busy = true
	return action, true
}

// Execute performs action against the server without touching state.
func (workflow *Workflow) Execute(ctx context.Context, action Action) DeleteResult {
	var ok bool
	switch action.Kind {
	case KindUser:
		ok = workflow.gateway.DeleteUser(ctx, action.TargetID)
	case KindTicket:
		ok = workflow.gateway.DeleteTicket(ctx, action.TargetID)
	}
	return DeleteResult{Action: action, OK: ok}
}

// CompleteDelete removes the deleted entry from its list. A failed
// delete leaves both lists unchanged.
func (workflow *Workflow) CompleteDelete(result DeleteResult) bool {
	workflow.Busy = false
	workflow.Failed = !result.OK
	if !result.OK {
		return false
	}
	switch result.Action.Kind {
	case KindUser:
		workflow.Users = slices.DeleteFunc(workflow.Users, func(user account.User) bool {
			return user.ID == result.Action.TargetID
		})
	case KindTicket:
		workflow.Tickets.RemoveTicket(result.Action.TargetID)
	}
	return true
}

// Confirm executes the staged action once. It returns false when
// nothing was staged or the server refused.
func (workflow *Workflow) Confirm(ctx context.Context) bool {
	action, ok := workflow.Take()
	if !ok {
		return false
	}
	return workflow.CompleteDelete(workflow.Execute(ctx, action))
}

// UpdateStatus changes a ticket's status through the ticket workflow.
func (workflow *Workflow) UpdateStatus(ctx context.Context, ticketID string, status ticket.Status) error {
	if err := workflow.Tickets.UpdateStatus(ctx, ticketID, status); err != nil {
		return fmt.Errorf("updating ticket %s: %w", ticketID, err)
	}
	return nil
}
