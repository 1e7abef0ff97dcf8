// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/netrunner-host/netrunner/lib/clock"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
	"github.com/netrunner-host/netrunner/lib/tui"
)

var (
	// ErrTitleRequired rejects a ticket draft with a blank title.
	ErrTitleRequired = errors.New("title is required")
	// ErrDescriptionRequired rejects a ticket draft with a blank
	// description.
	ErrDescriptionRequired = errors.New("description is required")
	// ErrEmptyMessage rejects a blank reply.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrRejected reports that the server did not accept an operation.
	// The reason is logged by the API client, not returned.
	ErrRejected = errors.New("request failed")
	// ErrForbidden reports an operation the workflow's role may not
	// perform.
	ErrForbidden = errors.New("not permitted for this role")
	// ErrInvalidStatus rejects a status outside open/in_progress/closed.
	ErrInvalidStatus = errors.New("invalid ticket status")
	// ErrNoSelection reports an operation that needs a selected ticket.
	ErrNoSelection = errors.New("no ticket selected")
)

// Workflow is the ticket state of one view.
type Workflow struct {
	gateway Gateway
	clock   clock.Clock

	// Tickets is the last successfully fetched list, in server order.
	Tickets []ticket.Ticket

	// Selected is the focused ticket, nil when none.
	Selected *ticket.Ticket

	// Messages is the thread of Selected. Empty when nothing is
	// selected or the thread has not loaded yet.
	Messages []ticket.Message

	// Busy is true while an operation dispatched with MarkBusy is in
	// flight.
	Busy bool

	// Failed is set when the last completed operation failed, and
	// cleared by the next success.
	Failed bool
}

// New creates a workflow over gateway.
func New(gateway Gateway, clk clock.Clock) *Workflow {
	return &Workflow{
		gateway:  gateway,
		clock:    clk,
		Tickets:  []ticket.Ticket{},
		Messages: []ticket.Message{},
	}
}

// Scope reports whether the workflow lists own or all tickets.
func (workflow *Workflow) Scope() Scope { return workflow.gateway.Scope() }

// Author is the author of messages this workflow posts.
func (workflow *Workflow) Author() ticket.Author { return workflow.gateway.Author() }

// CanCreate reports whether the role may open tickets.
func (workflow *Workflow) CanCreate() bool {
	_, ok := workflow.gateway.(Creator)
	return ok
}

// CanUpdateStatus reports whether the role may change ticket status.
func (workflow *Workflow) CanUpdateStatus() bool {
	_, ok := workflow.gateway.(StatusUpdater)
	return ok
}

// MarkBusy flags an operation as in flight. The matching Complete call
// clears it.
func (workflow *Workflow) MarkBusy() { workflow.Busy = true }

func (workflow *Workflow) settle(ok bool) {
	workflow.Busy = false
	workflow.Failed = !ok
}

// --- Ticket list ---

// TicketsResult is the outcome of FetchTickets.
type TicketsResult struct {
	Tickets []ticket.Ticket
	OK      bool
}

// FetchTickets retrieves the ticket list without touching state.
func (workflow *Workflow) FetchTickets(ctx context.Context) TicketsResult {
	tickets, ok := workflow.gateway.ListTickets(ctx)
	return TicketsResult{Tickets: tickets, OK: ok}
}

// CompleteListTickets replaces the list on success. On failure the
// previous list is kept. A selected ticket is refreshed from the new
// list, or deselected when it disappeared.
func (workflow *Workflow) CompleteListTickets(result TicketsResult) bool {
	workflow.settle(result.OK)
	if !result.OK {
		return false
	}
	workflow.Tickets = append([]ticket.Ticket{}, result.Tickets...)
	if workflow.Selected != nil {
		index := workflow.indexOf(workflow.Selected.ID)
		if index < 0 {
			workflow.Deselect()
		} else {
			refreshed := workflow.Tickets[index]
			workflow.Selected = &refreshed
		}
	}
	return true
}

// ListTickets fetches and applies the ticket list.
func (workflow *Workflow) ListTickets(ctx context.Context) bool {
	return workflow.CompleteListTickets(workflow.FetchTickets(ctx))
}

// --- Ticket creation ---

// Draft is a validated ticket creation request.
type Draft struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDraft trims and checks a creation request. The title is
// checked before the description.
func ValidateDraft(title, description string) (Draft, error) {
	draft := Draft{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	if err := validate.Struct(draft); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			fields := make(map[string]bool, len(fieldErrors))
			for _, fieldError := range fieldErrors {
				fields[fieldError.Field()] = true
			}
			if fields["Title"] {
				return Draft{}, ErrTitleRequired
			}
			return Draft{}, ErrDescriptionRequired
		}
		return Draft{}, err
	}
	return draft, nil
}

// CreateResult is the outcome of SubmitTicket.
type CreateResult struct {
	Ticket ticket.Ticket
	OK     bool
}

// SubmitTicket sends a validated draft without touching state.
func (workflow *Workflow) SubmitTicket(ctx context.Context, draft Draft) CreateResult {
	creator, ok := workflow.gateway.(Creator)
	if !ok {
		return CreateResult{}
	}
	created, ok := creator.CreateTicket(ctx, draft.Title, draft.Description)
	return CreateResult{Ticket: created, OK: ok}
}

// CompleteCreateTicket records the outcome of a submission. The list
// is not touched: callers follow a success with a full relist so the
// list reflects the server.
func (workflow *Workflow) CompleteCreateTicket(result CreateResult) error {
	workflow.settle(result.OK)
	if !result.OK {
		return ErrRejected
	}
	return nil
}

// CreateTicket validates, submits, and on success relists.
func (workflow *Workflow) CreateTicket(ctx context.Context, title, description string) error {
	if !workflow.CanCreate() {
		return ErrForbidden
	}
	draft, err := ValidateDraft(title, description)
	if err != nil {
		return err
	}
	if err := workflow.CompleteCreateTicket(workflow.SubmitTicket(ctx, draft)); err != nil {
		return err
	}
	workflow.ListTickets(ctx)
	return nil
}

// --- Selection and thread ---

// Select focuses a ticket. The previous thread is discarded; the new
// one arrives through LoadMessages or CompleteLoadMessages.
func (workflow *Workflow) Select(selected ticket.Ticket) {
	workflow.Selected = &selected
	workflow.Messages = []ticket.Message{}
	workflow.Failed = false
}

// Deselect clears the focus and its thread.
func (workflow *Workflow) Deselect() {
	workflow.Selected = nil
	workflow.Messages = []ticket.Message{}
}

// ThreadResult is the outcome of FetchMessages.
type ThreadResult struct {
	TicketID string
	Messages []ticket.Message
	OK       bool
}

// FetchMessages retrieves a ticket's thread without touching state.
func (workflow *Workflow) FetchMessages(ctx context.Context, ticketID string) ThreadResult {
	messages, ok := workflow.gateway.ListMessages(ctx, ticketID)
	return ThreadResult{TicketID: ticketID, Messages: messages, OK: ok}
}

// CompleteLoadMessages applies a thread if its ticket is still the
// selected one. It reports whether the result was applied.
func (workflow *Workflow) CompleteLoadMessages(result ThreadResult) bool {
	if !workflow.isSelected(result.TicketID) {
		workflow.Busy = false
		return false
	}
	workflow.settle(result.OK)
	if !result.OK {
		return false
	}
	workflow.Messages = append([]ticket.Message{}, result.Messages...)
	return true
}

// LoadMessages fetches and applies the selected ticket's thread.
func (workflow *Workflow) LoadMessages(ctx context.Context) bool {
	if workflow.Selected == nil {
		return false
	}
	return workflow.CompleteLoadMessages(workflow.FetchMessages(ctx, workflow.Selected.ID))
}

// --- Replies ---

// ValidateMessage trims a reply and rejects it when blank.
func ValidateMessage(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyMessage
	}
	return content, nil
}

// PostResult is the outcome of PostMessage.
type PostResult struct {
	TicketID string
	Content  string
	OK       bool
}

// PostMessage sends a validated reply without touching state.
func (workflow *Workflow) PostMessage(ctx context.Context, ticketID, content string) PostResult {
	ok := workflow.gateway.PostMessage(ctx, ticketID, content)
	return PostResult{TicketID: ticketID, Content: content, OK: ok}
}

// CompleteSendMessage appends exactly one provisional message after a
// successful post, if the ticket is still selected. The provisional
// message carries a local id (the clock's Unix milliseconds) and is
// never reconciled with the server's copy; the next thread reload
// replaces it.
func (workflow *Workflow) CompleteSendMessage(result PostResult) bool {
	if !workflow.isSelected(result.TicketID) {
		workflow.Busy = false
		return false
	}
	workflow.settle(result.OK)
	if !result.OK {
		return false
	}
	now := workflow.clock.Now()
	workflow.Messages = append(workflow.Messages, ticket.Message{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		TicketID:    result.TicketID,
		Content:     result.Content,
		Author:      workflow.gateway.Author(),
		CreatedAt:   now,
		Provisional: true,
	})
	return true
}

// SendMessage posts a reply to the selected ticket.
func (workflow *Workflow) SendMessage(ctx context.Context, content string) bool {
	if workflow.Selected == nil {
		return false
	}
	content, err := ValidateMessage(content)
	if err != nil {
		return false
	}
	return workflow.CompleteSendMessage(workflow.PostMessage(ctx, workflow.Selected.ID, content))
}

// --- Status ---

// StatusResult is the outcome of RequestStatus.
type StatusResult struct {
	TicketID string
	Status   ticket.Status
	OK       bool
}

// RequestStatus asks the server to change a ticket's status without
// touching state. Callers check CanUpdateStatus first.
func (workflow *Workflow) RequestStatus(ctx context.Context, ticketID string, status ticket.Status) StatusResult {
	updater, ok := workflow.gateway.(StatusUpdater)
	if !ok {
		return StatusResult{TicketID: ticketID, Status: status}
	}
	ok = updater.UpdateTicketStatus(ctx, ticketID, status)
	return StatusResult{TicketID: ticketID, Status: status, OK: ok}
}

// CompleteUpdateStatus applies an acknowledged status change to the
// list entry and, if it is selected, to the selection.
func (workflow *Workflow) CompleteUpdateStatus(result StatusResult) bool {
	workflow.settle(result.OK)
	if !result.OK {
		return false
	}
	if index := workflow.indexOf(result.TicketID); index >= 0 {
		workflow.Tickets[index].Status = result.Status
	}
	if workflow.isSelected(result.TicketID) {
		workflow.Selected.Status = result.Status
	}
	return true
}

// UpdateStatus changes a ticket's status. Only administrator workflows
// may; state changes only after the server acknowledges.
func (workflow *Workflow) UpdateStatus(ctx context.Context, ticketID string, status ticket.Status) error {
	if !workflow.CanUpdateStatus() {
		return ErrForbidden
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if !workflow.CompleteUpdateStatus(workflow.RequestStatus(ctx, ticketID, status)) {
		return ErrRejected
	}
	return nil
}

// --- Local edits ---

// RemoveTicket drops a ticket from the list after it was deleted
// elsewhere, clearing the selection when it matches.
func (workflow *Workflow) RemoveTicket(ticketID string) {
	workflow.Tickets = slices.DeleteFunc(workflow.Tickets, func(entry ticket.Ticket) bool {
		return entry.ID == ticketID
	})
	if workflow.isSelected(ticketID) {
		workflow.Deselect()
	}
}

// Find returns the listed ticket with id.
func (workflow *Workflow) Find(ticketID string) (ticket.Ticket, bool) {
	if index := workflow.indexOf(ticketID); index >= 0 {
		return workflow.Tickets[index], true
	}
	return ticket.Ticket{}, false
}

func (workflow *Workflow) indexOf(ticketID string) int {
	return slices.IndexFunc(workflow.Tickets, func(entry ticket.Ticket) bool {
		return entry.ID == ticketID
	})
}

func (workflow *Workflow) isSelected(ticketID string) bool {
	return workflow.Selected != nil && workflow.Selected.ID == ticketID
}

// --- Filtering ---

// FilterMatch is one ticket that matched a filter query.
type FilterMatch struct {
	Ticket ticket.Ticket
	Score  int

	// TitlePositions are rune offsets in the title to highlight.
	TitlePositions []int
}

// Filter fuzzy-matches query against each ticket's id, title and
// status label. An empty query returns every ticket in list order;
// otherwise matches are ordered by descending score, ties in list
// order.
func (workflow *Workflow) Filter(query string) []FilterMatch {
	query = strings.TrimSpace(query)
	matches := make([]FilterMatch, 0, len(workflow.Tickets))
	if query == "" {
		for _, entry := range workflow.Tickets {
			matches = append(matches, FilterMatch{Ticket: entry})
		}
		return matches
	}

	pattern := []rune(query)
	slab := tui.NewSlab()
	for _, entry := range workflow.Tickets {
		title := tui.FuzzyMatch(entry.Title, pattern, slab)
		best := title.Score
		for _, text := range []string{entry.ID, entry.Status.Label()} {
			if result := tui.FuzzyMatch(text, pattern, slab); result.Score > best {
				best = result.Score
			}
		}
		if best > 0 {
			matches = append(matches, FilterMatch{Ticket: entry, Score: best, TitlePositions: title.Positions})
		}
	}
	slices.SortStableFunc(matches, func(a, b FilterMatch) int {
		return b.Score - a.Score
	})
	return matches
}
