// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/netrunner-host/netrunner/lib/navigation"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
	"github.com/netrunner-host/netrunner/lib/support"
	"github.com/netrunner-host/netrunner/lib/tui"
)

// paneMode is what the ticket pane is showing and where keys go.
type paneMode int

const (
	paneList paneMode = iota
	paneFilter
	paneThread
	paneReply
	paneCreate
)

// ticketPane is the ticket list, thread and forms shared by the
// customer dashboard and the administrator console.
type ticketPane struct {
	workflow *support.Workflow
	mode     paneMode
	cursor   int

	filter      textinput.Model
	reply       textarea.Model
	title       textinput.Model
	description textarea.Model
	createField int
	formError   string

	thread viewport.Model
	picker *tui.Picker
}

func newTicketPane(workflow *support.Workflow) ticketPane {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter tickets"

	reply := textarea.New()
	reply.Placeholder = "Type your message…"
	reply.ShowLineNumbers = false
	reply.SetHeight(3)

	title := textinput.New()
	title.Prompt = "Title: "
	title.CharLimit = 200

	description := textarea.New()
	description.Placeholder = "Describe the problem"
	description.ShowLineNumbers = false
	description.SetHeight(5)

	return ticketPane{
		workflow:    workflow,
		filter:      filter,
		reply:       reply,
		title:       title,
		description: description,
		thread:      viewport.New(0, 0),
	}
}

// reset returns the pane to an unfiltered list without a selection.
func (pane *ticketPane) reset() {
	pane.mode = paneList
	pane.cursor = 0
	pane.picker = nil
	pane.filter.SetValue("")
	pane.filter.Blur()
	pane.reply.Reset()
	pane.reply.Blur()
	pane.workflow.Deselect()
}

func (pane *ticketPane) captured() bool {
	if pane.workflow == nil {
		return false
	}
	return pane.picker != nil || pane.mode == paneFilter || pane.mode == paneReply || pane.mode == paneCreate
}

// forward passes non-key messages to the focused field.
func (pane *ticketPane) forward(message tea.Msg) tea.Cmd {
	if pane.workflow == nil {
		return nil
	}
	var cmd tea.Cmd
	switch pane.mode {
	case paneFilter:
		pane.filter, cmd = pane.filter.Update(message)
	case paneReply:
		pane.reply, cmd = pane.reply.Update(message)
	case paneCreate:
		if pane.createField == 0 {
			pane.title, cmd = pane.title.Update(message)
		} else {
			pane.description, cmd = pane.description.Update(message)
		}
	}
	return cmd
}

// matches is the list as currently filtered.
func (pane *ticketPane) matches() []support.FilterMatch {
	return pane.workflow.Filter(pane.filter.Value())
}

func (pane *ticketPane) current() (ticket.Ticket, bool) {
	matches := pane.matches()
	if pane.cursor < 0 || pane.cursor >= len(matches) {
		return ticket.Ticket{}, false
	}
	return matches[pane.cursor].Ticket, true
}

func (pane *ticketPane) clamp() {
	pane.cursor = max(0, min(pane.cursor, len(pane.matches())-1))
}

// target is the ticket an action applies to: the open thread, else the
// list cursor.
func (pane *ticketPane) target() (ticket.Ticket, bool) {
	if pane.workflow.Selected != nil {
		return *pane.workflow.Selected, true
	}
	return pane.current()
}

// --- Commands ---

func (model *Model) fetchTickets(pane *ticketPane) tea.Cmd {
	workflow := pane.workflow
	workflow.MarkBusy()
	return model.launch(func(ctx context.Context) any {
		return workflow.FetchTickets(ctx)
	})
}

func (model *Model) fetchThread(pane *ticketPane, ticketID string) tea.Cmd {
	workflow := pane.workflow
	workflow.MarkBusy()
	return model.launch(func(ctx context.Context) any {
		return workflow.FetchMessages(ctx, ticketID)
	})
}

func (model *Model) openTicket(pane *ticketPane, selected ticket.Ticket) tea.Cmd {
	pane.workflow.Select(selected)
	pane.mode = paneThread
	cmd := model.fetchThread(pane, selected.ID)
	model.syncThread(pane, true)
	return cmd
}

func (model *Model) sendReply(pane *ticketPane) tea.Cmd {
	if pane.workflow.Busy || pane.workflow.Selected == nil {
		return nil
	}
	content, err := support.ValidateMessage(pane.reply.Value())
	if err != nil {
		pane.formError = "Message is empty"
		return nil
	}
	pane.formError = ""
	workflow, ticketID := pane.workflow, pane.workflow.Selected.ID
	workflow.MarkBusy()
	return model.launch(func(ctx context.Context) any {
		return workflow.PostMessage(ctx, ticketID, content)
	})
}

func (model *Model) submitTicket(pane *ticketPane) tea.Cmd {
	if pane.workflow.Busy {
		return nil
	}
	draft, err := support.ValidateDraft(pane.title.Value(), pane.description.Value())
	switch {
	case errors.Is(err, support.ErrTitleRequired):
		pane.formError = "Title is required"
		return nil
	case errors.Is(err, support.ErrDescriptionRequired):
		pane.formError = "Description is required"
		return nil
	}
	pane.formError = ""
	workflow := pane.workflow
	workflow.MarkBusy()
	return model.launch(func(ctx context.Context) any {
		return workflow.SubmitTicket(ctx, draft)
	})
}

// requestStatus, like the other mutating commands, does nothing while a
// previous operation is still in flight.
func (model *Model) requestStatus(pane *ticketPane, ticketID string, status ticket.Status) tea.Cmd {
	if pane.workflow.Busy {
		return nil
	}
	workflow := pane.workflow
	workflow.MarkBusy()
	return model.launch(func(ctx context.Context) any {
		return workflow.RequestStatus(ctx, ticketID, status)
	})
}

func (model *Model) openStatusPicker(pane *ticketPane) {
	if !pane.workflow.CanUpdateStatus() {
		return
	}
	target, ok := pane.target()
	if !ok {
		return
	}
	options := make([]tui.PickerOption, 0, len(ticket.Statuses))
	for _, status := range ticket.Statuses {
		options = append(options, tui.PickerOption{Label: status.Label(), Value: string(status)})
	}
	pane.picker = tui.NewPicker("Set status", target.ID, options, string(target.Status))
}

// --- Keys ---

func (model *Model) handlePaneKey(pane *ticketPane, message tea.KeyMsg) tea.Cmd {
	if pane.picker != nil {
		return model.handlePickerKey(pane, message)
	}
	switch pane.mode {
	case paneFilter:
		return model.handleFilterKey(pane, message)
	case paneReply:
		return model.handleReplyKey(pane, message)
	case paneCreate:
		return model.handleCreateKey(pane, message)
	case paneThread:
		return model.handleThreadKey(pane, message)
	}
	return model.handleListKey(pane, message)
}

func (model *Model) handleListKey(pane *ticketPane, message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Up):
		pane.cursor = max(0, pane.cursor-1)
	case key.Matches(message, model.keys.Down):
		pane.cursor = min(len(pane.matches())-1, pane.cursor+1)
		pane.cursor = max(0, pane.cursor)
	case key.Matches(message, model.keys.Select):
		if selected, ok := pane.current(); ok {
			return model.openTicket(pane, selected)
		}
	case key.Matches(message, model.keys.Filter):
		pane.mode = paneFilter
		pane.cursor = 0
		return pane.filter.Focus()
	case key.Matches(message, model.keys.Back):
		if pane.filter.Value() != "" {
			pane.filter.SetValue("")
			pane.clamp()
		} else if model.nav.View == navigation.Dashboard {
			model.dashboard.tab = DashboardOverview
		}
	case key.Matches(message, model.keys.New):
		if pane.workflow.CanCreate() {
			pane.mode = paneCreate
			pane.formError = ""
			pane.title.SetValue("")
			pane.description.Reset()
			pane.createField = 0
			pane.description.Blur()
			return pane.title.Focus()
		}
	case key.Matches(message, model.keys.Status):
		model.openStatusPicker(pane)
	case key.Matches(message, model.keys.Refresh):
		return model.fetchTickets(pane)
	}
	return nil
}

func (model *Model) handleFilterKey(pane *ticketPane, message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Back):
		pane.filter.SetValue("")
		pane.filter.Blur()
		pane.mode = paneList
		pane.clamp()
		return nil
	case key.Matches(message, model.keys.Select), message.Type == tea.KeyUp, message.Type == tea.KeyDown:
		pane.filter.Blur()
		pane.mode = paneList
		return nil
	}
	var cmd tea.Cmd
	pane.filter, cmd = pane.filter.Update(message)
	pane.cursor = 0
	return cmd
}

func (model *Model) handleThreadKey(pane *ticketPane, message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Back):
		pane.workflow.Deselect()
		pane.mode = paneList
		pane.clamp()
		return nil
	case key.Matches(message, model.keys.Reply):
		pane.mode = paneReply
		pane.formError = ""
		model.syncThread(pane, false)
		return pane.reply.Focus()
	case key.Matches(message, model.keys.Status):
		model.openStatusPicker(pane)
		return nil
	case key.Matches(message, model.keys.Refresh):
		if pane.workflow.Selected != nil {
			return model.fetchThread(pane, pane.workflow.Selected.ID)
		}
		return nil
	}
	var cmd tea.Cmd
	pane.thread, cmd = pane.thread.Update(message)
	return cmd
}

func (model *Model) handleReplyKey(pane *ticketPane, message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Back):
		pane.reply.Blur()
		pane.mode = paneThread
		pane.formError = ""
		model.syncThread(pane, false)
		return nil
	case key.Matches(message, model.keys.Submit):
		return model.sendReply(pane)
	}
	var cmd tea.Cmd
	pane.reply, cmd = pane.reply.Update(message)
	return cmd
}

func (model *Model) handleCreateKey(pane *ticketPane, message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Back):
		pane.title.Blur()
		pane.description.Blur()
		pane.mode = paneList
		pane.formError = ""
		return nil
	case key.Matches(message, model.keys.Submit):
		return model.submitTicket(pane)
	case message.Type == tea.KeyTab, message.Type == tea.KeyShiftTab,
		message.Type == tea.KeyEnter && pane.createField == 0:
		if pane.createField == 0 {
			pane.createField = 1
			pane.title.Blur()
			return pane.description.Focus()
		}
		pane.createField = 0
		pane.description.Blur()
		return pane.title.Focus()
	}
	var cmd tea.Cmd
	if pane.createField == 0 {
		pane.title, cmd = pane.title.Update(message)
	} else {
		pane.description, cmd = pane.description.Update(message)
	}
	return cmd
}

func (model *Model) handlePickerKey(pane *ticketPane, message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Up):
		pane.picker.MoveUp()
	case key.Matches(message, model.keys.Down):
		pane.picker.MoveDown()
	case key.Matches(message, model.keys.Back):
		pane.picker = nil
	case key.Matches(message, model.keys.Select):
		ticketID, status := pane.picker.Target, ticket.Status(pane.picker.Selected().Value)
		pane.picker = nil
		return model.requestStatus(pane, ticketID, status)
	}
	return nil
}

// --- Results ---

// completePane applies a ticket workflow result. handled is false for
// payloads that are not ticket results.
func (model *Model) completePane(pane *ticketPane, payload any) (tea.Cmd, bool) {
	workflow := pane.workflow
	switch result := payload.(type) {
	case support.TicketsResult:
		workflow.CompleteListTickets(result)
		pane.clamp()
		if workflow.Selected == nil && (pane.mode == paneThread || pane.mode == paneReply) {
			pane.mode = paneList
		}
		return nil, true

	case support.ThreadResult:
		if workflow.CompleteLoadMessages(result) {
			model.syncThread(pane, true)
		}
		return nil, true

	case support.PostResult:
		if !workflow.CompleteSendMessage(result) {
			if !result.OK {
				pane.formError = "Message not sent"
			}
			return nil, true
		}
		pane.reply.Reset()
		pane.reply.Blur()
		pane.mode = paneThread
		model.syncThread(pane, true)
		return nil, true

	case support.CreateResult:
		if err := workflow.CompleteCreateTicket(result); err != nil {
			pane.formError = "Could not create the ticket"
			return nil, true
		}
		pane.mode = paneList
		pane.title.Blur()
		pane.description.Blur()
		return tea.Batch(
			model.fetchTickets(pane),
			model.setNotice("Ticket created", slog.LevelInfo),
		), true

	case support.StatusResult:
		if !workflow.CompleteUpdateStatus(result) {
			return model.setNotice("Status not changed", slog.LevelWarn), true
		}
		model.syncThread(pane, false)
		return model.setNotice("Status set to "+result.Status.Label(), slog.LevelInfo), true
	}
	return nil, false
}

// activePane is the ticket pane of the current view, if it has one.
func (model *Model) activePane() *ticketPane {
	switch model.nav.View {
	case navigation.Dashboard:
		return &model.dashboard.tickets
	case navigation.AdminDashboard:
		return &model.console.tickets
	}
	return nil
}
