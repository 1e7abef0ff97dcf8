// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/clock"
	"github.com/netrunner-host/netrunner/lib/moderation"
	"github.com/netrunner-host/netrunner/lib/tui"
)

const (
	consoleUsers   = moderation.TabUsers
	consoleTickets = moderation.TabTickets
)

var consoleTabs = []string{"Users", "Tickets"}

// consoleState is the administrator console.
type consoleState struct {
	workflow   *moderation.Workflow
	userCursor int
	tickets    ticketPane
	confirm    *tui.ConfirmDialog
}

func newConsoleState(admin *api.AdminClient, clk clock.Clock) consoleState {
	workflow := moderation.New(admin, clk)
	return consoleState{workflow: workflow, tickets: newTicketPane(workflow.Tickets)}
}

// activateConsoleTab switches tabs and refetches the tab's list, the
// way the console always shows fresh data on entry.
func (model *Model) activateConsoleTab(tab moderation.Tab) tea.Cmd {
	state := &model.console
	state.workflow.SelectTab(tab)
	if tab == consoleTickets {
		return model.fetchTickets(&state.tickets)
	}
	state.tickets.reset()
	workflow := state.workflow
	workflow.Busy = true
	return model.launch(func(ctx context.Context) any {
		return workflow.FetchUsers(ctx)
	})
}

func consoleTabIndex(tab moderation.Tab) int {
	if tab == consoleTickets {
		return 1
	}
	return 0
}

func (model *Model) handleConsoleKey(message tea.KeyMsg) tea.Cmd {
	state := &model.console
	if state.confirm != nil {
		return model.handleConfirmKey(message)
	}
	onTickets := state.workflow.Tab == consoleTickets
	if onTickets && state.tickets.captured() {
		return model.handlePaneKey(&state.tickets, message)
	}
	if index, ok := model.tabKey(message, consoleTabIndex(state.workflow.Tab), len(consoleTabs)); ok {
		tab := moderation.Tabs[index]
		if tab == state.workflow.Tab {
			return nil
		}
		return model.activateConsoleTab(tab)
	}

	if onTickets {
		if key.Matches(message, model.keys.Delete) {
			if target, ok := state.tickets.target(); ok {
				state.workflow.StageDeleteTicket(target.ID)
				model.openConfirm()
			}
			return nil
		}
		return model.handlePaneKey(&state.tickets, message)
	}

	users := state.workflow.Users
	switch {
	case key.Matches(message, model.keys.Up):
		state.userCursor = max(0, state.userCursor-1)
	case key.Matches(message, model.keys.Down):
		state.userCursor = max(0, min(len(users)-1, state.userCursor+1))
	case key.Matches(message, model.keys.Delete):
		if state.userCursor < len(users) {
			state.workflow.StageDeleteUser(users[state.userCursor].ID)
			model.openConfirm()
		}
	case key.Matches(message, model.keys.Refresh):
		return model.activateConsoleTab(consoleUsers)
	}
	return nil
}

func (model *Model) openConfirm() {
	staged := model.console.workflow.Staged
	if staged == nil {
		return
	}
	dialog := tui.NewConfirmDialog(staged.Title, staged.Prompt)
	model.console.confirm = &dialog
}

func (model *Model) handleConfirmKey(message tea.KeyMsg) tea.Cmd {
	state := &model.console
	switch state.confirm.Update(message) {
	case tui.Confirmed:
		state.confirm = nil
		action, ok := state.workflow.Take()
		if !ok {
			return nil
		}
		workflow := state.workflow
		return model.launch(func(ctx context.Context) any {
			return workflow.Execute(ctx, action)
		})
	case tui.Cancelled:
		state.confirm = nil
		state.workflow.Cancel()
	}
	return nil
}

// completeConsole applies user-list and delete results.
func (model *Model) completeConsole(payload any) tea.Cmd {
	state := &model.console
	switch result := payload.(type) {
	case moderation.UsersResult:
		state.workflow.CompleteListUsers(result)
		state.userCursor = max(0, min(state.userCursor, len(state.workflow.Users)-1))
	case moderation.DeleteResult:
		if !state.workflow.CompleteDelete(result) {
			return model.setNotice(result.Action.Title+" failed", slog.LevelWarn)
		}
		state.userCursor = max(0, min(state.userCursor, len(state.workflow.Users)-1))
		pane := &state.tickets
		pane.clamp()
		if pane.workflow.Selected == nil && pane.mode != paneList && pane.mode != paneCreate {
			pane.mode = paneList
		}
		return model.setNotice(result.Action.Title+": done", slog.LevelInfo)
	}
	return nil
}
