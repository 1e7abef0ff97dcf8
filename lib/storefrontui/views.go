// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/clock"
	"github.com/netrunner-host/netrunner/lib/navigation"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/support"
)

// --- Home ---

type homeState struct {
	cursor int
}

type homeAction struct {
	label string
	view  navigation.View
}

func homeActions(role account.Role) []homeAction {
	if role == account.RoleCustomer {
		return []homeAction{
			{"Dashboard", navigation.Dashboard},
			{"Pricing", navigation.Pricing},
			{"Learn More", navigation.LearnMore},
			{"Settings", navigation.Settings},
		}
	}
	return []homeAction{
		{"Get Access Code", navigation.GetCode},
		{"Login", navigation.Login},
		{"Learn More", navigation.LearnMore},
		{"Admin", navigation.AdminLogin},
	}
}

func (model *Model) handleHomeKey(message tea.KeyMsg) tea.Cmd {
	actions := homeActions(model.nav.Role)
	switch {
	case key.Matches(message, model.keys.Up), key.Matches(message, model.keys.Left):
		model.home.cursor = (model.home.cursor - 1 + len(actions)) % len(actions)
	case key.Matches(message, model.keys.Down), key.Matches(message, model.keys.Right):
		model.home.cursor = (model.home.cursor + 1) % len(actions)
	case key.Matches(message, model.keys.Select):
		return model.navigate(actions[model.home.cursor].view)
	}
	return nil
}

// --- Learn more ---

func (model *Model) handleLearnMoreKey(message tea.KeyMsg) tea.Cmd {
	if key.Matches(message, model.keys.Back) || key.Matches(message, model.keys.Select) {
		return model.navigate(navigation.Home)
	}
	return nil
}

// --- Get code ---

type getCodeState struct {
	code    account.AccessCode
	loading bool
	failed  bool
}

func (model *Model) handleGetCodeKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Back):
		return model.navigate(navigation.Home)
	case key.Matches(message, model.keys.Copy):
		if model.getCode.code != "" {
			return copyToClipboard(string(model.getCode.code))
		}
	case key.Matches(message, model.keys.Select):
		if model.getCode.loading {
			return nil
		}
		model.getCode.loading = true
		model.getCode.failed = false
		customer := model.customer
		return model.launch(func(ctx context.Context) any {
			code, ok := customer.RequestAccessCode(ctx)
			return codeResult{code: code, ok: ok}
		})
	}
	return nil
}

func (model *Model) completeGenerateCode(result codeResult) tea.Cmd {
	model.getCode.loading = false
	if !result.ok {
		model.getCode.code = ""
		model.getCode.failed = true
		return nil
	}
	model.getCode.code = result.code
	return nil
}

// --- Customer login ---

type loginState struct {
	input   textinput.Model
	pending bool
	err     string
}

func newLoginState() loginState {
	input := textinput.New()
	input.Placeholder = "0000 0000 0000 0000"
	input.Prompt = "Access code: "
	input.CharLimit = 64
	return loginState{input: input}
}

func (model *Model) handleLoginKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Back):
		return model.navigate(navigation.Home)
	case key.Matches(message, model.keys.Select):
		if model.login.pending {
			return nil
		}
		value := model.login.input.Value()
		if account.NormalizeAccessCode(value) == "" {
			model.login.err = "Enter your access code"
			return nil
		}
		model.login.pending = true
		model.login.err = ""
		controller := model.session
		return model.launch(func(ctx context.Context) any {
			next, ok := controller.LoginCustomer(ctx, value)
			return loginOutcome{session: next, ok: ok}
		})
	}
	var cmd tea.Cmd
	model.login.input, cmd = model.login.input.Update(message)
	return cmd
}

// completeLogin applies a login finished while its form is still
// shown.
func (model *Model) completeLogin(outcome loginOutcome) tea.Cmd {
	switch model.nav.View {
	case navigation.Login:
		model.login.pending = false
		if !outcome.ok {
			model.login.err = "Invalid access code"
			return nil
		}
		return model.dispatch(
			navigation.SessionChanged{Role: outcome.session.Role},
			navigation.Navigate{View: navigation.Dashboard},
		)
	case navigation.AdminLogin:
		model.adminLogin.pending = false
		if !outcome.ok {
			model.adminLogin.err = "Invalid credentials"
			return nil
		}
		return model.dispatch(
			navigation.SessionChanged{Role: outcome.session.Role},
			navigation.Navigate{View: navigation.AdminDashboard},
		)
	}
	return nil
}

// --- Admin login ---

type adminLoginState struct {
	username textinput.Model
	password textinput.Model
	field    int
	pending  bool
	err      string
}

func newAdminLoginState() adminLoginState {
	username := textinput.New()
	username.Prompt = "Username: "
	username.CharLimit = 128
	password := textinput.New()
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 256
	return adminLoginState{username: username, password: password}
}

func (state *adminLoginState) focus(field int) tea.Cmd {
	state.field = field
	if field == 0 {
		state.password.Blur()
		return state.username.Focus()
	}
	state.username.Blur()
	return state.password.Focus()
}

func (state *adminLoginState) update(message tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if state.field == 0 {
		state.username, cmd = state.username.Update(message)
	} else {
		state.password, cmd = state.password.Update(message)
	}
	return cmd
}

func (model *Model) handleAdminLoginKey(message tea.KeyMsg) tea.Cmd {
	state := &model.adminLogin
	switch {
	case key.Matches(message, model.keys.Back):
		return model.navigate(navigation.Home)
	case message.Type == tea.KeyTab, message.Type == tea.KeyShiftTab,
		message.Type == tea.KeyUp, message.Type == tea.KeyDown:
		return state.focus(1 - state.field)
	case key.Matches(message, model.keys.Select):
		if state.field == 0 {
			return state.focus(1)
		}
		if state.pending {
			return nil
		}
		username, password := state.username.Value(), state.password.Value()
		if username == "" || password == "" {
			state.err = "Enter username and password"
			return nil
		}
		state.pending = true
		state.err = ""
		controller := model.session
		return model.launch(func(ctx context.Context) any {
			next, ok := controller.LoginAdmin(ctx, username, password)
			return loginOutcome{session: next, ok: ok}
		})
	}
	return state.update(message)
}

// --- Customer dashboard ---

// DashboardTab is a section of the customer dashboard.
type DashboardTab int

const (
	DashboardOverview DashboardTab = iota
	DashboardDomains
	DashboardDatabases
	DashboardTickets
)

var dashboardTabs = []string{"Overview", "Domains", "Databases", "Tickets"}

type dashboardState struct {
	tab         DashboardTab
	code        account.AccessCode
	codeLoading bool
	codeFailed  bool
	tickets     ticketPane
}

func newDashboardState(customer *api.CustomerClient, clk clock.Clock) dashboardState {
	workflow := support.New(support.CustomerGateway{Client: customer}, clk)
	return dashboardState{codeLoading: true, tickets: newTicketPane(workflow)}
}

func (model *Model) selectDashboardTab(tab DashboardTab) tea.Cmd {
	if tab == model.dashboard.tab {
		return nil
	}
	model.dashboard.tab = tab
	if tab == DashboardTickets {
		model.dashboard.tickets.reset()
		return model.fetchTickets(&model.dashboard.tickets)
	}
	return nil
}

func (model *Model) handleDashboardKey(message tea.KeyMsg) tea.Cmd {
	state := &model.dashboard
	if state.tab == DashboardTickets && state.tickets.captured() {
		return model.handlePaneKey(&state.tickets, message)
	}
	if tab, ok := model.tabKey(message, int(state.tab), len(dashboardTabs)); ok {
		return model.selectDashboardTab(DashboardTab(tab))
	}
	switch state.tab {
	case DashboardTickets:
		return model.handlePaneKey(&state.tickets, message)
	case DashboardOverview:
		switch {
		case key.Matches(message, model.keys.Copy):
			if state.code != "" {
				return copyToClipboard(string(state.code))
			}
		case key.Matches(message, model.keys.Refresh):
			state.codeLoading = true
			return model.fetchOwnCode()
		}
	}
	return nil
}

// tabKey maps tab-switching keys to a tab index.
func (model *Model) tabKey(message tea.KeyMsg, current, count int) (int, bool) {
	switch {
	case key.Matches(message, model.keys.NextTab):
		return (current + 1) % count, true
	case key.Matches(message, model.keys.PreviousTab):
		return (current - 1 + count) % count, true
	case key.Matches(message, model.keys.Tab1):
		return 0, true
	case key.Matches(message, model.keys.Tab2) && count > 1:
		return 1, true
	case key.Matches(message, model.keys.Tab3) && count > 2:
		return 2, true
	case key.Matches(message, model.keys.Tab4) && count > 3:
		return 3, true
	}
	return current, false
}

// --- Settings ---

type settingsState struct {
	security bool
	code     account.AccessCode
	loading  bool
	failed   bool
}

func (model *Model) handleSettingsKey(message tea.KeyMsg) tea.Cmd {
	state := &model.settings
	if tab, ok := model.tabKey(message, boolIndex(state.security), 2); ok {
		state.security = tab == 1
		return nil
	}
	switch {
	case key.Matches(message, model.keys.Back):
		return model.navigate(navigation.Dashboard)
	case key.Matches(message, model.keys.Copy):
		if state.code != "" {
			return copyToClipboard(string(state.code))
		}
	case key.Matches(message, model.keys.Refresh):
		state.loading = true
		return model.fetchOwnCode()
	case key.Matches(message, model.keys.Select) && state.security:
		return model.setNotice("Generating a new access code is not available yet", slog.LevelInfo)
	}
	return nil
}

func boolIndex(value bool) int {
	if value {
		return 1
	}
	return 0
}

// --- Pricing ---

type pricingState struct {
	cursor int
}

func (model *Model) handlePricingKey(message tea.KeyMsg) tea.Cmd {
	state := &model.pricing
	switch {
	case key.Matches(message, model.keys.Left), key.Matches(message, model.keys.Up):
		state.cursor = (state.cursor - 1 + len(plans)) % len(plans)
	case key.Matches(message, model.keys.Right), key.Matches(message, model.keys.Down):
		state.cursor = (state.cursor + 1) % len(plans)
	case key.Matches(message, model.keys.Select):
		return model.navigate(navigation.Dashboard)
	case key.Matches(message, model.keys.Back):
		return model.navigate(navigation.Dashboard)
	}
	return nil
}
