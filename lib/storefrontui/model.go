// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/clock"
	"github.com/netrunner-host/netrunner/lib/navigation"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/session"
	"github.com/netrunner-host/netrunner/lib/tui"
)

// Options configures NewModel. Session and Client are required.
type Options struct {
	Session *session.Controller
	Client  *api.Client

	// Clock stamps provisional messages. Defaults to the real clock.
	Clock clock.Clock

	Logger *slog.Logger

	// Location is the start location, e.g. "/" or "/admin". The
	// resolved session may redirect it.
	Location string
}

// sessionResolvedMsg delivers the startup session.
type sessionResolvedMsg struct {
	session account.Session
}

// viewResultMsg carries the result of a background call launched by
// the view activation numbered generation.
type viewResultMsg struct {
	generation int
	payload    any
}

// loginOutcome is the payload of a login attempt.
type loginOutcome struct {
	session account.Session
	ok      bool
}

type codeResult struct {
	code account.AccessCode
	ok   bool
}

type ownCodeResult struct {
	code account.AccessCode
	ok   bool
}

// notice is the transient status bar message.
type notice struct {
	text     string
	level    slog.Level
	sequence int
}

// Model is the bubbletea model of the storefront client.
type Model struct {
	session  *session.Controller
	customer *api.CustomerClient
	admin    *api.AdminClient
	clock    clock.Clock
	logger   *slog.Logger
	location string

	theme tui.Theme
	keys  KeyMap

	nav      navigation.State
	resolved bool
	menu     *tui.Picker

	width  int
	height int

	viewContext context.Context
	cancelView  context.CancelFunc
	generation  int
	pending     int

	spinner  spinner.Model
	spinning bool
	notice   notice

	home       homeState
	getCode    getCodeState
	login      loginState
	adminLogin adminLoginState
	dashboard  dashboardState
	settings   settingsState
	pricing    pricingState
	console    consoleState
}

// NewModel builds the client model. Nothing is rendered until the
// startup session is resolved by the command returned from Init.
func NewModel(options Options) Model {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	theme := tui.DefaultTheme
	return Model{
		session:     options.Session,
		customer:    options.Client.Customer(),
		admin:       options.Client.Admin(),
		clock:       clk,
		logger:      logger,
		location:    options.Location,
		theme:       theme,
		keys:        DefaultKeyMap,
		viewContext: context.Background(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
		width:  80,
		height: 24,
	}
}

// State returns the current navigation state.
func (model Model) State() navigation.State { return model.nav }

func (model Model) Init() tea.Cmd {
	controller := model.session
	return func() tea.Msg {
		return sessionResolvedMsg{session: controller.Resolve(context.Background())}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.layout()

	case tea.KeyMsg:
		cmd := model.handleKey(message)
		return model, cmd

	case sessionResolvedMsg:
		model.resolved = true
		model.nav = navigation.Initial(message.session.Role, model.location)
		return model, model.enter()

	case viewResultMsg:
		if message.generation != model.generation {
			return model, model.handleStale(message.payload)
		}
		model.pending = max(0, model.pending-1)
		return model, model.handleResult(message.payload)

	case spinner.TickMsg:
		if model.pending == 0 {
			model.spinning = false
			return model, nil
		}
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd

	case logRecordMsg:
		return model, model.setNotice(message.Summary, message.Level)

	case statusFadeMsg:
		if message.sequence == model.notice.sequence {
			model.notice = notice{}
		}

	case clipboardMsg:
		if message.ok {
			return model, model.setNotice("Access code copied to clipboard", slog.LevelInfo)
		}
		return model, model.setNotice("Clipboard unavailable", slog.LevelWarn)
	}
	return model, model.forwardToInputs(message)
}

// forwardToInputs gives non-key messages (cursor blink) to whichever
// text field is focused.
func (model *Model) forwardToInputs(message tea.Msg) tea.Cmd {
	switch model.nav.View {
	case navigation.Login:
		var cmd tea.Cmd
		model.login.input, cmd = model.login.input.Update(message)
		return cmd
	case navigation.AdminLogin:
		return model.adminLogin.update(message)
	case navigation.Dashboard:
		return model.dashboard.tickets.forward(message)
	case navigation.AdminDashboard:
		return model.console.tickets.forward(message)
	}
	return nil
}

// --- View lifecycle ---

// dispatch feeds events to the navigation reducer and re-enters the
// view when the view or the role changed.
func (model *Model) dispatch(events ...navigation.Event) tea.Cmd {
	previous := model.nav
	for _, event := range events {
		model.nav = navigation.Reduce(model.nav, event)
	}
	if !model.nav.MobileMenuExpanded {
		model.menu = nil
	}
	if model.nav.View == previous.View && model.nav.Role == previous.Role {
		return nil
	}
	return model.enter()
}

// enter activates the current view: the previous view's context is
// cancelled, its state discarded, and the new view's first fetch
// launched.
func (model *Model) enter() tea.Cmd {
	if model.cancelView != nil {
		model.cancelView()
	}
	model.viewContext, model.cancelView = context.WithCancel(context.Background())
	model.generation++
	model.pending = 0
	model.menu = nil

	var cmd tea.Cmd
	switch model.nav.View {
	case navigation.Home:
		model.home = homeState{}
	case navigation.LearnMore:
	case navigation.GetCode:
		model.getCode = getCodeState{}
	case navigation.Login:
		model.login = newLoginState()
		cmd = model.login.input.Focus()
	case navigation.AdminLogin:
		model.adminLogin = newAdminLoginState()
		cmd = model.adminLogin.username.Focus()
	case navigation.Dashboard:
		model.dashboard = newDashboardState(model.customer, model.clock)
		cmd = model.fetchOwnCode()
	case navigation.Settings:
		model.settings = settingsState{loading: true}
		cmd = model.fetchOwnCode()
	case navigation.Pricing:
		model.pricing = pricingState{}
	case navigation.AdminDashboard:
		model.console = newConsoleState(model.admin, model.clock)
		cmd = model.activateConsoleTab(model.console.workflow.Tab)
	}
	model.layout()
	return cmd
}

// launch runs work off the event loop under the current view's
// context. The result comes back as a viewResultMsg.
func (model *Model) launch(work func(ctx context.Context) any) tea.Cmd {
	ctx, generation := model.viewContext, model.generation
	model.pending++
	cmd := func() tea.Msg {
		return viewResultMsg{generation: generation, payload: work(ctx)}
	}
	if model.spinning {
		return cmd
	}
	model.spinning = true
	return tea.Batch(cmd, model.spinner.Tick)
}

// handleStale processes a result from a view that is no longer active.
// Only a successful login still matters: the token is stored, so the
// session changed even though the form is gone.
func (model *Model) handleStale(payload any) tea.Cmd {
	if outcome, ok := payload.(loginOutcome); ok && outcome.ok {
		return model.dispatch(navigation.SessionChanged{Role: outcome.session.Role})
	}
	model.logger.Debug("dropping result of a previous view", "type", payloadName(payload))
	return nil
}

func (model *Model) handleResult(payload any) tea.Cmd {
	switch result := payload.(type) {
	case loginOutcome:
		return model.completeLogin(result)
	case codeResult:
		return model.completeGenerateCode(result)
	case ownCodeResult:
		model.completeOwnCode(result)
	default:
		if pane := model.activePane(); pane != nil {
			if cmd, handled := model.completePane(pane, payload); handled {
				return cmd
			}
		}
		if model.nav.View == navigation.AdminDashboard {
			return model.completeConsole(payload)
		}
	}
	return nil
}

// setNotice shows text in the status bar until it fades.
func (model *Model) setNotice(text string, level slog.Level) tea.Cmd {
	model.notice = notice{text: text, level: level, sequence: model.notice.sequence + 1}
	sequence := model.notice.sequence
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{sequence: sequence}
	})
}

// --- Keys ---

// captured reports whether a text field or modal owns the keyboard, in
// which case global letter bindings are suppressed.
func (model *Model) captured() bool {
	switch model.nav.View {
	case navigation.Login, navigation.AdminLogin:
		return true
	case navigation.Dashboard:
		return model.dashboard.tab == DashboardTickets && model.dashboard.tickets.captured()
	case navigation.AdminDashboard:
		return model.console.confirm != nil ||
			(model.console.workflow.Tab == consoleTickets && model.console.tickets.captured())
	}
	return false
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	if key.Matches(message, model.keys.ForceQuit) {
		return model.quit()
	}
	if !model.resolved {
		if key.Matches(message, model.keys.Quit) {
			return model.quit()
		}
		return nil
	}
	if model.menu != nil {
		return model.handleMenuKey(message)
	}
	if !model.captured() {
		switch {
		case key.Matches(message, model.keys.Quit):
			return model.quit()
		case key.Matches(message, model.keys.Menu):
			return model.openMenu()
		}
	}

	switch model.nav.View {
	case navigation.Home:
		return model.handleHomeKey(message)
	case navigation.LearnMore:
		return model.handleLearnMoreKey(message)
	case navigation.GetCode:
		return model.handleGetCodeKey(message)
	case navigation.Login:
		return model.handleLoginKey(message)
	case navigation.AdminLogin:
		return model.handleAdminLoginKey(message)
	case navigation.Dashboard:
		return model.handleDashboardKey(message)
	case navigation.Settings:
		return model.handleSettingsKey(message)
	case navigation.Pricing:
		return model.handlePricingKey(message)
	case navigation.AdminDashboard:
		return model.handleConsoleKey(message)
	}
	return nil
}

func (model *Model) quit() tea.Cmd {
	if model.cancelView != nil {
		model.cancelView()
	}
	return tea.Quit
}

// --- Menu ---

const (
	menuLogout = "logout"
	menuQuit   = "quit"
)

func (model *Model) openMenu() tea.Cmd {
	model.nav = navigation.Reduce(model.nav, navigation.ToggleMenu{})
	var options []tui.PickerOption
	for _, view := range navigation.Reachable(model.nav.Role) {
		options = append(options, tui.PickerOption{Label: view.Title(), Value: string(view)})
	}
	if model.nav.Role != account.RoleAnonymous {
		options = append(options, tui.PickerOption{Label: "Log Out", Value: menuLogout})
	}
	options = append(options, tui.PickerOption{Label: "Quit", Value: menuQuit})
	model.menu = tui.NewPicker("Menu", "", options, string(model.nav.View))
	return nil
}

func (model *Model) closeMenu() {
	if model.nav.MobileMenuExpanded {
		model.nav = navigation.Reduce(model.nav, navigation.ToggleMenu{})
	}
	model.menu = nil
}

func (model *Model) handleMenuKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Up):
		model.menu.MoveUp()
	case key.Matches(message, model.keys.Down):
		model.menu.MoveDown()
	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.Menu):
		model.closeMenu()
	case key.Matches(message, model.keys.Select):
		choice := model.menu.Selected().Value
		switch choice {
		case menuQuit:
			return model.quit()
		case menuLogout:
			model.closeMenu()
			return model.logout()
		default:
			model.closeMenu()
			return model.navigate(navigation.View(choice))
		}
	}
	return nil
}

func (model *Model) navigate(view navigation.View) tea.Cmd {
	return model.dispatch(navigation.Navigate{View: view})
}

// logout clears the active role's token and returns to the home page.
func (model *Model) logout() tea.Cmd {
	role := model.nav.Role
	next, err := model.session.Logout(role)
	if err != nil {
		model.logger.Warn("logout failed", "role", role, "error", err)
	}
	cmd := model.dispatch(
		navigation.SessionChanged{Role: next.Role},
		navigation.Navigate{View: navigation.Home},
	)
	return tea.Batch(cmd, model.setNotice("Logged out", slog.LevelInfo))
}

// --- Shared fetches ---

func (model *Model) fetchOwnCode() tea.Cmd {
	customer := model.customer
	return model.launch(func(ctx context.Context) any {
		code, ok := customer.OwnCode(ctx)
		return ownCodeResult{code: code, ok: ok}
	})
}

func (model *Model) completeOwnCode(result ownCodeResult) {
	switch model.nav.View {
	case navigation.Dashboard:
		model.dashboard.code, model.dashboard.codeFailed = result.code, !result.ok
		model.dashboard.codeLoading = false
	case navigation.Settings:
		model.settings.code, model.settings.failed = result.code, !result.ok
		model.settings.loading = false
	}
}

func payloadName(payload any) string {
	switch payload.(type) {
	case loginOutcome:
		return "login"
	case codeResult:
		return "access-code"
	case ownCodeResult:
		return "own-code"
	default:
		return "workflow"
	}
}
