// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/netrunner-host/netrunner/lib/navigation"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
	"github.com/netrunner-host/netrunner/lib/tui"
)

const (
	// chromeHeight is the header, its rule and the status bar.
	chromeHeight = 3

	// tabBarHeight is a tab row plus a blank line.
	tabBarHeight = 2

	// threadChrome is the rows of the thread view that are not the
	// scrolling viewport: title, meta line, reply box and hints.
	threadChrome = 9

	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04"
)

func (model Model) bodyHeight() int { return max(1, model.height-chromeHeight) }

// layout sizes the scrolling and multi-line widgets to the terminal.
func (model *Model) layout() {
	width := max(20, model.width)
	paneHeight := max(4, model.bodyHeight()-tabBarHeight)
	for _, pane := range []*ticketPane{&model.dashboard.tickets, &model.console.tickets} {
		if pane.workflow == nil {
			continue
		}
		pane.thread.Width = width - 1
		pane.thread.Height = max(1, paneHeight-threadChrome)
		pane.reply.SetWidth(width - 2)
		pane.description.SetWidth(width - 2)
		pane.filter.Width = width - 4
		pane.title.Width = width - 10
		model.syncThread(pane, false)
	}
	model.login.input.Width = min(40, width-16)
}

// syncThread re-renders the selected ticket's description and messages
// into the thread viewport.
func (model *Model) syncThread(pane *ticketPane, bottom bool) {
	selected := pane.workflow.Selected
	if selected == nil {
		pane.thread.SetContent("")
		return
	}
	width := pane.thread.Width
	if width <= 0 {
		width = 79
	}
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var content strings.Builder
	content.WriteString(tui.RenderMarkdown(selected.Description, model.theme, width))
	content.WriteString("\n")
	content.WriteString(faint.Render(strings.Repeat("─", width)))
	content.WriteString("\n")

	if len(pane.workflow.Messages) == 0 {
		if pane.workflow.Busy {
			content.WriteString(faint.Render("Loading messages…"))
		} else {
			content.WriteString(faint.Render("No messages yet."))
		}
	}
	for index, message := range pane.workflow.Messages {
		if index > 0 {
			content.WriteString("\n")
		}
		color := model.theme.CustomerMessage
		if message.Author == ticket.AuthorAdmin {
			color = model.theme.AdminMessage
		}
		when := "just now"
		if !message.CreatedAt.IsZero() {
			when = message.CreatedAt.Local().Format(timestampLayout)
		}
		header := lipgloss.NewStyle().Foreground(color).Bold(true).Render(message.Author.Label())
		content.WriteString(header + faint.Render(" · "+when))
		content.WriteString("\n")
		body := tui.RenderMarkdown(message.Content, model.theme, width-2)
		for line := range strings.SplitSeq(strings.TrimRight(body, "\n"), "\n") {
			content.WriteString(lipgloss.NewStyle().Foreground(color).Render("▌ ") + line + "\n")
		}
	}
	pane.thread.SetContent(content.String())
	if bottom {
		pane.thread.GotoBottom()
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.resolved {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Connecting…")
	}

	var body string
	switch model.nav.View {
	case navigation.Home:
		body = model.renderHome()
	case navigation.LearnMore:
		body = tui.RenderMarkdown(termsOfService, model.theme, min(model.width, 100))
	case navigation.GetCode:
		body = model.renderGetCode()
	case navigation.Login:
		body = model.renderLogin()
	case navigation.AdminLogin:
		body = model.renderAdminLogin()
	case navigation.Dashboard:
		body = model.renderDashboard()
	case navigation.Settings:
		body = model.renderSettings()
	case navigation.Pricing:
		body = model.renderPricing()
	case navigation.AdminDashboard:
		body = model.renderConsole()
	}

	screen := strings.Join([]string{
		model.renderHeader(),
		lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(strings.Repeat("─", model.width)),
		fitHeight(body, model.bodyHeight()),
		model.renderStatusBar(),
	}, "\n")

	if pane := model.activePane(); pane != nil && pane.picker != nil {
		screen = tui.CenterOverlay(screen, pane.picker.Render(model.theme), model.width, model.height)
	}
	if model.nav.View == navigation.AdminDashboard && model.console.confirm != nil {
		screen = tui.CenterOverlay(screen, model.console.confirm.Render(model.theme, model.width), model.width, model.height)
	}
	if model.menu != nil {
		x := max(0, model.width-model.menu.Width()-1)
		screen = tui.SpliceOverlay(screen, model.menu.Render(model.theme), x, 1)
	}
	return screen
}

// fitHeight pads or cuts body to exactly height lines.
func fitHeight(body string, height int) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderHeader() string {
	brand := lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true).Render("NETRUNNER")
	title := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Render(" › " + model.nav.View.Title())

	var role string
	switch model.nav.Role {
	case account.RoleCustomer:
		role = "customer"
	case account.RoleAdmin:
		role = "admin"
	default:
		role = "guest"
	}
	right := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(role + "  m menu")

	gap := max(1, model.width-lipgloss.Width(brand)-lipgloss.Width(title)-lipgloss.Width(right))
	return brand + title + strings.Repeat(" ", gap) + right
}

func (model Model) renderStatusBar() string {
	var left string
	if model.pending > 0 {
		left = model.spinner.View() + " "
	}
	if model.notice.text != "" {
		color := model.theme.SuccessText
		switch {
		case model.notice.level >= slog.LevelError:
			color = model.theme.ErrorText
		case model.notice.level >= slog.LevelWarn:
			color = model.theme.StatusInProgress
		}
		return tui.Truncate(left+lipgloss.NewStyle().Foreground(color).Render(model.notice.text), model.width)
	}
	return tui.Truncate(left+model.renderHelp(), model.width)
}

func (model Model) renderHelp() string {
	keys := model.keys
	var bindings []key.Binding
	switch model.nav.View {
	case navigation.Home:
		bindings = []key.Binding{keys.Select, keys.Menu, keys.Quit}
	case navigation.GetCode:
		bindings = []key.Binding{keys.Copy, keys.Back}
	case navigation.Login, navigation.AdminLogin:
		bindings = []key.Binding{keys.Back}
	case navigation.Dashboard:
		bindings = []key.Binding{keys.NextTab}
		if model.dashboard.tab == DashboardTickets {
			bindings = append(bindings, model.paneHelp(&model.dashboard.tickets)...)
		} else {
			bindings = append(bindings, keys.Copy, keys.Refresh, keys.Menu)
		}
	case navigation.Settings:
		bindings = []key.Binding{keys.NextTab, keys.Copy, keys.Back}
	case navigation.Pricing:
		bindings = []key.Binding{keys.Select, keys.Back}
	case navigation.AdminDashboard:
		bindings = []key.Binding{keys.NextTab}
		if model.console.workflow != nil && model.console.workflow.Tab == consoleTickets {
			bindings = append(bindings, model.paneHelp(&model.console.tickets)...)
			bindings = append(bindings, keys.Delete)
		} else {
			bindings = append(bindings, keys.Delete, keys.Refresh, keys.Menu)
		}
	default:
		bindings = []key.Binding{keys.Back}
	}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" {
			continue
		}
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, " · "))
}

func (model Model) paneHelp(pane *ticketPane) []key.Binding {
	keys := model.keys
	switch pane.mode {
	case paneReply, paneCreate:
		return []key.Binding{keys.Submit, keys.Back}
	case paneThread:
		bindings := []key.Binding{keys.Reply}
		if pane.workflow.CanUpdateStatus() {
			bindings = append(bindings, keys.Status)
		}
		return append(bindings, keys.Back)
	}
	bindings := []key.Binding{keys.Select, keys.Filter}
	if pane.workflow.CanCreate() {
		bindings = append(bindings, keys.New)
	}
	return append(bindings, keys.Refresh)
}

// --- Page bodies ---

func (model Model) button(label string, focused, disabled bool) string {
	style := lipgloss.NewStyle().Padding(0, 2).
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.NormalText)
	switch {
	case disabled:
		style = style.Foreground(model.theme.FaintText)
	case focused:
		style = style.Background(model.theme.Accent).Foreground(lipgloss.Color("16")).Bold(true)
	}
	return style.Render(label)
}

func (model Model) heading(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true).Render(text)
}

func (model Model) faint(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}

func (model Model) wrap(text string) string {
	return lipgloss.NewStyle().Width(min(model.width, 80)).Render(text)
}

func (model Model) renderHome() string {
	var lines []string
	lines = append(lines, "", model.heading("Hosting for those who value privacy"), "")
	lines = append(lines, model.wrap(tagline), "")

	badges := make([]string, 0, len(highlights))
	for _, highlight := range highlights {
		badges = append(badges, lipgloss.NewStyle().Foreground(model.theme.SuccessText).Render("✓ "+highlight))
	}
	lines = append(lines, strings.Join(badges, "   "), "")

	actions := homeActions(model.nav.Role)
	buttons := make([]string, 0, len(actions))
	for index, action := range actions {
		buttons = append(buttons, model.button(action.label, index == model.home.cursor, false))
	}
	lines = append(lines, strings.Join(buttons, " "), "")
	lines = append(lines, model.faint("Telegram: "+telegramContact))
	return strings.Join(lines, "\n")
}

func (model Model) renderGetCode() string {
	lines := []string{"", model.heading("Get your access code"), "", model.wrap(getCodeIntro), ""}
	label := "Generate Code"
	if model.getCode.code != "" {
		label = "Generate Another"
	}
	if model.getCode.loading {
		label = "Generating…"
	}
	lines = append(lines, model.button(label, !model.getCode.loading, model.getCode.loading), "")

	switch {
	case model.getCode.failed:
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render("Could not generate a code. Try again."))
	case model.getCode.code != "":
		code := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(model.theme.Accent).
			Padding(0, 2).
			Bold(true).
			Render(account.GroupAccessCode(model.getCode.code))
		lines = append(lines, code, "",
			lipgloss.NewStyle().Foreground(model.theme.ErrorText).Width(min(model.width, 80)).Render(getCodeWarning))
	}
	return strings.Join(lines, "\n")
}

func (model Model) formError(text string) string {
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render(text)
}

func (model Model) renderLogin() string {
	lines := []string{"", model.heading("Login"), "", model.faint("Enter the access code you generated."), "", model.login.input.View(), ""}
	if model.login.pending {
		lines = append(lines, model.spinner.View()+" Checking…")
	} else {
		lines = append(lines, model.formError(model.login.err))
	}
	lines = append(lines, "", model.faint("No code yet? Generate one from the home page."))
	return strings.Join(lines, "\n")
}

func (model Model) renderAdminLogin() string {
	state := model.adminLogin
	lines := []string{"", model.heading("Administrator login"), "", state.username.View(), state.password.View(), ""}
	if state.pending {
		lines = append(lines, model.spinner.View()+" Signing in…")
	} else {
		lines = append(lines, model.formError(state.err))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderTabs(labels []string, active int) string {
	tabs := make([]string, 0, len(labels))
	for index, label := range labels {
		text := fmt.Sprintf(" %d %s ", index+1, label)
		if index == active {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true).Underline(true).Render(text))
		} else {
			tabs = append(tabs, model.faint(text))
		}
	}
	return strings.Join(tabs, " ") + "\n"
}

func (model Model) renderDashboard() string {
	state := model.dashboard
	tabs := model.renderTabs(dashboardTabs, int(state.tab))
	var body string
	switch state.tab {
	case DashboardOverview:
		body = model.renderOverview()
	case DashboardDomains:
		rows := make([][]string, 0, len(placeholderDomains))
		for _, domain := range placeholderDomains {
			rows = append(rows, []string{domain.Name, domain.Status, domain.ExpiresAt})
		}
		body = model.renderTable([]string{"Domain", "Status", "Expires"}, rows, -1)
	case DashboardDatabases:
		rows := make([][]string, 0, len(placeholderDatabases))
		for _, database := range placeholderDatabases {
			rows = append(rows, []string{database.Name, database.Size, database.Status})
		}
		body = model.renderTable([]string{"Database", "Size", "Status"}, rows, -1)
	case DashboardTickets:
		body = model.renderPane(&state.tickets)
	}
	return tabs + "\n" + body
}

func (model Model) renderCode(code account.AccessCode, loading, failed bool) string {
	switch {
	case loading:
		return model.spinner.View() + " loading"
	case failed || code == "":
		return model.formError("unavailable")
	}
	return lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true).Render(account.GroupAccessCode(code))
}

func (model Model) renderOverview() string {
	state := model.dashboard
	label := lipgloss.NewStyle().Width(14).Foreground(model.theme.FaintText)
	nodeJS := "disabled"
	if placeholderPlan.NodeJSEnabled {
		nodeJS = "enabled"
	}
	lines := []string{
		label.Render("Access code") + model.renderCode(state.code, state.codeLoading, state.codeFailed),
		"",
		label.Render("Plan") + placeholderPlan.Name,
		label.Render("Expires") + placeholderPlan.ExpiresAt,
		label.Render("NodeJS") + nodeJS,
		label.Render("Domains") + fmt.Sprint(len(placeholderDomains)),
		label.Render("Databases") + fmt.Sprint(len(placeholderDatabases)),
		"",
		model.faint("Upgrade from the Pricing page. Support: " + supportContact),
	}
	return strings.Join(lines, "\n")
}

// renderTable draws rows under a header with columns sized to their
// widest cell. cursor highlights one row, -1 for none.
func (model Model) renderTable(headers []string, rows [][]string, cursor int) string {
	widths := make([]int, len(headers))
	for column, header := range headers {
		widths[column] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for column, cell := range row {
			widths[column] = max(widths[column], lipgloss.Width(cell))
		}
	}
	format := func(cells []string) string {
		padded := make([]string, len(cells))
		for column, cell := range cells {
			padded[column] = cell + strings.Repeat(" ", widths[column]-lipgloss.Width(cell))
		}
		return tui.Truncate(strings.Join(padded, "  "), model.width)
	}

	lines := []string{lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render(format(headers))}
	selected := lipgloss.NewStyle().Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground)
	for index, row := range rows {
		line := format(row)
		if index == cursor {
			line = selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderSettings() string {
	state := model.settings
	tabs := model.renderTabs([]string{"Account", "Security"}, boolIndex(state.security))
	var lines []string
	if state.security {
		lines = []string{
			model.heading("Access code"),
			model.faint("Your access code is permanent. Replacing it will be possible in a future release."),
			"",
			model.button("Generate New Access Code", false, true),
		}
	} else {
		label := lipgloss.NewStyle().Width(14).Foreground(model.theme.FaintText)
		lines = []string{
			label.Render("Access code") + model.renderCode(state.code, state.loading, state.failed),
			label.Render("Account") + "customer",
			"",
			model.faint("Keep your access code private. Anyone holding it can manage your services."),
		}
	}
	return tabs + "\n" + strings.Join(lines, "\n")
}

func (model Model) renderPricing() string {
	cards := make([]string, 0, len(plans))
	for index, plan := range plans {
		border := model.theme.BorderColor
		if index == model.pricing.cursor {
			border = model.theme.Accent
		}
		lines := []string{
			model.heading(plan.Name),
			lipgloss.NewStyle().Bold(true).Render(plan.Price) + model.faint(" / "+plan.Period),
			"",
		}
		for _, feature := range plan.Features {
			lines = append(lines, "• "+feature)
		}
		lines = append(lines, "", model.button("Order", index == model.pricing.cursor, false))
		cards = append(cards, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(24).
			Render(strings.Join(lines, "\n")))
	}
	return strings.Join([]string{
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		model.heading("Need a Custom Plan?"),
		model.faint("Contact us on Telegram: " + telegramContact),
	}, "\n")
}

func (model Model) renderConsole() string {
	state := model.console
	if state.workflow == nil {
		return ""
	}
	tabs := model.renderTabs(consoleTabs, consoleTabIndex(state.workflow.Tab))
	if state.workflow.Tab == consoleTickets {
		return tabs + "\n" + model.renderPane(&state.tickets)
	}

	users := state.workflow.Users
	if len(users) == 0 {
		switch {
		case state.workflow.Busy:
			return tabs + "\n" + model.spinner.View() + " Loading users…"
		case state.workflow.Failed:
			return tabs + "\n" + model.formError("Could not load users.")
		}
		return tabs + "\n" + model.faint("No users.")
	}
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		created := ""
		if !user.CreatedAt.IsZero() {
			created = user.CreatedAt.Local().Format(dateLayout)
		}
		rows = append(rows, []string{user.ID, account.GroupAccessCode(user.Code), created})
	}
	start := max(0, state.userCursor-(model.bodyHeight()-tabBarHeight-3))
	table := model.renderTable([]string{"ID", "Access code", "Created"}, rows[start:], state.userCursor-start)
	if state.workflow.Failed {
		table += "\n" + model.formError("Last request failed.")
	}
	return tabs + "\n" + table
}

// --- Ticket pane ---

func (model Model) renderPane(pane *ticketPane) string {
	switch pane.mode {
	case paneThread, paneReply:
		if pane.workflow.Selected != nil {
			return model.renderThread(pane)
		}
	case paneCreate:
		return model.renderCreate(pane)
	}
	return model.renderTicketList(pane)
}

func (model Model) renderTicketList(pane *ticketPane) string {
	var lines []string
	if pane.mode == paneFilter || pane.filter.Value() != "" {
		lines = append(lines, pane.filter.View())
	}

	matches := pane.matches()
	if len(matches) == 0 {
		switch {
		case pane.workflow.Busy:
			lines = append(lines, model.spinner.View()+" Loading tickets…")
		case pane.workflow.Failed:
			lines = append(lines, model.formError("Could not load tickets."))
		case pane.filter.Value() != "":
			lines = append(lines, model.faint("No tickets match."))
		default:
			empty := "No tickets."
			if pane.workflow.CanCreate() {
				empty = "No tickets yet. Press n to open one."
			}
			lines = append(lines, model.faint(empty))
		}
		return strings.Join(lines, "\n")
	}

	rows := max(1, model.bodyHeight()-tabBarHeight-len(lines)-1)
	start := max(0, pane.cursor-rows+1)
	end := min(len(matches), start+rows)
	base := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	match := lipgloss.NewStyle().Background(model.theme.MatchBackground).Foreground(model.theme.SelectedForeground)
	selected := lipgloss.NewStyle().Background(model.theme.SelectedBackground)

	titleWidth := max(10, model.width-36)
	for index := start; index < end; index++ {
		entry := matches[index]
		title := tui.Truncate(tui.HighlightRunes(entry.Ticket.Title, entry.TitlePositions, base, match), titleWidth)
		title += strings.Repeat(" ", max(0, titleWidth-lipgloss.Width(title)))
		created := ""
		if !entry.Ticket.CreatedAt.IsZero() {
			created = entry.Ticket.CreatedAt.Local().Format(dateLayout)
		}
		badge := model.theme.StatusBadge(entry.Ticket.Status)
		badge += strings.Repeat(" ", max(0, 12-lipgloss.Width(badge)))
		line := fmt.Sprintf("%s #%-6s %s %s %s", cursorMark(index == pane.cursor), entry.Ticket.ID, title, badge, model.faint(created))
		if index == pane.cursor {
			line = selected.Render(line)
		}
		lines = append(lines, line)
	}
	if pane.workflow.Failed {
		lines = append(lines, model.formError("Last request failed."))
	}
	return strings.Join(lines, "\n")
}

func cursorMark(current bool) string {
	if current {
		return "›"
	}
	return " "
}

func (model Model) renderThread(pane *ticketPane) string {
	selected := pane.workflow.Selected
	header := model.heading(selected.Title) + "  " + model.theme.StatusBadge(selected.Status)
	meta := model.faint(fmt.Sprintf("#%s · opened %s", selected.ID, selected.CreatedAt.Local().Format(timestampLayout)))
	if selected.CreatedAt.IsZero() {
		meta = model.faint("#" + selected.ID)
	}

	scrollbar := tui.RenderScrollbar(model.theme, pane.thread.Height, pane.thread.TotalLineCount(),
		pane.thread.Height, pane.thread.YOffset, pane.mode == paneThread)
	lines := []string{header, meta, lipgloss.JoinHorizontal(lipgloss.Top, pane.thread.View(), scrollbar), ""}
	if pane.mode == paneReply {
		lines = append(lines, pane.reply.View())
	} else {
		lines = append(lines, model.faint("Press r to reply."))
	}
	lines = append(lines, model.formError(pane.formError))
	return strings.Join(lines, "\n")
}

func (model Model) renderCreate(pane *ticketPane) string {
	lines := []string{
		model.heading("New ticket"),
		"",
		pane.title.View(),
		"",
		pane.description.View(),
		"",
		model.formError(pane.formError),
	}
	if pane.workflow.Busy {
		lines = append(lines, model.spinner.View()+" Submitting…")
	}
	return strings.Join(lines, "\n")
}
