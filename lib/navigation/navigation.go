// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package navigation

import (
	"slices"
	"strings"

	"github.com/netrunner-host/netrunner/lib/schema/account"
)

// View identifies one page of the client.
type View string

const (
	Home           View = "home"
	LearnMore      View = "learn-more"
	GetCode        View = "get-code"
	Login          View = "login"
	Dashboard      View = "dashboard"
	Pricing        View = "pricing"
	Settings       View = "settings"
	AdminLogin     View = "admin-login"
	AdminDashboard View = "admin-dashboard"
)

// Views lists every view in menu order.
var Views = []View{Home, LearnMore, GetCode, Login, Dashboard, Pricing, Settings, AdminLogin, AdminDashboard}

// Title is the menu label of a view.
func (view View) Title() string {
	switch view {
	case Home:
		return "Home"
	case LearnMore:
		return "Learn More"
	case GetCode:
		return "Get Code"
	case Login:
		return "Login"
	case Dashboard:
		return "Dashboard"
	case Pricing:
		return "Pricing"
	case Settings:
		return "Settings"
	case AdminLogin:
		return "Admin Login"
	case AdminDashboard:
		return "Admin"
	default:
		return string(view)
	}
}

// allowed is the per-view allow-list.
var allowed = map[View][]account.Role{
	Home:           {account.RoleAnonymous, account.RoleCustomer},
	LearnMore:      {account.RoleAnonymous, account.RoleCustomer},
	GetCode:        {account.RoleAnonymous},
	Login:          {account.RoleAnonymous},
	Dashboard:      {account.RoleCustomer},
	Pricing:        {account.RoleCustomer},
	Settings:       {account.RoleCustomer},
	AdminLogin:     {account.RoleAnonymous, account.RoleCustomer},
	AdminDashboard: {account.RoleAdmin},
}

// Permitted reports whether role may render view. Unknown views are
// never permitted.
func Permitted(role account.Role, view View) bool {
	return slices.Contains(allowed[view], role)
}

// redirect returns where a denied request for view lands for role.
// The result is always permitted for role.
func redirect(role account.Role, view View) View {
	switch role {
	case account.RoleAdmin:
		return AdminDashboard
	case account.RoleCustomer:
		if view == AdminDashboard {
			return AdminLogin
		}
		return Dashboard
	default:
		if view == AdminDashboard {
			return AdminLogin
		}
		return Home
	}
}

// resolve returns view if permitted for role, else its redirect.
func resolve(role account.Role, view View) View {
	if Permitted(role, view) {
		return view
	}
	return redirect(role, view)
}

// State is the navigation state. It is a value: Reduce returns a new
// State and never modifies its input.
type State struct {
	View               View
	Role               account.Role
	MobileMenuExpanded bool
}

// IsAuthenticatedCustomer reports whether the session is a customer.
func (state State) IsAuthenticatedCustomer() bool { return state.Role == account.RoleCustomer }

// IsAuthenticatedAdmin reports whether the session is an administrator.
func (state State) IsAuthenticatedAdmin() bool { return state.Role == account.RoleAdmin }

// Event is an input to Reduce.
type Event interface {
	navigationEvent()
}

// Navigate is a user request to show View.
type Navigate struct {
	View View
}

// SessionChanged reports a login, logout, or verification outcome.
type SessionChanged struct {
	Role account.Role
}

// ToggleMenu flips the menu flag and nothing else.
type ToggleMenu struct{}

func (Navigate) navigationEvent()       {}
func (SessionChanged) navigationEvent() {}
func (ToggleMenu) navigationEvent()     {}

// Reduce applies event to state. The returned view is always permitted
// for the returned role.
func Reduce(state State, event Event) State {
	switch event := event.(type) {
	case Navigate:
		state.View = resolve(state.Role, event.View)
		state.MobileMenuExpanded = false
	case SessionChanged:
		state.Role = normalizeRole(event.Role)
		state.View = resolve(state.Role, state.View)
		state.MobileMenuExpanded = false
	case ToggleMenu:
		state.MobileMenuExpanded = !state.MobileMenuExpanded
	}
	// Holds for every event, including unknown ones and a zero State.
	state.Role = normalizeRole(state.Role)
	state.View = resolve(state.Role, state.View)
	return state
}

func normalizeRole(role account.Role) account.Role {
	switch role {
	case account.RoleCustomer, account.RoleAdmin:
		return role
	default:
		return account.RoleAnonymous
	}
}

// locations maps start paths to views.
var locations = map[string]View{
	"/":            Home,
	"/learn-more":  LearnMore,
	"/get-code":    GetCode,
	"/login":       Login,
	"/dashboard":   Dashboard,
	"/pricing":     Pricing,
	"/settings":    Settings,
	"/admin":       AdminDashboard,
	"/admin/login": AdminLogin,
}

// Initial derives the first state from the resolved session role and a
// start location such as "/dashboard". Unknown locations start at
// home; any location under /admin that is not the login page means
// the admin dashboard.
func Initial(role account.Role, location string) State {
	location = "/" + strings.Trim(location, "/")
	view, known := locations[location]
	if !known {
		view = Home
		if strings.HasPrefix(location, "/admin/") {
			view = AdminDashboard
		}
	}
	return Reduce(State{View: view, Role: role}, SessionChanged{Role: role})
}

// Reachable lists the views role may render, in menu order.
func Reachable(role account.Role) []View {
	var views []View
	for _, view := range Views {
		if Permitted(normalizeRole(role), view) {
			views = append(views, view)
		}
	}
	return views
}
