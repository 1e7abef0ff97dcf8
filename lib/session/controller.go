// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/tokenstore"
)

// Controller owns the active session of one client instance.
//
// Login and Resolve may run on a background goroutine (a bubbletea
// command) while the UI reads Current, so the session is guarded.
type Controller struct {
	customer Identity
	admin    Identity
	tokens   tokenstore.Store
	logger   *slog.Logger

	mu      sync.Mutex
	current account.Session
}

// NewController builds a Controller from explicit identities.
func NewController(customer, admin Identity, tokens tokenstore.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		customer: customer,
		admin:    admin,
		tokens:   tokens,
		logger:   logger,
		current:  account.Anonymous,
	}
}

// New builds a Controller with the standard identities over client.
func New(client *api.Client, tokens tokenstore.Store, logger *slog.Logger) *Controller {
	return NewController(
		NewCustomerIdentity(client.Customer(), tokens),
		NewAdminIdentity(client.Admin(), tokens),
		tokens, logger,
	)
}

// Current returns the active session.
func (controller *Controller) Current() account.Session {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.current
}

func (controller *Controller) set(session account.Session) account.Session {
	controller.mu.Lock()
	controller.current = session
	controller.mu.Unlock()
	return session
}

// sessionFor builds the session of identity from its stored token.
func (controller *Controller) sessionFor(identity Identity) (account.Session, bool) {
	token, ok := controller.tokens.Get(identity.Role())
	if !ok {
		return account.Session{}, false
	}
	return account.Session{Role: identity.Role(), Token: token}, true
}

// Resolve derives the startup session. A stored admin token is trusted
// only after the server confirms it; one that fails verification stays
// in the store but is ignored. Otherwise a stored customer token is
// trusted without a call. With neither the session is anonymous.
func (controller *Controller) Resolve(ctx context.Context) account.Session {
	if _, present := controller.tokens.Get(account.RoleAdmin); present {
		if controller.admin.Verify(ctx) {
			if session, ok := controller.sessionFor(controller.admin); ok {
				return controller.set(session)
			}
		}
		controller.logger.Warn("stored admin token failed verification")
	}

	if controller.customer.Verify(ctx) {
		if session, ok := controller.sessionFor(controller.customer); ok {
			return controller.set(session)
		}
	}
	return controller.set(account.Anonymous)
}

func (controller *Controller) login(ctx context.Context, identity Identity, credentials Credentials) (account.Session, bool) {
	if !identity.Login(ctx, credentials) {
		return controller.Current(), false
	}
	session, ok := controller.sessionFor(identity)
	if !ok {
		return controller.Current(), false
	}
	controller.logger.Info("logged in", "role", string(identity.Role()))
	return controller.set(session), true
}

// LoginCustomer logs in with an access code as typed by the user.
// On failure the current session is unchanged.
func (controller *Controller) LoginCustomer(ctx context.Context, input string) (account.Session, bool) {
	return controller.login(ctx, controller.customer, Credentials{AccessCode: input})
}

// LoginAdmin logs in with administrator credentials. On failure the
// current session is unchanged.
func (controller *Controller) LoginAdmin(ctx context.Context, username, password string) (account.Session, bool) {
	return controller.login(ctx, controller.admin, Credentials{Username: username, Password: password})
}

// Logout clears the token of role and returns the anonymous session.
// The session becomes anonymous even when clearing the store fails;
// the error reports the stale token left on disk.
func (controller *Controller) Logout(role account.Role) (account.Session, error) {
	var identity Identity
	switch role {
	case account.RoleCustomer:
		identity = controller.customer
	case account.RoleAdmin:
		identity = controller.admin
	default:
		return controller.set(account.Anonymous), nil
	}

	err := identity.Logout()
	controller.logger.Info("logged out", "role", string(role))
	session := controller.set(account.Anonymous)
	if err != nil {
		return session, fmt.Errorf("clearing %s token: %w", role, err)
	}
	return session, nil
}
