// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"strings"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/tokenstore"
)

// Credentials carries the login input. Each identity reads only the
// fields it needs.
type Credentials struct {
	// AccessCode is raw user input; grouping spaces are allowed.
	AccessCode string

	Username string
	Password string
}

// Identity is the login capability of one role.
type Identity interface {
	// Role is the role this identity grants.
	Role() account.Role

	// Login exchanges credentials for a token and stores it. Empty
	// credentials are rejected without a network call.
	Login(ctx context.Context, credentials Credentials) bool

	// Verify reports whether a stored token should be trusted.
	Verify(ctx context.Context) bool

	// Logout clears the stored token.
	Logout() error
}

// CustomerLogin is the slice of api.CustomerClient the customer
// identity needs.
type CustomerLogin interface {
	Login(ctx context.Context, code account.AccessCode) (string, bool)
}

// AdminLogin is the slice of api.AdminClient the admin identity needs.
type AdminLogin interface {
	Login(ctx context.Context, username, password string) (string, bool)
	VerifySession(ctx context.Context) bool
}

var (
	_ CustomerLogin = (*api.CustomerClient)(nil)
	_ AdminLogin    = (*api.AdminClient)(nil)
)

// CustomerIdentity logs in with an access code. Verification is lazy:
// a stored token is trusted until a call fails.
type CustomerIdentity struct {
	api    CustomerLogin
	tokens tokenstore.Store
}

// NewCustomerIdentity creates the customer identity.
func NewCustomerIdentity(client CustomerLogin, tokens tokenstore.Store) *CustomerIdentity {
	return &CustomerIdentity{api: client, tokens: tokens}
}

func (identity *CustomerIdentity) Role() account.Role { return account.RoleCustomer }

func (identity *CustomerIdentity) Login(ctx context.Context, credentials Credentials) bool {
	code := account.NormalizeAccessCode(credentials.AccessCode)
	if code == "" {
		return false
	}
	token, ok := identity.api.Login(ctx, code)
	if !ok {
		return false
	}
	return identity.tokens.Set(account.RoleCustomer, token) == nil
}

func (identity *CustomerIdentity) Verify(context.Context) bool {
	_, ok := identity.tokens.Get(account.RoleCustomer)
	return ok
}

func (identity *CustomerIdentity) Logout() error {
	return identity.tokens.Clear(account.RoleCustomer)
}

// AdminIdentity logs in with a username and password. Verification is
// eager: a stored token is checked against the server every time.
type AdminIdentity struct {
	api    AdminLogin
	tokens tokenstore.Store
}

// NewAdminIdentity creates the administrator identity.
func NewAdminIdentity(client AdminLogin, tokens tokenstore.Store) *AdminIdentity {
	return &AdminIdentity{api: client, tokens: tokens}
}

func (identity *AdminIdentity) Role() account.Role { return account.RoleAdmin }

func (identity *AdminIdentity) Login(ctx context.Context, credentials Credentials) bool {
	username := strings.TrimSpace(credentials.Username)
	if username == "" || credentials.Password == "" {
		return false
	}
	token, ok := identity.api.Login(ctx, username, credentials.Password)
	if !ok {
		return false
	}
	return identity.tokens.Set(account.RoleAdmin, token) == nil
}

func (identity *AdminIdentity) Verify(ctx context.Context) bool {
	if _, ok := identity.tokens.Get(account.RoleAdmin); !ok {
		return false
	}
	return identity.api.VerifySession(ctx)
}

func (identity *AdminIdentity) Logout() error {
	return identity.tokens.Clear(account.RoleAdmin)
}
