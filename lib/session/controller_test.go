// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"testing"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/apitest"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/tokenstore"
)

func newController(t *testing.T) (*Controller, *apitest.Server, *tokenstore.Memory) {
	t.Helper()
	server := apitest.New(t)
	tokens := tokenstore.NewMemory()
	client := api.New(api.Options{BaseURL: server.URL(), Tokens: tokens})
	return New(client, tokens, nil), server, tokens
}

func TestResolveAnonymous(t *testing.T) {
	controller, server, _ := newController(t)

	session := controller.Resolve(context.Background())
	if session != account.Anonymous {
		t.Errorf("Resolve() = %+v, want anonymous", session)
	}
	if len(server.Requests()) != 0 {
		t.Errorf("anonymous resolve made %d requests", len(server.Requests()))
	}
}

func TestResolveCustomerIsLazy(t *testing.T) {
	controller, server, tokens := newController(t)
	tokens.Set(account.RoleCustomer, "possibly-expired")

	session := controller.Resolve(context.Background())
	if session.Role != account.RoleCustomer || session.Token != "possibly-expired" {
		t.Errorf("Resolve() = %+v", session)
	}
	if len(server.Requests()) != 0 {
		t.Errorf("customer resolve made %d requests, want 0", len(server.Requests()))
	}
}

func TestResolveAdminVerified(t *testing.T) {
	controller, server, tokens := newController(t)
	tokens.Set(account.RoleAdmin, server.SeedAdminToken())
	tokens.Set(account.RoleCustomer, "customer-token")

	session := controller.Resolve(context.Background())
	if session.Role != account.RoleAdmin {
		t.Errorf("Resolve() role = %s, want admin", session.Role)
	}
	if server.RequestCount("GET /admin/profile") != 1 {
		t.Errorf("admin profile checked %d times", server.RequestCount("GET /admin/profile"))
	}
}

func TestResolveAdminRejectedFallsBack(t *testing.T) {
	controller, server, tokens := newController(t)
	tokens.Set(account.RoleAdmin, server.SeedAdminToken())
	server.RevokeAdminTokens()

	if session := controller.Resolve(context.Background()); session != account.Anonymous {
		t.Errorf("Resolve() = %+v, want anonymous", session)
	}
	if _, ok := tokens.Get(account.RoleAdmin); !ok {
		t.Error("rejected admin token was removed from the store")
	}

	tokens.Set(account.RoleCustomer, "c")
	if session := controller.Resolve(context.Background()); session.Role != account.RoleCustomer {
		t.Errorf("Resolve() with customer fallback = %+v", session)
	}
}

func TestLoginCustomer(t *testing.T) {
	controller, server, tokens := newController(t)
	_, code, _ := server.SeedCustomer()
	grouped := account.GroupAccessCode(account.AccessCode(code))

	session, ok := controller.LoginCustomer(context.Background(), grouped)
	if !ok {
		t.Fatal("LoginCustomer failed")
	}
	if session.Role != account.RoleCustomer || controller.Current() != session {
		t.Errorf("session = %+v, current = %+v", session, controller.Current())
	}
	stored, _ := tokens.Get(account.RoleCustomer)
	if stored != session.Token {
		t.Errorf("stored token %q != session token %q", stored, session.Token)
	}

	requests := server.Requests()
	if got := requests[len(requests)-1].Body["code"]; got != code {
		t.Errorf("login sent code %v, want %q (spaces stripped)", got, code)
	}
}

func TestLoginCustomerRejectedLocally(t *testing.T) {
	controller, server, _ := newController(t)

	for _, input := range []string{"", "   ", "abcd"} {
		if _, ok := controller.LoginCustomer(context.Background(), input); ok {
			t.Errorf("LoginCustomer(%q) succeeded", input)
		}
	}
	if len(server.Requests()) != 0 {
		t.Errorf("empty logins made %d requests", len(server.Requests()))
	}
}

func TestLoginFailureKeepsSession(t *testing.T) {
	controller, _, tokens := newController(t)

	session, ok := controller.LoginCustomer(context.Background(), "9999 9999")
	if ok || session != account.Anonymous {
		t.Errorf("failed login = %+v, %v", session, ok)
	}
	if _, stored := tokens.Get(account.RoleCustomer); stored {
		t.Error("failed login stored a token")
	}
}

func TestLoginAdminAndLogout(t *testing.T) {
	controller, server, tokens := newController(t)
	username, password := server.AdminCredentials()

	if _, ok := controller.LoginAdmin(context.Background(), username, ""); ok {
		t.Error("LoginAdmin with an empty password succeeded")
	}
	if server.RequestCount("POST /admin/login") != 0 {
		t.Error("empty password reached the server")
	}

	session, ok := controller.LoginAdmin(context.Background(), username, password)
	if !ok || session.Role != account.RoleAdmin {
		t.Fatalf("LoginAdmin = %+v, %v", session, ok)
	}

	session, err := controller.Logout(account.RoleAdmin)
	if err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if session != account.Anonymous || controller.Current() != account.Anonymous {
		t.Errorf("after logout: %+v / %+v", session, controller.Current())
	}
	if _, ok := tokens.Get(account.RoleAdmin); ok {
		t.Error("admin token survived logout")
	}
}

func TestLogoutLeavesOtherRole(t *testing.T) {
	controller, _, tokens := newController(t)
	tokens.Set(account.RoleCustomer, "c")
	tokens.Set(account.RoleAdmin, "a")

	if _, err := controller.Logout(account.RoleCustomer); err != nil {
		t.Fatal(err)
	}
	if _, ok := tokens.Get(account.RoleAdmin); !ok {
		t.Error("customer logout cleared the admin token")
	}
}
