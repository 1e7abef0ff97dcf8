// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/netrunner-host/netrunner/lib/apitest"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
	"github.com/netrunner-host/netrunner/lib/tokenstore"
)

type fixture struct {
	server *apitest.Server
	tokens *tokenstore.Memory
	client *Client
	logs   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	server := apitest.New(t)
	tokens := tokenstore.NewMemory()
	logs := &bytes.Buffer{}
	client := New(Options{
		BaseURL: server.URL(),
		Tokens:  tokens,
		Logger:  slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelWarn})),
	})
	return &fixture{server: server, tokens: tokens, client: client, logs: logs}
}

func (f *fixture) loginCustomer(t *testing.T) (userID string) {
	t.Helper()
	userID, _, token := f.server.SeedCustomer()
	if err := f.tokens.Set(account.RoleCustomer, token); err != nil {
		t.Fatal(err)
	}
	return userID
}

func (f *fixture) loginAdmin(t *testing.T) {
	t.Helper()
	if err := f.tokens.Set(account.RoleAdmin, f.server.SeedAdminToken()); err != nil {
		t.Fatal(err)
	}
}

func TestRequestAccessCodeAndLogin(t *testing.T) {
	f := newFixture(t)
	customer := f.client.Customer()
	ctx := context.Background()

	code, ok := customer.RequestAccessCode(ctx)
	if !ok || code == "" {
		t.Fatalf("RequestAccessCode = %q, %v", code, ok)
	}

	token, ok := customer.Login(ctx, code)
	if !ok || token == "" {
		t.Fatalf("Login = %q, %v", token, ok)
	}

	if _, ok := customer.Login(ctx, "0000"); ok {
		t.Error("Login with an unknown code succeeded")
	}
	if !strings.Contains(f.logs.String(), "operation=customer-login") || !strings.Contains(f.logs.String(), "status=401") {
		t.Errorf("failed login not logged with operation and status: %s", f.logs.String())
	}
}

func TestMissingTokenSkipsNetwork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, ok := f.client.Customer().OwnCode(ctx); ok {
		t.Error("OwnCode without a token succeeded")
	}
	tickets, ok := f.client.Customer().ListOwnTickets(ctx)
	if ok || tickets == nil || len(tickets) != 0 {
		t.Errorf("ListOwnTickets without a token = %v, %v; want empty, false", tickets, ok)
	}
	if f.client.Admin().VerifySession(ctx) {
		t.Error("VerifySession without a token succeeded")
	}
	if f.client.Admin().DeleteUser(ctx, "x") {
		t.Error("DeleteUser without a token succeeded")
	}

	if requests := f.server.Requests(); len(requests) != 0 {
		t.Errorf("server received %d requests, want 0", len(requests))
	}
}

func TestRequestHeaders(t *testing.T) {
	f := newFixture(t)
	f.loginCustomer(t)
	ctx := context.Background()

	f.client.Customer().ListOwnTickets(ctx)
	f.client.Customer().ListOwnTickets(ctx)

	requests := f.server.Requests()
	if len(requests) != 2 {
		t.Fatalf("got %d requests, want 2", len(requests))
	}
	if !strings.HasPrefix(requests[0].Authorization, "Bearer ") {
		t.Errorf("Authorization = %q", requests[0].Authorization)
	}
	if requests[0].RequestID == "" || requests[0].RequestID == requests[1].RequestID {
		t.Errorf("request ids not unique: %q, %q", requests[0].RequestID, requests[1].RequestID)
	}
}

func TestCustomerTicketLifecycle(t *testing.T) {
	f := newFixture(t)
	f.loginCustomer(t)
	customer := f.client.Customer()
	ctx := context.Background()

	created, ok := customer.CreateTicket(ctx, "Domain down", "example.com not resolving")
	if !ok {
		t.Fatal("CreateTicket failed")
	}
	if created.Status != ticket.StatusOpen || created.Title != "Domain down" {
		t.Errorf("created = %+v", created)
	}

	tickets, ok := customer.ListOwnTickets(ctx)
	if !ok || len(tickets) != 1 || tickets[0].ID != created.ID {
		t.Fatalf("ListOwnTickets = %+v, %v", tickets, ok)
	}

	if !customer.PostMessage(ctx, created.ID, "any update?") {
		t.Fatal("PostMessage failed")
	}
	f.server.SeedMessage(created.ID, "looking into it", true)

	messages, ok := customer.ListMessages(ctx, created.ID)
	if !ok || len(messages) != 2 {
		t.Fatalf("ListMessages = %+v, %v", messages, ok)
	}
	if messages[0].Author != ticket.AuthorCustomer || messages[1].Author != ticket.AuthorAdmin {
		t.Errorf("authors = %s, %s", messages[0].Author, messages[1].Author)
	}
}

func TestOwnCode(t *testing.T) {
	f := newFixture(t)
	_, code, token := f.server.SeedCustomer()
	f.tokens.Set(account.RoleCustomer, token)

	got, ok := f.client.Customer().OwnCode(context.Background())
	if !ok || string(got) != code {
		t.Errorf("OwnCode = %q, %v; want %q", got, ok, code)
	}
}

func TestPathSegmentsEscaped(t *testing.T) {
	f := newFixture(t)
	f.loginCustomer(t)

	f.client.Customer().ListMessages(context.Background(), "a/b?c")

	requests := f.server.Requests()
	if len(requests) != 1 {
		t.Fatalf("got %d requests", len(requests))
	}
	if !strings.Contains(requests[0].Path, "a%2Fb%3Fc") {
		t.Errorf("path not escaped: %s", requests[0].Path)
	}
}

func TestServerFailureCollapsesToFalse(t *testing.T) {
	f := newFixture(t)
	f.loginAdmin(t)
	f.server.Fail("GET /admin/users", http.StatusInternalServerError)

	users, ok := f.client.Admin().ListUsers(context.Background())
	if ok {
		t.Error("ListUsers succeeded against a failing server")
	}
	if users == nil || len(users) != 0 {
		t.Errorf("failed list = %v, want empty non-nil", users)
	}
	if !strings.Contains(f.logs.String(), "status=500") || !strings.Contains(f.logs.String(), "request_id=") {
		t.Errorf("failure log missing fields: %s", f.logs.String())
	}
}

func TestAdminOperations(t *testing.T) {
	f := newFixture(t)
	admin := f.client.Admin()
	ctx := context.Background()

	username, password := f.server.AdminCredentials()
	if _, ok := admin.Login(ctx, username, "wrong"); ok {
		t.Error("admin login with a wrong password succeeded")
	}
	token, ok := admin.Login(ctx, username, password)
	if !ok {
		t.Fatal("admin login failed")
	}
	f.tokens.Set(account.RoleAdmin, token)

	if !admin.VerifySession(ctx) {
		t.Fatal("VerifySession failed for a fresh token")
	}

	userID, _, _ := f.server.SeedCustomer()
	ticketID := f.server.SeedTicket(userID, "Billing", "double charge")
	f.server.SeedMessage(ticketID, "hello", false)

	users, ok := admin.ListUsers(ctx)
	if !ok || len(users) != 1 || users[0].ID != userID {
		t.Fatalf("ListUsers = %+v, %v", users, ok)
	}

	tickets, ok := admin.ListTickets(ctx)
	if !ok || len(tickets) != 1 || tickets[0].OwnerID != userID {
		t.Fatalf("ListTickets = %+v, %v", tickets, ok)
	}

	if !admin.UpdateTicketStatus(ctx, ticketID, ticket.StatusInProgress) {
		t.Fatal("UpdateTicketStatus failed")
	}
	if got := f.server.TicketStatus(ticketID); got != "in_progress" {
		t.Errorf("server status = %q", got)
	}

	if !admin.PostMessage(ctx, ticketID, "on it") {
		t.Fatal("admin PostMessage failed")
	}
	messages, ok := admin.ListMessages(ctx, ticketID)
	if !ok || len(messages) != 2 || messages[1].Author != ticket.AuthorAdmin {
		t.Fatalf("admin ListMessages = %+v, %v", messages, ok)
	}

	if !admin.DeleteTicket(ctx, ticketID) {
		t.Error("DeleteTicket failed")
	}
	if admin.DeleteTicket(ctx, ticketID) {
		t.Error("deleting a deleted ticket succeeded")
	}
	if !admin.DeleteUser(ctx, userID) {
		t.Error("DeleteUser failed")
	}
	if f.server.UserCount() != 0 {
		t.Errorf("server still has %d users", f.server.UserCount())
	}
}

func TestVerifySessionRevoked(t *testing.T) {
	f := newFixture(t)
	f.loginAdmin(t)
	f.server.RevokeAdminTokens()

	if f.client.Admin().VerifySession(context.Background()) {
		t.Error("VerifySession accepted a revoked token")
	}
}

func TestCancelledContext(t *testing.T) {
	f := newFixture(t)
	f.loginCustomer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := f.client.Customer().ListOwnTickets(ctx); ok {
		t.Error("call with a cancelled context succeeded")
	}
}
