// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/apitest"
	"github.com/netrunner-host/netrunner/lib/testutil"
)

type harness struct {
	t      *testing.T
	server *apitest.Server
	stdout *bytes.Buffer
}

// newHarness points the CLI at a fake API through NETRUNNER_API_URL
// and keeps the token file inside the test's temporary config home.
func newHarness(t *testing.T) *harness {
	t.Helper()
	testutil.IsolateEnv(t)
	server := apitest.New(t)
	t.Setenv("NETRUNNER_API_URL", server.URL())

	var stdout bytes.Buffer
	previousOutput, previousHelp := cli.Output, cli.HelpOutput
	cli.Output, cli.HelpOutput = &stdout, io.Discard
	t.Cleanup(func() { cli.Output, cli.HelpOutput = previousOutput, previousHelp })

	return &harness{t: t, server: server, stdout: &stdout}
}

func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	return Root().Execute(context.Background(), args, slog.New(slog.DiscardHandler))
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	if err := h.run(args...); err != nil {
		h.t.Fatalf("netrunner %s: %v", strings.Join(args, " "), err)
	}
	return h.stdout.String()
}

func (h *harness) requireCategory(err error, want cli.ErrorCategory) {
	h.t.Helper()
	if err == nil {
		h.t.Fatalf("expected a %s error, got success", want)
	}
	if got := cli.CategoryOf(err); got != want {
		h.t.Fatalf("error %q has category %s, want %s", err, got, want)
	}
}

func (h *harness) loginCustomer() string {
	h.t.Helper()
	userID, code, _ := h.server.SeedCustomer()
	h.mustRun("login", code)
	return userID
}

func (h *harness) loginAdmin() {
	h.t.Helper()
	username, password := h.server.AdminCredentials()
	h.mustRun("admin", "login", "--username", username, "--password", password)
}

func TestCodeWithLogin(t *testing.T) {
	h := newHarness(t)

	output := h.mustRun("code", "--login", "--json")
	var result struct {
		Code     string `json:"code"`
		LoggedIn bool   `json:"logged_in"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if result.Code == "" || !result.LoggedIn {
		t.Fatalf("result = %+v", result)
	}

	output = h.mustRun("whoami", "--json")
	var who struct {
		Role string `json:"role"`
		Code string `json:"code"`
	}
	if err := json.Unmarshal([]byte(output), &who); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if who.Role != "customer" || who.Code != result.Code {
		t.Errorf("whoami = %+v, want customer with code %s", who, result.Code)
	}
}

func TestCodeFailure(t *testing.T) {
	h := newHarness(t)
	h.server.Fail("POST /auth/generate", 500)
	h.requireCategory(h.run("code"), cli.CategoryTransient)
}

func TestWhoAmIAnonymous(t *testing.T) {
	h := newHarness(t)
	err := h.run("whoami")
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Fatalf("error = %v, want exit code 1", err)
	}
	if !strings.Contains(h.stdout.String(), "Not logged in.") {
		t.Errorf("output = %q", h.stdout.String())
	}
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	h.requireCategory(h.run("login"), cli.CategoryValidation)
	h.requireCategory(h.run("login", "no-digits"), cli.CategoryValidation)
	h.requireCategory(h.run("login", "0000 0000"), cli.CategoryForbidden)

	_, code, _ := h.server.SeedCustomer()
	grouped := code[:4] + " " + code[4:]
	if output := h.mustRun("login", grouped); !strings.Contains(output, "Logged in.") {
		t.Errorf("output = %q", output)
	}
	if output := h.mustRun("whoami"); !strings.Contains(output, "Logged in as customer") {
		t.Errorf("whoami = %q", output)
	}

	if output := h.mustRun("logout"); !strings.Contains(output, "Logged out.") {
		t.Errorf("logout = %q", output)
	}
	if output := h.mustRun("logout"); !strings.Contains(output, "No customer session") {
		t.Errorf("second logout = %q", output)
	}
	var exitError *cli.ExitError
	if err := h.run("whoami"); !errors.As(err, &exitError) {
		t.Errorf("whoami after logout: %v", err)
	}
}

func TestTicketsRequireLogin(t *testing.T) {
	h := newHarness(t)
	h.requireCategory(h.run("tickets", "list"), cli.CategoryForbidden)
	h.requireCategory(h.run("tickets", "show", "1"), cli.CategoryForbidden)
	if got := len(h.server.Requests()); got != 0 {
		t.Errorf("%d requests sent without a session", got)
	}
}

func TestCustomerTicketLifecycle(t *testing.T) {
	h := newHarness(t)
	h.loginCustomer()

	ticketID := strings.TrimSpace(h.mustRun("tickets", "create",
		"--title", "  DNS broken ", "--description", "example.com returns SERVFAIL"))
	if ticketID == "" {
		t.Fatal("create printed no id")
	}
	if status := h.server.TicketStatus(ticketID); status != "open" {
		t.Errorf("status = %q, want open", status)
	}

	listing := h.mustRun("tickets", "list")
	if !strings.Contains(listing, "DNS broken") || !strings.Contains(listing, "open") {
		t.Errorf("list output:\n%s", listing)
	}

	h.mustRun("tickets", "reply", ticketID, "any", "news?")
	if count := h.server.MessageCount(ticketID); count != 1 {
		t.Fatalf("thread has %d messages, want 1", count)
	}
	h.server.SeedMessage(ticketID, "Looking into it.", true)

	thread := h.mustRun("tickets", "show", ticketID)
	for _, want := range []string{"DNS broken", "SERVFAIL", "User", "any news?", "Admin", "Looking into it."} {
		if !strings.Contains(thread, want) {
			t.Errorf("show output lacks %q:\n%s", want, thread)
		}
	}
}

func TestTicketsCreateValidation(t *testing.T) {
	h := newHarness(t)
	h.loginCustomer()
	before := len(h.server.Requests())

	h.requireCategory(h.run("tickets", "create", "--description", "body"), cli.CategoryValidation)
	err := h.run("tickets", "create", "--title", "Title", "--description", "   ")
	h.requireCategory(err, cli.CategoryValidation)
	if !strings.Contains(err.Error(), "description is required") {
		t.Errorf("error = %v", err)
	}
	h.requireCategory(h.run("tickets", "reply", "1", "   "), cli.CategoryValidation)

	if after := len(h.server.Requests()); after != before {
		t.Errorf("invalid input sent %d requests", after-before)
	}
}

func TestTicketsListFilterAndJSON(t *testing.T) {
	h := newHarness(t)
	userID := h.loginCustomer()
	h.server.SeedTicket(userID, "Database migration", "move to pg16")
	h.server.SeedTicket(userID, "Invoice question", "billing")

	output := h.mustRun("tickets", "list", "--filter", "invoice", "--json")
	var listed []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(output), &listed); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if len(listed) != 1 || listed[0].Title != "Invoice question" {
		t.Errorf("filtered = %+v", listed)
	}
}

func TestTicketsShowUnknown(t *testing.T) {
	h := newHarness(t)
	h.loginCustomer()
	h.requireCategory(h.run("tickets", "show", "999"), cli.CategoryNotFound)
}

func TestTicketsListServerFailure(t *testing.T) {
	h := newHarness(t)
	h.loginCustomer()
	h.server.Fail("GET /tickets/list", 502)
	h.requireCategory(h.run("tickets", "list"), cli.CategoryTransient)
}

func TestAdminRequiresLogin(t *testing.T) {
	h := newHarness(t)
	h.loginCustomer()
	h.requireCategory(h.run("admin", "users"), cli.CategoryForbidden)
	h.requireCategory(h.run("admin", "status", "1", "closed"), cli.CategoryForbidden)
	h.requireCategory(h.run("admin", "delete-user", "1", "--yes"), cli.CategoryForbidden)
}

func TestAdminLogin(t *testing.T) {
	h := newHarness(t)
	h.requireCategory(h.run("admin", "login", "--password", "x"), cli.CategoryValidation)
	h.requireCategory(h.run("admin", "login", "--username", "admin", "--password", "wrong"), cli.CategoryForbidden)

	h.loginAdmin()
	if output := h.mustRun("whoami"); !strings.Contains(output, "administrator") {
		t.Errorf("whoami = %q", output)
	}

	h.server.RevokeAdminTokens()
	var exitError *cli.ExitError
	if err := h.run("whoami"); !errors.As(err, &exitError) {
		t.Errorf("revoked admin token still trusted: %v", err)
	}

	h.mustRun("admin", "logout")
	h.requireCategory(h.run("admin", "users"), cli.CategoryForbidden)
}

func TestAdminModeration(t *testing.T) {
	h := newHarness(t)
	userID, _, _ := h.server.SeedCustomer()
	ticketID := h.server.SeedTicket(userID, "Site down", "502 everywhere")
	h.loginAdmin()

	output := h.mustRun("admin", "users", "--json")
	var users []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(output), &users); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if len(users) != 1 || users[0].ID != userID {
		t.Fatalf("users = %+v", users)
	}

	listing := h.mustRun("admin", "tickets")
	if !strings.Contains(listing, "Site down") || !strings.Contains(listing, "OWNER") {
		t.Errorf("admin tickets:\n%s", listing)
	}

	h.requireCategory(h.run("admin", "status", ticketID, "done"), cli.CategoryValidation)
	if output := h.mustRun("admin", "status", ticketID, "in_progress"); !strings.Contains(output, "in progress") {
		t.Errorf("status output = %q", output)
	}
	if status := h.server.TicketStatus(ticketID); status != "in_progress" {
		t.Errorf("stored status = %q", status)
	}

	h.mustRun("admin", "reply", ticketID, "Restarting the proxy.")
	thread := h.mustRun("admin", "show", ticketID)
	if !strings.Contains(thread, "Admin") || !strings.Contains(thread, "Restarting the proxy.") {
		t.Errorf("admin show:\n%s", thread)
	}

	h.mustRun("admin", "delete-ticket", ticketID, "--yes")
	if status := h.server.TicketStatus(ticketID); status != "" {
		t.Errorf("ticket survived delete with status %q", status)
	}
	h.mustRun("admin", "delete-user", userID, "-y")
	if count := h.server.UserCount(); count != 0 {
		t.Errorf("UserCount = %d after delete", count)
	}
}

func TestAdminDeleteFailure(t *testing.T) {
	h := newHarness(t)
	userID, _, _ := h.server.SeedCustomer()
	h.loginAdmin()
	h.server.Fail("DELETE /admin/users/{id}", 500)

	h.requireCategory(h.run("admin", "delete-user", userID, "--yes"), cli.CategoryTransient)
	if count := h.server.UserCount(); count != 1 {
		t.Errorf("UserCount = %d", count)
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	h := newHarness(t)
	err := h.run("tikets")
	h.requireCategory(err, cli.CategoryValidation)
	if !strings.Contains(err.Error(), `"tickets"`) {
		t.Errorf("error = %v", err)
	}
	err = h.run("admin", "delete-usr")
	if !strings.Contains(err.Error(), `"delete-user"`) {
		t.Errorf("error = %v", err)
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	if output := h.mustRun("version"); !strings.HasPrefix(output, "netrunner ") {
		t.Errorf("version = %q", output)
	}
}
