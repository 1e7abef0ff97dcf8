// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/netrunner-host/netrunner/lib/api"
	"github.com/netrunner-host/netrunner/lib/apitest"
	"github.com/netrunner-host/netrunner/lib/clock"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
	"github.com/netrunner-host/netrunner/lib/tokenstore"
)

var epoch = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

type harness struct {
	server *apitest.Server
	clock  *clock.FakeClock
	userID string
	client *api.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	server := apitest.New(t)
	tokens := tokenstore.NewMemory()
	userID, _, customerToken := server.SeedCustomer()
	tokens.Set(account.RoleCustomer, customerToken)
	tokens.Set(account.RoleAdmin, server.SeedAdminToken())
	return &harness{
		server: server,
		clock:  clock.Fake(epoch),
		userID: userID,
		client: api.New(api.Options{BaseURL: server.URL(), Tokens: tokens}),
	}
}

func (h *harness) customer() *Workflow {
	return New(CustomerGateway{Client: h.client.Customer()}, h.clock)
}

func (h *harness) admin() *Workflow {
	return New(AdminGateway{Client: h.client.Admin()}, h.clock)
}

func TestListTickets(t *testing.T) {
	h := newHarness(t)
	first := h.server.SeedTicket(h.userID, "First", "a")
	second := h.server.SeedTicket(h.userID, "Second", "b")
	other, _, _ := h.server.SeedCustomer()
	h.server.SeedTicket(other, "Someone else", "c")

	customer := h.customer()
	if !customer.ListTickets(context.Background()) {
		t.Fatal("ListTickets failed")
	}
	if len(customer.Tickets) != 2 || customer.Tickets[0].ID != first || customer.Tickets[1].ID != second {
		t.Errorf("customer tickets = %+v", customer.Tickets)
	}

	admin := h.admin()
	if admin.Scope() != ScopeAll || customer.Scope() != ScopeOwn {
		t.Errorf("scopes = %s/%s", admin.Scope(), customer.Scope())
	}
	admin.ListTickets(context.Background())
	if len(admin.Tickets) != 3 {
		t.Errorf("admin sees %d tickets, want 3", len(admin.Tickets))
	}
}

func TestListFailureKeepsPreviousList(t *testing.T) {
	h := newHarness(t)
	h.server.SeedTicket(h.userID, "Kept", "x")
	customer := h.customer()
	customer.ListTickets(context.Background())

	h.server.Fail("GET /tickets/list", http.StatusBadGateway)
	if customer.ListTickets(context.Background()) {
		t.Fatal("ListTickets succeeded against a failing server")
	}
	if !customer.Failed {
		t.Error("Failed flag not set")
	}
	if len(customer.Tickets) != 1 {
		t.Errorf("previous list lost: %+v", customer.Tickets)
	}

	h.server.Recover("GET /tickets/list")
	customer.ListTickets(context.Background())
	if customer.Failed {
		t.Error("Failed flag not cleared by success")
	}
}

func TestCreateTicketValidation(t *testing.T) {
	h := newHarness(t)
	customer := h.customer()

	tests := []struct {
		title, description string
		want               error
	}{
		{"", "body", ErrTitleRequired},
		{"   ", "body", ErrTitleRequired},
		{"", "", ErrTitleRequired},
		{"title", "", ErrDescriptionRequired},
		{"title", "\n\t", ErrDescriptionRequired},
	}
	for _, test := range tests {
		if err := customer.CreateTicket(context.Background(), test.title, test.description); !errors.Is(err, test.want) {
			t.Errorf("CreateTicket(%q, %q) = %v, want %v", test.title, test.description, err, test.want)
		}
	}
	if len(h.server.Requests()) != 0 {
		t.Errorf("invalid drafts made %d requests", len(h.server.Requests()))
	}
}

func TestCreateTicketRelists(t *testing.T) {
	h := newHarness(t)
	customer := h.customer()

	if err := customer.CreateTicket(context.Background(), "  Need DNS help ", "records"); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if len(customer.Tickets) != 1 || customer.Tickets[0].Title != "Need DNS help" {
		t.Errorf("tickets after create = %+v", customer.Tickets)
	}
	if h.server.RequestCount("GET /tickets/list") != 1 {
		t.Errorf("expected one relist, got %d", h.server.RequestCount("GET /tickets/list"))
	}
}

func TestCreateTicketRejected(t *testing.T) {
	h := newHarness(t)
	customer := h.customer()
	h.server.Fail("POST /tickets/open", http.StatusInternalServerError)

	if err := customer.CreateTicket(context.Background(), "t", "d"); !errors.Is(err, ErrRejected) {
		t.Errorf("CreateTicket = %v, want ErrRejected", err)
	}
	if len(customer.Tickets) != 0 || h.server.RequestCount("GET /tickets/list") != 0 {
		t.Error("rejected create changed state or relisted")
	}
}

func TestAdminCannotCreate(t *testing.T) {
	h := newHarness(t)
	if err := h.admin().CreateTicket(context.Background(), "t", "d"); !errors.Is(err, ErrForbidden) {
		t.Errorf("admin CreateTicket = %v, want ErrForbidden", err)
	}
}

func TestSelectLoadsThread(t *testing.T) {
	h := newHarness(t)
	ticketID := h.server.SeedTicket(h.userID, "T", "d")
	h.server.SeedMessage(ticketID, "question", false)
	h.server.SeedMessage(ticketID, "answer", true)

	customer := h.customer()
	customer.ListTickets(context.Background())
	customer.Select(customer.Tickets[0])
	if !customer.LoadMessages(context.Background()) {
		t.Fatal("LoadMessages failed")
	}
	if len(customer.Messages) != 2 || customer.Messages[1].Author != ticket.AuthorAdmin {
		t.Errorf("thread = %+v", customer.Messages)
	}

	customer.Deselect()
	if customer.Selected != nil || len(customer.Messages) != 0 {
		t.Error("Deselect left state behind")
	}
	if customer.LoadMessages(context.Background()) {
		t.Error("LoadMessages without a selection succeeded")
	}
}

func TestStaleThreadDropped(t *testing.T) {
	h := newHarness(t)
	firstID := h.server.SeedTicket(h.userID, "First", "d")
	secondID := h.server.SeedTicket(h.userID, "Second", "d")
	h.server.SeedMessage(firstID, "from first", false)

	customer := h.customer()
	customer.ListTickets(context.Background())
	first, _ := customer.Find(firstID)
	second, _ := customer.Find(secondID)

	customer.Select(first)
	result := customer.FetchMessages(context.Background(), firstID)
	customer.Select(second)

	if customer.CompleteLoadMessages(result) {
		t.Error("stale thread was applied")
	}
	if len(customer.Messages) != 0 {
		t.Errorf("thread of the new selection polluted: %+v", customer.Messages)
	}
}

func TestSendMessageAppendsProvisional(t *testing.T) {
	h := newHarness(t)
	ticketID := h.server.SeedTicket(h.userID, "T", "d")
	customer := h.customer()
	customer.ListTickets(context.Background())
	selected, _ := customer.Find(ticketID)
	customer.Select(selected)
	customer.LoadMessages(context.Background())

	if !customer.SendMessage(context.Background(), "  hello there  ") {
		t.Fatal("SendMessage failed")
	}
	if len(customer.Messages) != 1 {
		t.Fatalf("thread length = %d, want 1", len(customer.Messages))
	}
	message := customer.Messages[0]
	if !message.Provisional || message.Author != ticket.AuthorCustomer || message.Content != "hello there" {
		t.Errorf("provisional message = %+v", message)
	}
	if message.ID != strconv.FormatInt(epoch.UnixMilli(), 10) || !message.CreatedAt.Equal(epoch) {
		t.Errorf("provisional id/time = %s/%v", message.ID, message.CreatedAt)
	}
	if h.server.MessageCount(ticketID) != 1 {
		t.Errorf("server thread length = %d", h.server.MessageCount(ticketID))
	}
}

func TestSendMessageRejected(t *testing.T) {
	h := newHarness(t)
	ticketID := h.server.SeedTicket(h.userID, "T", "d")
	customer := h.customer()
	customer.ListTickets(context.Background())
	customer.Select(customer.Tickets[0])

	if customer.SendMessage(context.Background(), "   ") {
		t.Error("blank message sent")
	}
	if h.server.RequestCount("POST /tickets/{id}/messages") != 0 {
		t.Error("blank message reached the server")
	}

	h.server.Fail("POST /tickets/{id}/messages", http.StatusInternalServerError)
	if customer.SendMessage(context.Background(), "hi") {
		t.Error("SendMessage succeeded against a failing server")
	}
	if len(customer.Messages) != 0 || h.server.MessageCount(ticketID) != 0 {
		t.Error("failed send changed the thread")
	}
}

func TestAdminSendMessageAuthor(t *testing.T) {
	h := newHarness(t)
	h.server.SeedTicket(h.userID, "T", "d")
	admin := h.admin()
	admin.ListTickets(context.Background())
	admin.Select(admin.Tickets[0])

	if !admin.SendMessage(context.Background(), "resolved") {
		t.Fatal("admin SendMessage failed")
	}
	if admin.Messages[0].Author != ticket.AuthorAdmin {
		t.Errorf("author = %s, want admin", admin.Messages[0].Author)
	}
}

func TestUpdateStatus(t *testing.T) {
	h := newHarness(t)
	ticketID := h.server.SeedTicket(h.userID, "T", "d")

	customer := h.customer()
	if err := customer.UpdateStatus(context.Background(), ticketID, ticket.StatusClosed); !errors.Is(err, ErrForbidden) {
		t.Errorf("customer UpdateStatus = %v, want ErrForbidden", err)
	}

	admin := h.admin()
	admin.ListTickets(context.Background())
	admin.Select(admin.Tickets[0])

	if err := admin.UpdateStatus(context.Background(), ticketID, "pending"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("invalid status = %v", err)
	}

	h.server.Fail("PUT /admin/tickets/{id}/status", http.StatusInternalServerError)
	if err := admin.UpdateStatus(context.Background(), ticketID, ticket.StatusClosed); !errors.Is(err, ErrRejected) {
		t.Errorf("failing UpdateStatus = %v", err)
	}
	if admin.Tickets[0].Status != ticket.StatusOpen || admin.Selected.Status != ticket.StatusOpen {
		t.Error("status changed before acknowledgement")
	}

	h.server.Recover("PUT /admin/tickets/{id}/status")
	if err := admin.UpdateStatus(context.Background(), ticketID, ticket.StatusInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if admin.Tickets[0].Status != ticket.StatusInProgress || admin.Selected.Status != ticket.StatusInProgress {
		t.Errorf("status not applied: list %s, selected %s", admin.Tickets[0].Status, admin.Selected.Status)
	}
}

func TestRemoveTicketClearsSelection(t *testing.T) {
	h := newHarness(t)
	keep := h.server.SeedTicket(h.userID, "Keep", "d")
	drop := h.server.SeedTicket(h.userID, "Drop", "d")
	admin := h.admin()
	admin.ListTickets(context.Background())
	dropped, _ := admin.Find(drop)
	admin.Select(dropped)

	admin.RemoveTicket(drop)
	if len(admin.Tickets) != 1 || admin.Tickets[0].ID != keep {
		t.Errorf("tickets = %+v", admin.Tickets)
	}
	if admin.Selected != nil {
		t.Error("selection survived removal")
	}
}

func TestFilter(t *testing.T) {
	h := newHarness(t)
	h.server.SeedTicket(h.userID, "Domain transfer", "d")
	h.server.SeedTicket(h.userID, "Database quota", "d")
	h.server.SeedTicket(h.userID, "Billing question", "d")
	customer := h.customer()
	customer.ListTickets(context.Background())

	if all := customer.Filter(""); len(all) != 3 {
		t.Errorf("empty filter returned %d", len(all))
	}
	matches := customer.Filter("billing")
	if len(matches) != 1 || matches[0].Ticket.Title != "Billing question" {
		t.Errorf("Filter(billing) = %+v", matches)
	}
	if len(matches[0].TitlePositions) == 0 {
		t.Error("title positions missing")
	}
	if none := customer.Filter("zzzz"); len(none) != 0 {
		t.Errorf("Filter(zzzz) = %+v", none)
	}
}
