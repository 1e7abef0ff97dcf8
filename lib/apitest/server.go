// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Request records one request the server received.
type Request struct {
	Method        string
	Path          string
	Route         string
	Authorization string
	RequestID     string
	Body          map[string]any
}

type user struct {
	ID        string
	Code      string
	CreatedAt time.Time
}

type storedTicket struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
}

type storedMessage struct {
	ID        string
	TicketID  string
	Content   string
	Admin     bool
	CreatedAt time.Time
}

// Server is a fake storefront API.
type Server struct {
	server *httptest.Server

	mu             sync.Mutex
	users          []*user
	tickets        []*storedTicket
	messages       []*storedMessage
	customerTokens map[string]string
	adminTokens    map[string]bool
	adminUser      string
	adminPassword  string
	codeCounter    int
	now            time.Time

	requests []Request
	failures map[string]int
	holds    map[string]chan struct{}
}

// New starts a Server and registers its shutdown with t.Cleanup.
func New(t testing.TB) *Server {
	t.Helper()
	fake := &Server{
		customerTokens: make(map[string]string),
		adminTokens:    make(map[string]bool),
		adminUser:      "admin",
		adminPassword:  "hunter2",
		codeCounter:    1234567800000000,
		now:            time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		failures:       make(map[string]int),
		holds:          make(map[string]chan struct{}),
	}
	fake.server = httptest.NewServer(fake.router())
	t.Cleanup(func() {
		fake.mu.Lock()
		for route, hold := range fake.holds {
			close(hold)
			delete(fake.holds, route)
		}
		fake.mu.Unlock()
		fake.server.Close()
	})
	return fake
}

// URL is the API root to pass as the client's base URL.
func (fake *Server) URL() string {
	return fake.server.URL + "/api"
}

func (fake *Server) router() *mux.Router {
	root := mux.NewRouter().UseEncodedPath()
	r := root.PathPrefix("/api").Subrouter()
	r.Use(fake.recordAndInject)

	r.HandleFunc("/auth/generate", fake.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", fake.handleCustomerLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/my-code", fake.customer(fake.handleOwnCode)).Methods(http.MethodGet)
	r.HandleFunc("/tickets/list", fake.customer(fake.handleListOwnTickets)).Methods(http.MethodGet)
	r.HandleFunc("/tickets/open", fake.customer(fake.handleOpenTicket)).Methods(http.MethodPost)
	r.HandleFunc("/tickets/{id}/messages", fake.customer(fake.handleCustomerMessages)).Methods(http.MethodGet)
	r.HandleFunc("/tickets/{id}/messages", fake.customer(fake.handleCustomerPost)).Methods(http.MethodPost)
	r.HandleFunc("/tickets/{id}/messages/admin", fake.admin(fake.handleAdminMessages)).Methods(http.MethodGet)
	r.HandleFunc("/tickets/{id}/messages/admin", fake.admin(fake.handleAdminPost)).Methods(http.MethodPost)

	r.HandleFunc("/admin/login", fake.handleAdminLogin).Methods(http.MethodPost)
	r.HandleFunc("/admin/profile", fake.admin(fake.handleAdminProfile)).Methods(http.MethodGet)
	r.HandleFunc("/admin/users", fake.admin(fake.handleListUsers)).Methods(http.MethodGet)
	r.HandleFunc("/admin/users/{id}", fake.admin(fake.handleDeleteUser)).Methods(http.MethodDelete)
	r.HandleFunc("/admin/tickets", fake.admin(fake.handleListAllTickets)).Methods(http.MethodGet)
	r.HandleFunc("/admin/tickets/{id}/status", fake.admin(fake.handleUpdateStatus)).Methods(http.MethodPut)
	r.HandleFunc("/admin/tickets/{id}", fake.admin(fake.handleDeleteTicket)).Methods(http.MethodDelete)
	return root
}

// routeKey is "METHOD template", e.g. "GET /api/tickets/{id}/messages".
func routeKey(r *http.Request) string {
	template := r.URL.Path
	if route := mux.CurrentRoute(r); route != nil {
		if t, err := route.GetPathTemplate(); err == nil {
			template = t
		}
	}
	return r.Method + " " + strings.TrimPrefix(template, "/api")
}

func (fake *Server) recordAndInject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r)

		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}

		fake.mu.Lock()
		fake.requests = append(fake.requests, Request{
			Method:        r.Method,
			Path:          r.URL.EscapedPath(),
			Route:         key,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          body,
		})
		status, failing := fake.failures[key]
		hold := fake.holds[key]
		fake.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			http.Error(w, `{"error":"injected failure"}`, status)
			return
		}

		r = r.WithContext(withBody(r.Context(), body))
		next.ServeHTTP(w, r)
	})
}

// Fail makes every request to route ("METHOD /path/{template}")
// answer with status until Recover is called.
func (fake *Server) Fail(route string, status int) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.failures[route] = status
}

// Recover clears an injected failure.
func (fake *Server) Recover(route string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	delete(fake.failures, route)
}

// Hold blocks requests to route until the returned release function is
// called (or the client gives up). Release is idempotent.
func (fake *Server) Hold(route string) (release func()) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	gate := make(chan struct{})
	fake.holds[route] = gate
	return func() {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		if fake.holds[route] == gate {
			delete(fake.holds, route)
			close(gate)
		}
	}
}

// Requests returns a copy of every request received so far.
func (fake *Server) Requests() []Request {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]Request(nil), fake.requests...)
}

// RequestCount returns how many requests reached route.
func (fake *Server) RequestCount(route string) int {
	count := 0
	for _, request := range fake.Requests() {
		if request.Route == route {
			count++
		}
	}
	return count
}

// SetAdminCredentials replaces the accepted admin username and password.
func (fake *Server) SetAdminCredentials(username, password string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.adminUser = username
	fake.adminPassword = password
}

// AdminCredentials returns the accepted admin username and password.
func (fake *Server) AdminCredentials() (string, string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.adminUser, fake.adminPassword
}

// SeedCustomer creates a customer account and a valid token for it.
func (fake *Server) SeedCustomer() (userID, code, token string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	created := fake.createUserLocked()
	token = uuid.NewString()
	fake.customerTokens[token] = created.ID
	return created.ID, created.Code, token
}

// SeedAdminToken issues a valid admin token without a login call.
func (fake *Server) SeedAdminToken() string {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	token := uuid.NewString()
	fake.adminTokens[token] = true
	return token
}

// RevokeAdminTokens invalidates every admin token. Verification of a
// revoked token reports isAdmin false.
func (fake *Server) RevokeAdminTokens() {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for token := range fake.adminTokens {
		fake.adminTokens[token] = false
	}
}

// SeedTicket opens a ticket for ownerID and returns its id.
func (fake *Server) SeedTicket(ownerID, title, description string) string {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.createTicketLocked(ownerID, title, description).ID
}

// SeedMessage appends a message to a ticket's thread.
func (fake *Server) SeedMessage(ticketID, content string, admin bool) string {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.appendMessageLocked(ticketID, content, admin).ID
}

// TicketStatus returns the stored status of a ticket, "" if absent.
func (fake *Server) TicketStatus(ticketID string) string {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if stored := fake.findTicketLocked(ticketID); stored != nil {
		return stored.Status
	}
	return ""
}

// MessageCount returns the length of a ticket's thread.
func (fake *Server) MessageCount(ticketID string) int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	count := 0
	for _, message := range fake.messages {
		if message.TicketID == ticketID {
			count++
		}
	}
	return count
}

// UserCount returns the number of customer accounts.
func (fake *Server) UserCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.users)
}

func (fake *Server) tick() time.Time {
	fake.now = fake.now.Add(time.Minute)
	return fake.now
}

func (fake *Server) createUserLocked() *user {
	fake.codeCounter++
	created := &user{
		ID:        uuid.NewString(),
		Code:      fmt.Sprintf("%016d", fake.codeCounter),
		CreatedAt: fake.tick(),
	}
	fake.users = append(fake.users, created)
	return created
}

func (fake *Server) createTicketLocked(ownerID, title, description string) *storedTicket {
	created := &storedTicket{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      "open",
		CreatedAt:   fake.tick(),
	}
	fake.tickets = append(fake.tickets, created)
	return created
}

func (fake *Server) appendMessageLocked(ticketID, content string, admin bool) *storedMessage {
	created := &storedMessage{
		ID:        uuid.NewString(),
		TicketID:  ticketID,
		Content:   content,
		Admin:     admin,
		CreatedAt: fake.tick(),
	}
	fake.messages = append(fake.messages, created)
	return created
}

func (fake *Server) findTicketLocked(ticketID string) *storedTicket {
	for _, stored := range fake.tickets {
		if stored.ID == ticketID {
			return stored
		}
	}
	return nil
}
