// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type contextKey int

const (
	bodyKey contextKey = iota
	userKey
)

func withBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey, body)
}

// field returns a string body field, "" when absent or not a string.
func field(r *http.Request, name string) string {
	body, _ := r.Context().Value(bodyKey).(map[string]any)
	value, _ := body[name].(string)
	return value
}

func currentUser(r *http.Request) string {
	userID, _ := r.Context().Value(userKey).(string)
	return userID
}

func bearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return token
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (fake *Server) customer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		userID, ok := fake.customerTokens[bearer(r)]
		fake.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, userID)))
	}
}

// admin rejects unknown tokens with 401. Revoked tokens still reach
// /admin/profile (which answers isAdmin false) and are refused with
// 403 everywhere else.
func (fake *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		valid, known := fake.adminTokens[bearer(r)]
		fake.mu.Unlock()
		if !known {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if !valid && !strings.HasSuffix(r.URL.Path, "/admin/profile") {
			writeError(w, http.StatusForbidden, "not an administrator")
			return
		}
		next(w, r)
	}
}

func ticketJSON(stored *storedTicket) map[string]any {
	return map[string]any{
		"id":          stored.ID,
		"title":       stored.Title,
		"description": stored.Description,
		"status":      stored.Status,
		"createdAt":   stored.CreatedAt.Format(time.RFC3339),
		"userId":      stored.OwnerID,
	}
}

func (fake *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	fake.mu.Lock()
	created := fake.createUserLocked()
	fake.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]string{"code": created.Code})
}

func (fake *Server) handleCustomerLogin(w http.ResponseWriter, r *http.Request) {
	code := field(r, "code")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, existing := range fake.users {
		if existing.Code == code {
			token := uuid.NewString()
			fake.customerTokens[token] = existing.ID
			writeJSON(w, http.StatusOK, map[string]string{"token": token})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "invalid code")
}

func (fake *Server) handleOwnCode(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, existing := range fake.users {
		if existing.ID == userID {
			writeJSON(w, http.StatusOK, map[string]string{"code": existing.Code})
			return
		}
	}
	writeError(w, http.StatusNotFound, "user not found")
}

func (fake *Server) handleListOwnTickets(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	fake.mu.Lock()
	defer fake.mu.Unlock()
	tickets := []map[string]any{}
	for _, stored := range fake.tickets {
		if stored.OwnerID == userID {
			encoded := ticketJSON(stored)
			delete(encoded, "userId")
			tickets = append(tickets, encoded)
		}
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (fake *Server) handleOpenTicket(w http.ResponseWriter, r *http.Request) {
	title, description := field(r, "title"), field(r, "description")
	if title == "" || description == "" {
		writeError(w, http.StatusBadRequest, "title and description are required")
		return
	}
	fake.mu.Lock()
	created := fake.createTicketLocked(currentUser(r), title, description)
	encoded := ticketJSON(created)
	fake.mu.Unlock()
	writeJSON(w, http.StatusCreated, encoded)
}

// ownedTicket resolves the {id} route variable to a ticket the current
// customer owns, writing a 404 when it does not exist or belongs to
// someone else.
func (fake *Server) ownedTicket(w http.ResponseWriter, r *http.Request) (*storedTicket, bool) {
	ticketID := mux.Vars(r)["id"]
	fake.mu.Lock()
	defer fake.mu.Unlock()
	stored := fake.findTicketLocked(ticketID)
	if stored == nil || stored.OwnerID != currentUser(r) {
		writeError(w, http.StatusNotFound, "ticket not found")
		return nil, false
	}
	return stored, true
}

func (fake *Server) threadLocked(ticketID string, encode func(*storedMessage) map[string]any) []map[string]any {
	thread := []map[string]any{}
	for _, message := range fake.messages {
		if message.TicketID == ticketID {
			thread = append(thread, encode(message))
		}
	}
	return thread
}

func (fake *Server) handleCustomerMessages(w http.ResponseWriter, r *http.Request) {
	stored, ok := fake.ownedTicket(w, r)
	if !ok {
		return
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	writeJSON(w, http.StatusOK, fake.threadLocked(stored.ID, func(message *storedMessage) map[string]any {
		return map[string]any{
			"id":        message.ID,
			"ticketId":  message.TicketID,
			"content":   message.Content,
			"isAdmin":   message.Admin,
			"createdAt": message.CreatedAt.Format(time.RFC3339),
		}
	}))
}

func (fake *Server) handleCustomerPost(w http.ResponseWriter, r *http.Request) {
	stored, ok := fake.ownedTicket(w, r)
	if !ok {
		return
	}
	fake.postMessage(w, r, stored.ID, false)
}

func (fake *Server) postMessage(w http.ResponseWriter, r *http.Request, ticketID string, admin bool) {
	content := field(r, "content")
	if content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	fake.mu.Lock()
	created := fake.appendMessageLocked(ticketID, content, admin)
	fake.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"id": created.ID, "content": created.Content})
}

func (fake *Server) handleAdminMessages(w http.ResponseWriter, r *http.Request) {
	ticketID := mux.Vars(r)["id"]
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.findTicketLocked(ticketID) == nil {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}
	writeJSON(w, http.StatusOK, fake.threadLocked(ticketID, func(message *storedMessage) map[string]any {
		sender := "user"
		if message.Admin {
			sender = "admin"
		}
		return map[string]any{
			"id":        message.ID,
			"content":   message.Content,
			"sender":    sender,
			"createdAt": message.CreatedAt.Format(time.RFC3339),
		}
	}))
}

func (fake *Server) handleAdminPost(w http.ResponseWriter, r *http.Request) {
	ticketID := mux.Vars(r)["id"]
	fake.mu.Lock()
	exists := fake.findTicketLocked(ticketID) != nil
	fake.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}
	fake.postMessage(w, r, ticketID, true)
}

func (fake *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if field(r, "username") != fake.adminUser || field(r, "password") != fake.adminPassword {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token := uuid.NewString()
	fake.adminTokens[token] = true
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (fake *Server) handleAdminProfile(w http.ResponseWriter, r *http.Request) {
	fake.mu.Lock()
	valid := fake.adminTokens[bearer(r)]
	fake.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": valid})
}

func (fake *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	users := []map[string]any{}
	for _, existing := range fake.users {
		users = append(users, map[string]any{
			"id":        existing.ID,
			"code":      existing.Code,
			"createdAt": existing.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, users)
}

func (fake *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	fake.mu.Lock()
	defer fake.mu.Unlock()
	index := slices.IndexFunc(fake.users, func(existing *user) bool { return existing.ID == userID })
	if index < 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	fake.users = slices.Delete(fake.users, index, index+1)
	for token, owner := range fake.customerTokens {
		if owner == userID {
			delete(fake.customerTokens, token)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (fake *Server) handleListAllTickets(w http.ResponseWriter, r *http.Request) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	tickets := []map[string]any{}
	for _, stored := range fake.tickets {
		tickets = append(tickets, ticketJSON(stored))
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (fake *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ticketID := mux.Vars(r)["id"]
	status := field(r, "status")
	if status != "open" && status != "in_progress" && status != "closed" {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	stored := fake.findTicketLocked(ticketID)
	if stored == nil {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}
	stored.Status = status
	writeJSON(w, http.StatusOK, ticketJSON(stored))
}

func (fake *Server) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := mux.Vars(r)["id"]
	fake.mu.Lock()
	defer fake.mu.Unlock()
	index := slices.IndexFunc(fake.tickets, func(stored *storedTicket) bool { return stored.ID == ticketID })
	if index < 0 {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}
	fake.tickets = slices.Delete(fake.tickets, index, index+1)
	fake.messages = slices.DeleteFunc(fake.messages, func(message *storedMessage) bool {
		return message.TicketID == ticketID
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "ticket deleted"})
}
