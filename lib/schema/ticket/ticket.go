// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a support ticket. Only an
// administrator changes it; the owning customer never does.
type Status string

const (
	// StatusOpen is the initial status of every new ticket.
	StatusOpen Status = "open"
	// StatusInProgress marks a ticket an administrator is working on.
	StatusInProgress Status = "in_progress"
	// StatusClosed marks a resolved ticket. Messages can still be
	// posted to a closed ticket.
	StatusClosed Status = "closed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

// ParseStatus validates a status string.
func ParseStatus(value string) (Status, error) {
	for _, status := range Statuses {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid ticket status %q (valid: open, in_progress, closed)", value)
}

// IsValid reports whether status is one of the three known statuses.
func (status Status) IsValid() bool {
	_, err := ParseStatus(string(status))
	return err == nil
}

// Label returns the human-readable form ("in progress" rather than
// "in_progress").
func (status Status) Label() string {
	return strings.ReplaceAll(string(status), "_", " ")
}

// Ticket is a support request opened by a customer.
type Ticket struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`

	// OwnerID is the id of the customer who opened the ticket. The
	// customer listing omits it (the server filters by identity).
	OwnerID string `json:"userId,omitempty"`
}

// Author identifies which side of the conversation wrote a message.
type Author string

const (
	AuthorCustomer Author = "customer"
	AuthorAdmin    Author = "admin"
)

// Label returns the display name used in thread views.
func (author Author) Label() string {
	if author == AuthorAdmin {
		return "Admin"
	}
	return "User"
}

// Message is one entry in a ticket's append-only thread. Threads are
// ordered by creation.
type Message struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId,omitempty"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`

	// Provisional is true for a message synthesized locally after a
	// successful post. Its ID and timestamp are local and are never
	// reconciled with the server's record.
	Provisional bool `json:"-"`
}

// wireMessage accepts both thread encodings. IDs arrive as numbers on
// some deployments and strings on others.
type wireMessage struct {
	ID        json.RawMessage `json:"id"`
	TicketID  json.RawMessage `json:"ticketId"`
	Content   string          `json:"content"`
	Author    string          `json:"author"`
	Sender    string          `json:"sender"`
	IsAdmin   *bool           `json:"isAdmin"`
	CreatedAt string          `json:"createdAt"`
}

// UnmarshalJSON decodes a message from either server encoding. An
// explicit "author" wins, then "sender", then "isAdmin". A missing or
// unparseable createdAt leaves CreatedAt zero.
func (message *Message) UnmarshalJSON(data []byte) error {
	var wire wireMessage
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	message.ID = rawIdentifier(wire.ID)
	message.TicketID = rawIdentifier(wire.TicketID)
	message.Content = wire.Content

	switch {
	case wire.Author != "":
		message.Author = authorFromSender(wire.Author)
	case wire.Sender != "":
		message.Author = authorFromSender(wire.Sender)
	case wire.IsAdmin != nil && *wire.IsAdmin:
		message.Author = AuthorAdmin
	default:
		message.Author = AuthorCustomer
	}

	message.CreatedAt = time.Time{}
	if wire.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, wire.CreatedAt); err == nil {
			message.CreatedAt = parsed
		}
	}
	return nil
}

// UnmarshalJSON decodes a ticket, accepting numeric or string ids.
func (ticket *Ticket) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID          json.RawMessage `json:"id"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Status      Status          `json:"status"`
		CreatedAt   string          `json:"createdAt"`
		OwnerID     json.RawMessage `json:"userId"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	ticket.ID = rawIdentifier(wire.ID)
	ticket.Title = wire.Title
	ticket.Description = wire.Description
	ticket.Status = wire.Status
	ticket.OwnerID = rawIdentifier(wire.OwnerID)
	ticket.CreatedAt = time.Time{}
	if wire.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, wire.CreatedAt); err == nil {
			ticket.CreatedAt = parsed
		}
	}
	return nil
}

func authorFromSender(sender string) Author {
	if sender == string(AuthorAdmin) {
		return AuthorAdmin
	}
	return AuthorCustomer
}

// rawIdentifier turns a JSON string or number into its string form.
// null and absent values become "".
func rawIdentifier(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}
