// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tickets

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/netrunner-host/netrunner/lib/schema/ticket"
)

func TestWriteTicketTable(t *testing.T) {
	listed := []ticket.Ticket{
		{ID: "7", Title: "Renew domain", Status: ticket.StatusInProgress, OwnerID: "u1"},
	}

	var own bytes.Buffer
	if err := writeTicketTable(&own, listed, false); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(own.String(), "OWNER") || !strings.Contains(own.String(), "in progress") {
		t.Errorf("customer table:\n%s", own.String())
	}

	var all bytes.Buffer
	if err := writeTicketTable(&all, listed, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(all.String(), "OWNER") || !strings.Contains(all.String(), "u1") {
		t.Errorf("admin table:\n%s", all.String())
	}
}

func TestWriteThread(t *testing.T) {
	selected := ticket.Ticket{ID: "7", Title: "Renew domain", Status: ticket.StatusOpen, Description: "example.org expires"}

	var empty bytes.Buffer
	writeThread(&empty, selected, nil)
	if !strings.Contains(empty.String(), "No messages yet.") || !strings.Contains(empty.String(), "Opened -") {
		t.Errorf("empty thread:\n%s", empty.String())
	}

	var full bytes.Buffer
	writeThread(&full, selected, []ticket.Message{
		{Author: ticket.AuthorCustomer, Content: "first line\nsecond line", CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		{Author: ticket.AuthorAdmin, Content: "renewed"},
	})
	output := full.String()
	for _, want := range []string{"#7 Renew domain [open]", "User · ", "  first line\n  second line", "Admin · -", "  renewed"} {
		if !strings.Contains(output, want) {
			t.Errorf("thread lacks %q:\n%s", want, output)
		}
	}
}
