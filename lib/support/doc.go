// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package support implements the ticket workflow shared by the customer
// dashboard and the administrator console: listing tickets, opening
// one, reading and extending its thread, and (for administrators)
// changing its status.
//
// A [Workflow] belongs to a single view and is discarded when the view
// is left. Every network operation is split in two so it can run off
// the UI event loop:
//
//   - a Fetch/Submit/Request method that only talks to the [Gateway]
//     and returns a result value (safe on any goroutine), and
//   - a Complete method that applies the result to the workflow state
//     (event loop only).
//
// The synchronous methods (ListTickets, CreateTicket, SendMessage, ...)
// chain the two and are what the CLI uses.
//
// Completion is guarded against stale results: a thread fetched for a
// ticket that is no longer selected is dropped, as is a reply posted to
// a ticket the user has since left.
package support
