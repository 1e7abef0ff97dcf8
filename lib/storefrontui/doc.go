// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package storefrontui is the interactive terminal client for the
// netrunner hosting storefront. It is a single bubbletea model that
// renders whichever view the navigation state machine has selected and
// feeds user actions back into it as events.
//
// Each view activation gets its own context and a generation number.
// Leaving the view cancels the context, and any result still in
// flight is dropped when it arrives because its generation no longer
// matches. Inside a view, the ticket workflow additionally drops thread
// results for tickets that are no longer selected.
//
// Network calls never run on the event loop: the model launches a
// tea.Cmd that calls the gateway-only half of a workflow operation
// (FetchTickets, PostMessage, ...) and applies the result with the
// matching Complete method when the message comes back.
//
// Background log records at WARN and above reach the status bar through
// [TUILogHandler].
package storefrontui
