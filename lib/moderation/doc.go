// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package moderation drives the administrator console: the user list,
// the all-tickets list (through a [support.Workflow]), and destructive
// deletes that must be staged and confirmed before they run.
//
// At most one delete is staged at a time. Staging never touches the
// network; [Workflow.Confirm] executes the staged action exactly once
// and clears it whether or not the server accepted it.
package moderation
