// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the terminal building blocks shared by the
// storefront client: the color theme, overlay splicing for modal
// dialogs and pickers, fuzzy matching for ticket filters, and a
// markdown renderer for ticket descriptions and thread messages.
//
// Nothing here knows about the storefront API. Components render to
// plain strings (or slices of lines for overlays) and take their input
// as bubbletea key messages, so the application model decides layout
// and focus.
package tui
