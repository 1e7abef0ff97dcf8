// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the netrunner
// CLI.
//
// The central type is [Command]: a named subcommand with optional
// nested [Command.Subcommands], a parameter struct whose tagged fields
// become flags (see [BindFlags]), and a Run function. Commands are
// assembled into a tree in cmd/netrunner and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing,
// and help output with examples.
//
// Unknown subcommands and flags are answered with the closest known
// name by Levenshtein distance (at most 3).
//
// [Connection] is the flag bundle every networked command embeds. It
// loads the configuration, opens the token store, and builds the API
// client and session controller.
//
// Failures leave the tree as a [ToolError] carrying a category
// (validation, not_found, forbidden, conflict, transient, internal)
// so scripts can tell bad input from a server outage.
package cli
