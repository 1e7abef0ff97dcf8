// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for netrunner packages.
//
// [IsolateEnv] points XDG_CONFIG_HOME at a per-test temporary directory
// and clears every NETRUNNER_* override, so tests that resolve default
// paths (token file, sealed key, config) never touch the developer's
// real configuration.
//
// [RequireReceive] bounds a wait on a channel fed from another
// goroutine, such as a running bubbletea program, with a timeout.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
