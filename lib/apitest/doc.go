// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package apitest runs an in-process fake of the storefront API for
// tests. It implements every route the client calls, keeps users,
// tickets and threads in memory, and lets a test seed state, inject
// failures, hold requests in flight, and inspect what was received.
//
// Responses mimic the real server's encodings: customer threads mark
// administrator messages with "isAdmin", admin threads with "sender".
package apitest
