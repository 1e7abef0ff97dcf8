// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket defines the support ticket wire types shared by the
// storefront API client, the ticket workflows, and the terminal UI:
// tickets, their lifecycle status, and the threaded messages exchanged
// between a customer and the administrators.
//
// The JSON tags follow the storefront API's camelCase field names. The
// message author is reconstructed from whichever of the two server
// encodings is present (a "sender" string on admin threads, an
// "isAdmin" flag on customer threads).
package ticket
