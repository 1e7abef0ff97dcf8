// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tokenstore persists the two bearer tokens a client holds: one
// for the customer identity and one for the administrator identity.
//
// The [Store] interface is the contract every consumer depends on. Three
// backends implement it:
//
//   - [Memory] keeps tokens in process memory (tests, ephemeral runs).
//   - [OpenFile] keeps a JSON document {"customer": ..., "admin": ...}
//     on disk with owner-only permissions.
//   - [OpenSealed] keeps the same two slots CBOR-encoded and encrypted
//     with age to a key generated on first use.
//
// Tokens have no local expiry; a token stays until it is cleared or the
// server stops accepting it. Both disk backends rewrite the whole
// document atomically (temp file + rename) on every mutation.
package tokenstore
