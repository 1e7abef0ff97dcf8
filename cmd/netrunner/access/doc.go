// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package access implements the customer session commands: requesting
// an access code, logging in and out, and reporting the active
// session.
//
// Tokens persist in the configured token store, so a login from one
// invocation is used by the next (and by the interactive client).
package access
