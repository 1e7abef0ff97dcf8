// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session decides which principal a client acts as.
//
// An [Identity] is the login capability of one role. The customer
// identity logs in with an access code and trusts a stored token
// without asking the server (an expired token surfaces later as failed
// calls). The administrator identity logs in with a username and
// password and re-verifies a stored token with the server before
// trusting it.
//
// The [Controller] owns the single active [account.Session]. It resolves
// the startup session from the token store, performs logins, and clears
// a role's token on logout. Navigation reacts to the resulting role
// change; this package knows nothing about views.
package session
