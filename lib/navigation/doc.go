// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package navigation is the view state machine of the storefront
// client.
//
// [State] is an immutable value: the current [View], the session role,
// and whether the menu is expanded. [Reduce] is a pure function from a
// state and an [Event] to the next state. After every event the view
// is checked against an allow-list of roles per view; a view the role
// may not render is replaced by that role's redirect target. A role
// change therefore never leaves the client on a page the new role
// cannot see, and logging out lands on a page the anonymous role can.
package navigation
