// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tickets implements the support ticket commands. The list,
// show and reply commands are built per [Scope] so the administrator
// tree reuses them over every ticket.
package tickets
