// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package account defines the identity side of the storefront data
// model: the three session roles, the access codes customers log in
// with, and the user records administrators moderate.
package account
