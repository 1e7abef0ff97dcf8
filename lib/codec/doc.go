// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR encoding used for payloads the client
// keeps on disk in binary form, currently the sealed token document.
//
// Encoding is Core Deterministic (RFC 8949 §4.2): sorted map keys and
// minimal integer widths, so the same token slots always produce the
// same bytes before encryption. Consumers import this package rather
// than fxamacker/cbor so the options stay in one place.
package codec
