// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed wraps filippo.io/age for the one thing the client
// encrypts: the token document of the sealed token store. It generates
// X25519 keypairs, encrypts a payload to one or more recipients, and
// decrypts it with a private key.
//
// Ciphertext is the raw binary age format. Private keys are handled as
// AGE-SECRET-KEY-1... strings and must never be logged.
package sealed
