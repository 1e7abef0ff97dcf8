// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The storefront client stamps locally synthesized records (the
// provisional message appended after a successful reply) with the
// current time, and derives their ids from it. Workflows take a Clock
// so tests can pin those values: production code passes Real(), tests
// pass Fake(initial) and move time with Advance.
package clock
