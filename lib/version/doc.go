// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the netrunner
// binaries and the User-Agent the API client sends.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/netrunner-host/netrunner/lib/version.GitCommit=$(git rev-parse --short HEAD)"
package version
