// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"strings"
	"testing"
)

// IsolateEnv sets XDG_CONFIG_HOME to a fresh temporary directory,
// unsets every NETRUNNER_* variable for the duration of the test, and
// returns the directory. Tests using it cannot run in parallel (the
// environment is process-wide).
func IsolateEnv(t *testing.T) string {
	t.Helper()

	for _, entry := range os.Environ() {
		name, _, _ := strings.Cut(entry, "=")
		if strings.HasPrefix(name, "NETRUNNER_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}

	directory := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", directory)
	return directory
}
