// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Input is where prompts read answers. Tests replace it.
var Input io.Reader = os.Stdin

// interactive reports whether prompts can be shown. Tests replace it.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// Confirm asks a yes/no question on stderr unless yes is already set.
// Without a terminal the caller must pass --yes.
func Confirm(question string, yes bool) error {
	if yes {
		return nil
	}
	if !interactive() {
		return Validation("%s: confirmation required", strings.TrimSuffix(question, "?")).
			WithHint("Pass --yes to confirm without a prompt.")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	answer, err := bufio.NewReader(Input).ReadString('\n')
	if err != nil && err != io.EOF {
		return Internal("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	}
	return Validation("cancelled")
}

// ReadSecret prompts for a value without echo on a terminal, or reads
// one line from Input otherwise.
func ReadSecret(prompt string) (string, error) {
	if interactive() {
		fmt.Fprint(os.Stderr, prompt)
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", Internal("reading %s: %w", strings.TrimSuffix(strings.TrimSpace(prompt), ":"), err)
		}
		return string(secret), nil
	}
	line, err := bufio.NewReader(Input).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", Internal("reading secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
