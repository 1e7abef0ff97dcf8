// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func render(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(RenderMarkdown(input, DefaultTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("  \n", DefaultTheme, 40); got != "" {
		t.Errorf("blank input rendered %q", got)
	}
}

func TestRenderMarkdownReflowsSoftBreaks(t *testing.T) {
	got := render(t, "my domain\nstopped resolving", 80)
	if got != "my domain stopped resolving" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownWraps(t *testing.T) {
	got := render(t, strings.Repeat("word ", 20), 20)
	for _, line := range strings.Split(got, "\n") {
		if ansi.StringWidth(line) > 20 {
			t.Errorf("line %q wider than 20", line)
		}
	}
}

func TestRenderMarkdownLists(t *testing.T) {
	got := render(t, "- first\n- second\n\n1. one\n2. two", 40)
	for _, want := range []string{"• first", "• second", "1. one", "2. two"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderMarkdownCodeAndLinks(t *testing.T) {
	input := "Run `dig example.com` then see [docs](https://ne7runner.ru/docs).\n\n```\nnameserver 1.1.1.1\n```"
	got := render(t, input, 80)
	for _, want := range []string{"dig example.com", "docs (https://ne7runner.ru/docs)", "nameserver 1.1.1.1"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "```") || strings.Contains(got, "`dig") {
		t.Errorf("markdown syntax leaked:\n%s", got)
	}
}

func TestRenderMarkdownHeadingAndQuote(t *testing.T) {
	got := render(t, "## Update\n\n> the old server", 40)
	if !strings.HasPrefix(got, "Update") {
		t.Errorf("heading not first: %q", got)
	}
	if !strings.Contains(got, "│ the old server") {
		t.Errorf("quote not indented: %q", got)
	}
}
