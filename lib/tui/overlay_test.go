// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestSpliceOverlay(t *testing.T) {
	view := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	got := ansi.Strip(SpliceOverlay(view, []string{"XY", "ZW"}, 3, 1))
	want := "aaaaaaaaaa\nbbbXYbbbbb\ncccZWccccc"
	if got != want {
		t.Errorf("SpliceOverlay =\n%s\nwant\n%s", got, want)
	}
}

func TestSpliceOverlayClipsRows(t *testing.T) {
	view := "one\ntwo"
	got := ansi.Strip(SpliceOverlay(view, []string{"A", "B", "C"}, 0, 1))
	if got != "one\nAwo" {
		t.Errorf("SpliceOverlay = %q", got)
	}
}

func TestSpliceOverlayPastLineEnd(t *testing.T) {
	got := ansi.Strip(SpliceOverlay("ab", []string{"Z"}, 4, 0))
	if got != "ab  Z" {
		t.Errorf("SpliceOverlay = %q, want %q", got, "ab  Z")
	}
}

func TestCenterOverlay(t *testing.T) {
	view := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	got := strings.Split(ansi.Strip(CenterOverlay(view, []string{"##", "##"}, 10, 5)), "\n")
	if got[1] != "....##...." || got[2] != "....##...." {
		t.Errorf("centered overlay rows = %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	body := "\n  first line  \n\nsecond line that is long\nthird"
	got := Excerpt(body, 10, 2)
	if len(got) != 2 || got[0] != "first line" || ansi.StringWidth(got[1]) != 10 || !strings.HasSuffix(got[1], "…") {
		t.Errorf("Excerpt = %q", got)
	}
}

func TestHighlightRunes(t *testing.T) {
	plain := HighlightRunes("héllo", []int{1, 4, 9}, lipgloss.NewStyle(), lipgloss.NewStyle().Bold(true))
	if ansi.Strip(plain) != "héllo" {
		t.Errorf("HighlightRunes lost text: %q", ansi.Strip(plain))
	}
}
