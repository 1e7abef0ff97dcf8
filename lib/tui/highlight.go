// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HighlightRunes renders text with base style, switching to match
// style for the runes at the given offsets. Offsets may be unsorted
// and may repeat; out-of-range offsets are ignored.
func HighlightRunes(text string, offsets []int, base, match lipgloss.Style) string {
	if len(offsets) == 0 {
		return base.Render(text)
	}
	marked := make(map[int]bool, len(offsets))
	for _, offset := range offsets {
		marked[offset] = true
	}

	var out, run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			out.WriteString(match.Render(run.String()))
		} else {
			out.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}
	for index, character := range []rune(text) {
		if marked[index] != runMatched {
			flush()
			runMatched = marked[index]
		}
		run.WriteRune(character)
	}
	flush()
	return out.String()
}
