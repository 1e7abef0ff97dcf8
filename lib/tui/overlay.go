// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay writes overlay lines over view starting at column x,
// row y. The parts of each view line left and right of the overlay
// keep their escape sequences; lines outside the view are ignored.
func SpliceOverlay(view string, overlay []string, x, y int) string {
	if len(overlay) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlay[0])

	for offset, overlayLine := range overlay {
		row := y + offset
		if row < 0 || row >= len(lines) {
			continue
		}
		base := lines[row]
		var spliced strings.Builder
		if x > 0 {
			left := ansi.Truncate(base, x, "")
			spliced.WriteString(left)
			if gap := x - ansi.StringWidth(left); gap > 0 {
				spliced.WriteString(strings.Repeat(" ", gap))
			}
		}
		spliced.WriteString("\x1b[0m")
		spliced.WriteString(overlayLine)
		spliced.WriteString("\x1b[0m")
		if right := x + overlayWidth; right < ansi.StringWidth(base) {
			spliced.WriteString(ansi.TruncateLeft(base, right, ""))
		}
		lines[row] = spliced.String()
	}
	return strings.Join(lines, "\n")
}

// CenterOverlay splices overlay into the middle of a screen of the
// given size.
func CenterOverlay(view string, overlay []string, screenWidth, screenHeight int) string {
	if len(overlay) == 0 {
		return view
	}
	x := max(0, (screenWidth-ansi.StringWidth(overlay[0]))/2)
	y := max(0, (screenHeight-len(overlay))/2)
	return SpliceOverlay(view, overlay, x, y)
}

// PadLine renders content inside a box row of totalWidth columns: one
// column of background on the left and background fill on the right.
// Content wider than the row is truncated.
func PadLine(content string, totalWidth int, background lipgloss.Style) string {
	inner := totalWidth - 2
	if ansi.StringWidth(content) > inner {
		content = ansi.Truncate(content, inner, "…")
	}
	fill := inner - ansi.StringWidth(content)
	return background.Render(" ") + content + background.Render(strings.Repeat(" ", fill+1))
}

// Truncate shortens s to width columns, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// Excerpt returns up to maxLines non-blank lines of body, each
// truncated to maxWidth.
func Excerpt(body string, maxWidth, maxLines int) []string {
	var excerpt []string
	for line := range strings.SplitSeq(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		excerpt = append(excerpt, Truncate(line, maxWidth))
		if len(excerpt) == maxLines {
			break
		}
	}
	return excerpt
}
