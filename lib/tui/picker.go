// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PickerOption is one choice in a Picker.
type PickerOption struct {
	Label string
	Value string
}

// Picker is a floating single-choice menu. The owning model routes
// keys to it while it is open and reads Selected on enter.
type Picker struct {
	Title   string
	Options []PickerOption
	Cursor  int

	// Target identifies what the choice applies to, e.g. a ticket id.
	Target string
}

// NewPicker opens a picker with the cursor on the option whose value
// is current, or on the first option.
func NewPicker(title, target string, options []PickerOption, current string) *Picker {
	picker := &Picker{Title: title, Options: options, Target: target}
	for index, option := range options {
		if option.Value == current {
			picker.Cursor = index
		}
	}
	return picker
}

// MoveUp moves the cursor up, wrapping to the last option.
func (picker *Picker) MoveUp() {
	if len(picker.Options) == 0 {
		return
	}
	picker.Cursor = (picker.Cursor - 1 + len(picker.Options)) % len(picker.Options)
}

// MoveDown moves the cursor down, wrapping to the first option.
func (picker *Picker) MoveDown() {
	if len(picker.Options) == 0 {
		return
	}
	picker.Cursor = (picker.Cursor + 1) % len(picker.Options)
}

// Selected returns the option under the cursor.
func (picker *Picker) Selected() PickerOption {
	return picker.Options[picker.Cursor]
}

// Width is the rendered width in columns.
func (picker *Picker) Width() int {
	widest := ansi.StringWidth(picker.Title)
	for _, option := range picker.Options {
		widest = max(widest, ansi.StringWidth(option.Label)+2)
	}
	return widest + 2
}

// Render returns the picker as equal-width lines for SpliceOverlay.
func (picker *Picker) Render(theme Theme) []string {
	width := picker.Width()
	background := lipgloss.NewStyle().Background(theme.OverlayBackground).Foreground(theme.OverlayForeground)
	highlighted := lipgloss.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground)
	title := lipgloss.NewStyle().Background(theme.OverlayBackground).Foreground(theme.Accent).Bold(true)

	lines := []string{PadLine(title.Render(picker.Title), width, background)}
	for index, option := range picker.Options {
		label := "  " + option.Label
		style := background
		if index == picker.Cursor {
			label = "> " + option.Label
			style = highlighted
		}
		label += strings.Repeat(" ", max(0, width-2-ansi.StringWidth(label)))
		lines = append(lines, PadLine(style.Render(label), width, background))
	}
	return lines
}
