// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Decision is the state of a ConfirmDialog after a key press.
type Decision int

const (
	Undecided Decision = iota
	Confirmed
	Cancelled
)

var (
	confirmKeys = key.NewBinding(key.WithKeys("y", "Y"))
	cancelKeys  = key.NewBinding(key.WithKeys("n", "N", "esc", "q"))
	toggleKeys  = key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"))
	acceptKeys  = key.NewBinding(key.WithKeys("enter"))
)

// ConfirmDialog asks a yes/no question before a destructive action.
// The cancel button has focus initially so a stray enter does nothing
// harmful.
type ConfirmDialog struct {
	Title  string
	Prompt string

	// ConfirmLabel is the text of the affirmative button.
	ConfirmLabel string

	confirmFocused bool
}

// NewConfirmDialog builds a dialog with a "Delete" button.
func NewConfirmDialog(title, prompt string) ConfirmDialog {
	return ConfirmDialog{Title: title, Prompt: prompt, ConfirmLabel: "Delete"}
}

// Update handles one key and reports the resulting decision.
func (dialog *ConfirmDialog) Update(message tea.KeyMsg) Decision {
	switch {
	case key.Matches(message, confirmKeys):
		return Confirmed
	case key.Matches(message, cancelKeys):
		return Cancelled
	case key.Matches(message, toggleKeys):
		dialog.confirmFocused = !dialog.confirmFocused
	case key.Matches(message, acceptKeys):
		if dialog.confirmFocused {
			return Confirmed
		}
		return Cancelled
	}
	return Undecided
}

// Render returns the dialog as equal-width lines sized for a screen of
// screenWidth columns.
func (dialog ConfirmDialog) Render(theme Theme, screenWidth int) []string {
	width := min(max(40, screenWidth/2), max(screenWidth-4, 20))
	inner := width - 2

	background := lipgloss.NewStyle().Background(theme.OverlayBackground).Foreground(theme.OverlayForeground)
	title := background.Foreground(theme.ErrorText).Bold(true)
	button := lipgloss.NewStyle().Padding(0, 1).Background(theme.SelectedBackground).Foreground(theme.FaintText)
	focused := button.Background(theme.Accent).Foreground(lipgloss.Color("16")).Bold(true)

	lines := []string{
		PadLine("", width, background),
		PadLine(title.Render(dialog.Title), width, background),
		PadLine("", width, background),
	}
	for _, line := range strings.Split(ansi.Wordwrap(dialog.Prompt, inner, " "), "\n") {
		lines = append(lines, PadLine(background.Render(line), width, background))
	}

	cancelButton, confirmButton := focused.Render("Cancel"), button.Render(dialog.ConfirmLabel)
	if dialog.confirmFocused {
		cancelButton, confirmButton = button.Render("Cancel"), focused.Render(dialog.ConfirmLabel)
	}
	lines = append(lines,
		PadLine("", width, background),
		PadLine(cancelButton+background.Render("  ")+confirmButton, width, background),
		PadLine(background.Foreground(theme.HelpText).Render("y confirm · n cancel"), width, background),
	)
	return lines
}
