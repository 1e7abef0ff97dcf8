// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// clipboardMsg reports the outcome of a copy.
type clipboardMsg struct {
	ok bool
}

// copyToClipboard sets the system clipboard with an OSC 52 sequence
// written straight to the controlling terminal. Inside tmux or screen
// the sequence is also sent wrapped in DCS passthrough.
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return clipboardMsg{}
		}
		defer tty.Close()

		sequence := osc52(text)
		if multiplexed() {
			passthrough := "\x1bPtmux;" + strings.ReplaceAll(sequence, "\x1b", "\x1b\x1b") + "\x1b\\"
			if _, err := tty.WriteString(passthrough); err != nil {
				return clipboardMsg{}
			}
		}
		if _, err := tty.WriteString(sequence); err != nil {
			return clipboardMsg{}
		}
		return clipboardMsg{ok: true}
	}
}

// osc52 terminates with BEL, which survives SSH and multiplexers
// better than ST.
func osc52(text string) string {
	return fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))
}

func multiplexed() bool {
	term := os.Getenv("TERM")
	return os.Getenv("TMUX") != "" || strings.HasPrefix(term, "tmux") || strings.HasPrefix(term, "screen")
}
