// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tickets

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/netrunner-host/netrunner/lib/schema/ticket"
)

const timestampLayout = "2006-01-02 15:04"

// stamp formats a server timestamp; zero times print as "-".
func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timestampLayout)
}

func writeTicketTable(w io.Writer, listed []ticket.Ticket, withOwner bool) error {
	table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	if withOwner {
		fmt.Fprintln(table, "ID\tSTATUS\tOWNER\tCREATED\tTITLE")
	} else {
		fmt.Fprintln(table, "ID\tSTATUS\tCREATED\tTITLE")
	}
	for _, entry := range listed {
		if withOwner {
			fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
				entry.ID, entry.Status.Label(), entry.OwnerID, stamp(entry.CreatedAt), entry.Title)
		} else {
			fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
				entry.ID, entry.Status.Label(), stamp(entry.CreatedAt), entry.Title)
		}
	}
	return table.Flush()
}

func writeThread(w io.Writer, selected ticket.Ticket, messages []ticket.Message) {
	fmt.Fprintf(w, "#%s %s [%s]\n", selected.ID, selected.Title, selected.Status.Label())
	fmt.Fprintf(w, "Opened %s\n\n", stamp(selected.CreatedAt))
	fmt.Fprintln(w, strings.TrimSpace(selected.Description))

	if len(messages) == 0 {
		fmt.Fprintln(w, "\nNo messages yet.")
		return
	}
	for _, message := range messages {
		fmt.Fprintf(w, "\n%s · %s\n", message.Author.Label(), stamp(message.CreatedAt))
		for line := range strings.SplitSeq(strings.TrimSpace(message.Content), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
