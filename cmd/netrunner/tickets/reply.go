// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/support"
)

type replyParams struct {
	cli.Connection
}

// ReplyCommand posts a message to a ticket of scope. Words after the
// ticket id are joined with spaces, so quoting is optional.
func ReplyCommand(scope Scope) *cli.Command {
	var params replyParams

	return &cli.Command{
		Name:    "reply",
		Summary: "Post a message to a ticket",
		Description: `Append a message to a ticket's thread. Closed tickets accept
messages too.`,
		Usage: scope.Prefix + " reply <ticket-id> <message...> [flags]",
		Examples: []cli.Example{
			{
				Description: "Answer on ticket 12",
				Command:     scope.Prefix + " reply 12 'Restarted the resolver, please retry.'",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 2 {
				return cli.Validation("expected a ticket id and a message")
			}
			ticketID := args[0]
			content, err := support.ValidateMessage(strings.Join(args[1:], " "))
			if err != nil {
				return cli.Validation("%w", err)
			}

			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			workflow, err := scope.open(connected)
			if err != nil {
				return err
			}

			ctx, cancel := cli.CallContext(ctx)
			defer cancel()
			if !workflow.PostMessage(ctx, ticketID, content).OK {
				return cli.Transient("posting to ticket %s failed", ticketID)
			}
			fmt.Fprintf(cli.Output, "Message sent to ticket %s.\n", ticketID)
			return nil
		},
	}
}
