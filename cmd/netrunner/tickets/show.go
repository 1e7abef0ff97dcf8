// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tickets

import (
	"context"
	"log/slog"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
)

type showParams struct {
	cli.Connection
	cli.JSONOutput
}

type thread struct {
	Ticket   ticket.Ticket    `json:"ticket"`
	Messages []ticket.Message `json:"messages"`
}

// ShowCommand prints one ticket of scope with its message thread.
func ShowCommand(scope Scope) *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show a ticket and its messages",
		Usage:   scope.Prefix + " show <ticket-id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Read the conversation on ticket 12",
				Command:     scope.Prefix + " show 12",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one ticket id")
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
			if !workflow.ListTickets(ctx) {
				return cli.Transient("listing tickets failed")
			}
			found, ok := workflow.Find(args[0])
			if !ok {
				return cli.NotFound("ticket %s not found", args[0])
			}
			workflow.Select(found)
			if !workflow.LoadMessages(ctx) {
				return cli.Transient("loading messages for ticket %s failed", found.ID)
			}

			if done, err := params.EmitJSON(thread{Ticket: *workflow.Selected, Messages: workflow.Messages}); done {
				return err
			}
			writeThread(cli.Output, *workflow.Selected, workflow.Messages)
			return nil
		},
	}
}
