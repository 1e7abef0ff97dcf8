// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tickets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/support"
)

type createParams struct {
	cli.Connection
	cli.JSONOutput
	Title       string `json:"title"       flag:"title,t"       desc:"ticket title"`
	Description string `json:"description" flag:"description,d" desc:"what is wrong (markdown)"`
}

func createCommand() *cli.Command {
	var params createParams

	return &cli.Command{
		Name:    "create",
		Summary: "Open a new ticket",
		Description: `Open a support ticket. Both --title and --description are required;
surrounding whitespace is trimmed. New tickets start as "open".`,
		Usage: "netrunner tickets create --title TITLE --description TEXT [flags]",
		Examples: []cli.Example{
			{
				Description: "Report a broken database",
				Command:     "netrunner tickets create -t 'Postgres down' -d 'Connections time out since 09:00'",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			draft, err := support.ValidateDraft(params.Title, params.Description)
			if err != nil {
				return cli.Validation("%w", err)
			}

			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			workflow, err := Own.open(connected)
			if err != nil {
				return err
			}

			ctx, cancel := cli.CallContext(ctx)
			defer cancel()
			workflow.MarkBusy()
			result := workflow.SubmitTicket(ctx, draft)
			if err := workflow.CompleteCreateTicket(result); err != nil {
				return cli.Transient("creating ticket: %w", err)
			}

			if done, err := params.EmitJSON(result.Ticket); done {
				return err
			}
			fmt.Fprintln(cli.Output, result.Ticket.ID)
			return nil
		},
	}
}
