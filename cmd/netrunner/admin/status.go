// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
	"github.com/netrunner-host/netrunner/lib/support"
)

type statusParams struct {
	cli.Connection
}

func statusCommand() *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:        "status",
		Summary:     "Change a ticket's status",
		Description: `Set a ticket to open, in_progress or closed.`,
		Usage:       "netrunner admin status <ticket-id> <open|in_progress|closed> [flags]",
		Params:      func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("expected a ticket id and a status")
			}
			ticketID := args[0]
			status, err := ticket.ParseStatus(args[1])
			if err != nil {
				return cli.Validation("%w", err)
			}

			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			workflow, err := console(connected)
			if err != nil {
				return err
			}
			ctx, cancel := cli.CallContext(ctx)
			defer cancel()
			if err := workflow.UpdateStatus(ctx, ticketID, status); err != nil {
				if errors.Is(err, support.ErrRejected) {
					return cli.Transient("%w", err)
				}
				return cli.Internal("%w", err)
			}
			fmt.Fprintf(cli.Output, "Ticket %s is now %s.\n", ticketID, status.Label())
			return nil
		},
	}
}
