// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tickets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/schema/ticket"
)

type listParams struct {
	cli.Connection
	cli.JSONOutput
	Filter string `json:"filter" flag:"filter,f" desc:"fuzzy filter over id, title and status"`
}

// ListCommand lists the tickets of scope under the given command name.
func ListCommand(scope Scope, name string) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    name,
		Summary: "List tickets",
		Description: `List tickets in server order, newest first.

--filter ranks tickets by a fuzzy match against their id, title and
status; the best match is printed first.`,
		Usage: scope.Prefix + " " + name + " [--filter QUERY] [flags]",
		Examples: []cli.Example{
			{
				Description: "Show tickets that mention DNS",
				Command:     scope.Prefix + " " + name + " --filter dns",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
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

			matches := workflow.Filter(params.Filter)
			listed := make([]ticket.Ticket, 0, len(matches))
			for _, match := range matches {
				listed = append(listed, match.Ticket)
			}

			if done, err := params.EmitJSON(listed); done {
				return err
			}
			if len(listed) == 0 {
				fmt.Fprintln(cli.Output, "No tickets.")
				return nil
			}
			return writeTicketTable(cli.Output, listed, scope == All)
		},
	}
}
