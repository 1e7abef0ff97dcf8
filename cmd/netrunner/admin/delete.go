// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/moderation"
)

type deleteParams struct {
	cli.Connection
	Yes bool `json:"-" flag:"yes,y" desc:"delete without asking"`
}

func deleteUserCommand() *cli.Command {
	return deleteCommand(moderation.KindUser, "delete-user", "Delete a customer account",
		(*moderation.Workflow).StageDeleteUser)
}

func deleteTicketCommand() *cli.Command {
	return deleteCommand(moderation.KindTicket, "delete-ticket", "Delete a ticket and its messages",
		(*moderation.Workflow).StageDeleteTicket)
}

// deleteCommand stages a delete, confirms it, and executes it once.
func deleteCommand(kind moderation.Kind, name, summary string, stage func(*moderation.Workflow, string)) *cli.Command {
	var params deleteParams

	return &cli.Command{
		Name:        name,
		Summary:     summary,
		Description: summary + ". This cannot be undone.",
		Usage:       fmt.Sprintf("netrunner admin %s <%s-id> [--yes] [flags]", name, kind),
		Examples: []cli.Example{
			{
				Description: "Delete without a prompt",
				Command:     fmt.Sprintf("netrunner admin %s 7 --yes", name),
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one %s id", kind)
			}
			targetID := args[0]

			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			workflow, err := console(connected)
			if err != nil {
				return err
			}

			stage(workflow, targetID)
			if err := cli.Confirm(fmt.Sprintf("Delete %s %s?", kind, targetID), params.Yes); err != nil {
				workflow.Cancel()
				return err
			}

			ctx, cancel := cli.CallContext(ctx)
			defer cancel()
			if !workflow.Confirm(ctx) {
				return cli.Transient("deleting %s %s failed", kind, targetID)
			}
			fmt.Fprintf(cli.Output, "Deleted %s %s.\n", kind, targetID)
			return nil
		},
	}
}
