// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/schema/account"
)

type usersParams struct {
	cli.Connection
	cli.JSONOutput
}

func usersCommand() *cli.Command {
	var params usersParams

	return &cli.Command{
		Name:    "users",
		Summary: "List customer accounts",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
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
			if !workflow.ListUsers(ctx) {
				return cli.Transient("listing users failed")
			}

			if done, err := params.EmitJSON(workflow.Users); done {
				return err
			}
			if len(workflow.Users) == 0 {
				fmt.Fprintln(cli.Output, "No users.")
				return nil
			}
			table := tabwriter.NewWriter(cli.Output, 2, 0, 3, ' ', 0)
			fmt.Fprintln(table, "ID\tACCESS CODE\tCREATED")
			for _, user := range workflow.Users {
				created := "-"
				if !user.CreatedAt.IsZero() {
					created = user.CreatedAt.Local().Format("2006-01-02")
				}
				fmt.Fprintf(table, "%s\t%s\t%s\n", user.ID, account.GroupAccessCode(user.Code), created)
			}
			return table.Flush()
		},
	}
}
