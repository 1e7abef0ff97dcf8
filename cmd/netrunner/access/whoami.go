// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/schema/account"
)

type whoamiParams struct {
	cli.Connection
	cli.JSONOutput
}

type whoamiResult struct {
	Role account.Role       `json:"role"`
	Code account.AccessCode `json:"code,omitempty"`
}

// WhoAmICommand returns the "whoami" command. The session is resolved
// the way the interactive client does at startup: a stored admin token
// is verified with the server, a customer token is trusted as is.
func WhoAmICommand() *cli.Command {
	var params whoamiParams

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the active session",
		Description: `Print the role of the stored session. Customers also see their
access code. Exits with status 1 when nobody is logged in.`,
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			ctx, cancel := cli.CallContext(ctx)
			defer cancel()

			current := connected.Session.Resolve(ctx)
			result := whoamiResult{Role: current.Role}
			if current.Role == account.RoleCustomer {
				if code, ok := connected.Client.Customer().OwnCode(ctx); ok {
					result.Code = code
				}
			}

			if done, err := params.EmitJSON(result); done {
				if err != nil {
					return err
				}
			} else {
				switch current.Role {
				case account.RoleAnonymous:
					fmt.Fprintln(cli.Output, "Not logged in.")
				case account.RoleAdmin:
					fmt.Fprintln(cli.Output, "Logged in as administrator.")
				default:
					if result.Code != "" {
						fmt.Fprintf(cli.Output, "Logged in as customer %s.\n", account.GroupAccessCode(result.Code))
					} else {
						fmt.Fprintln(cli.Output, "Logged in as customer.")
					}
				}
			}
			if current.Role == account.RoleAnonymous {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
