// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/schema/account"
)

type codeParams struct {
	cli.Connection
	cli.JSONOutput
	Login bool `json:"-" flag:"login" desc:"log in with the new code straight away"`
}

type codeResult struct {
	Code     account.AccessCode `json:"code"`
	LoggedIn bool               `json:"logged_in"`
}

// CodeCommand returns the "code" command.
func CodeCommand() *cli.Command {
	var params codeParams

	return &cli.Command{
		Name:    "code",
		Summary: "Get a new access code",
		Description: `Ask the server for a new customer access code and print it.

The code is the only credential of the account and cannot be
recovered or changed. Store it somewhere safe.`,
		Examples: []cli.Example{
			{
				Description: "Create an account and log in",
				Command:     "netrunner code --login",
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

			ctx, cancel := cli.CallContext(ctx)
			defer cancel()
			code, ok := connected.Client.Customer().RequestAccessCode(ctx)
			if !ok {
				return cli.Transient("requesting an access code failed")
			}

			result := codeResult{Code: code}
			if params.Login {
				if _, ok := connected.Session.LoginCustomer(ctx, string(code)); !ok {
					return cli.Transient("new code %s was issued but logging in with it failed", code).
						WithHint(fmt.Sprintf("Run \"netrunner login %s\".", code))
				}
				result.LoggedIn = true
			}

			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Fprintln(cli.Output, account.GroupAccessCode(code))
			fmt.Fprintln(os.Stderr, "Save this code. It is the only way to access your account and cannot be recovered.")
			if result.LoggedIn {
				fmt.Fprintln(os.Stderr, "Logged in.")
			}
			return nil
		},
	}
}
