// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/schema/account"
)

type loginParams struct {
	cli.Connection
}

// LoginCommand returns the customer "login" command.
func LoginCommand() *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Log in with an access code",
		Description: `Exchange an access code for a session token and store it.

The code may be typed with or without the grouping spaces shown when
it was issued; everything but digits is ignored.`,
		Usage: "netrunner login <access-code> [flags]",
		Examples: []cli.Example{
			{
				Command: "netrunner login '1234 5678 9012 3456'",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("access code required")
			}
			input := strings.Join(args, " ")
			if account.NormalizeAccessCode(input) == "" {
				return cli.Validation("access code must contain digits")
			}

			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			ctx, cancel := cli.CallContext(ctx)
			defer cancel()
			if _, ok := connected.Session.LoginCustomer(ctx, input); !ok {
				return cli.Forbidden("login failed").
					WithHint("Check the access code, or run \"netrunner code\" to get a new one.")
			}
			fmt.Fprintln(cli.Output, "Logged in.")
			return nil
		},
	}
}

type logoutParams struct {
	cli.Connection
	Admin bool `json:"-" flag:"admin" desc:"clear the administrator session instead"`
}

// LogoutCommand returns the "logout" command. It forgets the stored
// token without contacting the server.
func LogoutCommand() *cli.Command {
	var params logoutParams

	return &cli.Command{
		Name:    "logout",
		Summary: "Forget the stored session",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			return Logout(connected, roleFor(params.Admin))
		},
	}
}

func roleFor(admin bool) account.Role {
	if admin {
		return account.RoleAdmin
	}
	return account.RoleCustomer
}

// Logout clears role's token and reports whether anything was stored.
func Logout(connected *cli.Connected, role account.Role) error {
	_, present := connected.Tokens.Get(role)
	if _, err := connected.Session.Logout(role); err != nil {
		return cli.Internal("%w", err)
	}
	if !present {
		fmt.Fprintf(cli.Output, "No %s session was stored.\n", role)
		return nil
	}
	fmt.Fprintln(cli.Output, "Logged out.")
	return nil
}
