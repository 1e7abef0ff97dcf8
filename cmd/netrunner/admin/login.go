// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/netrunner-host/netrunner/cmd/netrunner/access"
	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/schema/account"
)

type loginParams struct {
	cli.Connection
	Username string `json:"username" flag:"username,u" desc:"administrator username"`
	Password string `json:"-"        flag:"password"   desc:"password (prompted for when omitted)"`
}

func loginCommand() *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Log in as administrator",
		Usage:   "netrunner admin login --username NAME [--password PASSWORD] [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			username := strings.TrimSpace(params.Username)
			if username == "" {
				return cli.Validation("--username is required")
			}
			password := params.Password
			if password == "" {
				secret, err := cli.ReadSecret("Password: ")
				if err != nil {
					return err
				}
				password = secret
			}
			if password == "" {
				return cli.Validation("password is required")
			}

			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			ctx, cancel := cli.CallContext(ctx)
			defer cancel()
			if _, ok := connected.Session.LoginAdmin(ctx, username, password); !ok {
				return cli.Forbidden("administrator login failed")
			}
			fmt.Fprintln(cli.Output, "Logged in as administrator.")
			return nil
		},
	}
}

type logoutParams struct {
	cli.Connection
}

func logoutCommand() *cli.Command {
	var params logoutParams

	return &cli.Command{
		Name:    "logout",
		Summary: "Forget the administrator session",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			connected, err := params.Open(logger)
			if err != nil {
				return err
			}
			return access.Logout(connected, account.RoleAdmin)
		},
	}
}
