// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete netrunner CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netrunner-host/netrunner/cmd/netrunner/access"
	admincmd "github.com/netrunner-host/netrunner/cmd/netrunner/admin"
	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	ticketscmd "github.com/netrunner-host/netrunner/cmd/netrunner/tickets"
	"github.com/netrunner-host/netrunner/lib/version"
)

// Root builds and returns the complete command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "netrunner",
		Description: `netrunner: command-line client for the netrunner hosting storefront.

Get an access code, log in, and manage support tickets. Administrators
moderate users and tickets under "netrunner admin". Run
"netrunner-tui" for the interactive client.`,
		Subcommands: []*cli.Command{
			access.CodeCommand(),
			access.LoginCommand(),
			access.LogoutCommand(),
			access.WhoAmICommand(),
			ticketscmd.Command(),
			admincmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(context.Context, []string, *slog.Logger) error {
					fmt.Fprintf(cli.Output, "netrunner %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Create an account and log in",
				Command:     "netrunner code --login",
			},
			{
				Description: "Log in with an existing code",
				Command:     "netrunner login 1234567890123456",
			},
			{
				Description: "Open a support ticket",
				Command:     "netrunner tickets create -t 'Site down' -d 'example.com returns 502'",
			},
			{
				Description: "Point at a staging API",
				Command:     "netrunner tickets list --api-url https://staging.example/api",
			},
		},
	}
}
