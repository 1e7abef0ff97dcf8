// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package admin implements the administrator commands: session
// management, the user list, ticket moderation and deletes.
//
// Deletes are irreversible. They ask for confirmation on a terminal
// and require --yes otherwise.
package admin

import (
	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/cmd/netrunner/tickets"
	"github.com/netrunner-host/netrunner/lib/clock"
	"github.com/netrunner-host/netrunner/lib/moderation"
)

// Command returns the "admin" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "admin",
		Summary: "Administrator console",
		Description: `Moderate customers and support tickets.

Log in with "netrunner admin login --username NAME"; the password is
read from the terminal without echo, or from stdin when piped.`,
		Subcommands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			usersCommand(),
			deleteUserCommand(),
			tickets.ListCommand(tickets.All, "tickets"),
			tickets.ShowCommand(tickets.All),
			tickets.ReplyCommand(tickets.All),
			statusCommand(),
			deleteTicketCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Log in non-interactively",
				Command:     "printf '%s\\n' \"$PASSWORD\" | netrunner admin login --username admin",
			},
			{
				Description: "Close a ticket",
				Command:     "netrunner admin status 12 closed",
			},
		},
	}
}

// console opens the moderation workflow after checking for a stored
// administrator token.
func console(connected *cli.Connected) (*moderation.Workflow, error) {
	if err := connected.RequireAdmin(); err != nil {
		return nil, err
	}
	return moderation.New(connected.Client.Admin(), clock.Real()), nil
}
