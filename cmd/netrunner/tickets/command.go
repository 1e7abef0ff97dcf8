// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tickets

import (
	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/clock"
	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/support"
)

// Scope selects whose tickets a command works on and with which
// credentials.
type Scope struct {
	// Role is the token slot the command requires.
	Role account.Role

	// Prefix is the command path used in usage lines and examples,
	// e.g. "netrunner tickets" or "netrunner admin".
	Prefix string
}

var (
	// Own is the logged-in customer's tickets.
	Own = Scope{Role: account.RoleCustomer, Prefix: "netrunner tickets"}
	// All is every ticket, seen by an administrator.
	All = Scope{Role: account.RoleAdmin, Prefix: "netrunner admin"}
)

// open builds the ticket workflow for scope after checking that the
// matching token is stored.
func (scope Scope) open(connected *cli.Connected) (*support.Workflow, error) {
	if scope.Role == account.RoleAdmin {
		if err := connected.RequireAdmin(); err != nil {
			return nil, err
		}
		return support.New(support.AdminGateway{Client: connected.Client.Admin()}, clock.Real()), nil
	}
	if err := connected.RequireCustomer(); err != nil {
		return nil, err
	}
	return support.New(support.CustomerGateway{Client: connected.Client.Customer()}, clock.Real()), nil
}

// Command returns the "tickets" group for customers.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "tickets",
		Summary: "Open and follow support tickets",
		Description: `Work with your support tickets.

Every command needs a customer session; log in first with
"netrunner login <access-code>".`,
		Subcommands: []*cli.Command{
			ListCommand(Own, "list"),
			createCommand(),
			ShowCommand(Own),
			ReplyCommand(Own),
		},
		Examples: []cli.Example{
			{
				Description: "List your tickets",
				Command:     "netrunner tickets list",
			},
			{
				Description: "Open a ticket",
				Command:     "netrunner tickets create --title 'DNS not resolving' --description 'example.com returns SERVFAIL'",
			},
		},
	}
}
