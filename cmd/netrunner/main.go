// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/cmd/netrunner/commands"
	"github.com/netrunner-host/netrunner/lib/config"
	"github.com/netrunner-host/netrunner/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like whoami) return an
		// ExitError with the desired exit code. Don't print a redundant
		// "error:" line for those.
		var exitError *cli.ExitError
		if errors.As(err, &exitError) {
			os.Exit(exitError.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var toolError *cli.ToolError
		if errors.As(err, &toolError) {
			if toolError.Hint != "" {
				fmt.Fprintf(os.Stderr, "hint: %s\n", toolError.Hint)
			}
			os.Exit(toolError.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--version" {
		version.Print("netrunner")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The configuration is loaded again by each networked command
	// (with its --config flag). Here it only picks the log level, so
	// a broken file is reported by the command rather than twice.
	level := config.Default().LogLevel()
	if cfg, err := config.Load(""); err == nil {
		level = cfg.LogLevel()
	}
	return commands.Root().Execute(ctx, args, cli.NewCommandLogger(level))
}
