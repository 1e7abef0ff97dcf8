// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// netrunner-tui is the interactive client for the netrunner hosting
// storefront: the public pages, customer dashboard with support
// tickets, and the administrator console, in one terminal UI.
//
// The session is restored from the same token store the netrunner CLI
// writes, so "netrunner login" followed by "netrunner-tui" opens the
// dashboard directly.
//
// Background logging (failed API calls) is routed through a
// TUILogHandler that shows warnings in the status bar instead of
// writing to stderr, which would corrupt the alt-screen display.
// --log-output additionally captures every record as JSON lines.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/netrunner-host/netrunner/cmd/netrunner/cli"
	"github.com/netrunner-host/netrunner/lib/config"
	"github.com/netrunner-host/netrunner/lib/storefrontui"
	"github.com/netrunner-host/netrunner/lib/version"
)

func main() {
	if err := run(); err != nil {
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
	var connection cli.Connection
	var location string
	var logOutput string

	flagSet := pflag.NewFlagSet("netrunner-tui", pflag.ContinueOnError)
	connection.AddFlags(flagSet)
	flagSet.BoolVar(&connection.Ephemeral, "ephemeral", false, "keep tokens in memory only (nothing is written to disk)")
	flagSet.StringVar(&location, "location", "/", "start page, e.g. /login, /dashboard or /admin")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match the netrunner CLI.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("netrunner-tui")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	cfg, err := config.Load(connection.ConfigPath)
	if err != nil {
		return cli.Validation("%w", err)
	}
	if logOutput == "" {
		logOutput = cfg.Log.Output
	}

	tuiHandler := storefrontui.NewTUILogHandler(slog.LevelWarn)
	var logger *slog.Logger
	if logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(logOutput, cfg.LogLevel())
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, err)
		}
		defer closeFile()
		logger = slog.New(storefrontui.FanoutHandler{tuiHandler, fileHandler})
	} else {
		logger = slog.New(tuiHandler)
	}

	connected, err := connection.Open(logger)
	if err != nil {
		return err
	}

	model := storefrontui.NewModel(storefrontui.Options{
		Session:  connected.Session,
		Client:   connected.Client,
		Logger:   logger,
		Location: location,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `netrunner-tui: interactive terminal client for the netrunner storefront.

Browse plans, get an access code, and manage support tickets. Press m
for the menu; the status bar lists the keys of each page.
Administrators start at /admin.

Usage:
  netrunner-tui [flags]

Examples:
  # Open the home page (or the dashboard when already logged in)
  netrunner-tui

  # Go straight to the administrator login
  netrunner-tui --location /admin

  # Try the storefront without saving a session
  netrunner-tui --ephemeral --api-url https://staging.example/api

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openFileLogHandler creates a JSON handler writing to path, which is
// created or truncated. The returned function closes the file.
func openFileLogHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return handler, func() { file.Close() }, nil
}
