// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/todoctl/internal/connectivity"
	"github.com/staranto/todoctl/internal/meta"
	"github.com/staranto/todoctl/internal/tui"
)

// ErrNotATerminal is returned by browse when stdout cannot host the view.
var ErrNotATerminal = errors.New("browse needs an interactive terminal; use tq for scripting")

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// BrowseCommandAction is the action handler for the "browse" subcommand. It
// starts the connectivity monitor and hands the terminal to the list view.
func BrowseCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "browse") {
		return nil
	}
	if !isTerminal() {
		return ErrNotATerminal
	}

	probe := cmd.String("probe")
	if probe == "" {
		probe = cmd.String("todos-url")
	}

	sw := connectivity.NewSwitch(&connectivity.HTTPProber{URL: probe})
	sw.SetOffline(cmd.Bool("offline"))
	mon := connectivity.New(sw, cmd.Duration("interval"))

	log.WithFields(log.Fields{
		"probe":    probe,
		"interval": cmd.Duration("interval"),
		"offline":  sw.Offline(),
	}).Debug("starting browse")

	return tui.Run(ctx, tui.Config{
		Controller: newController(cmd),
		Switch:     sw,
		Monitor:    mon,
		AltScreen:  cmd.Bool("alt-screen"),
	})
}

// BrowseCommandBuilder constructs the cli.Command definition for "browse".
func BrowseCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		newTLDRFlag(),
		&cli.BoolWithInverseFlag{
			Name:  "alt-screen",
			Usage: "use the terminal's alternate screen",
			Value: true,
		},
	}
	flags = append(flags, NewEndpointFlags(meta.Config.Source)...)
	flags = append(flags, NewControllerFlags()...)
	flags = append(flags, NewConnectivityFlags()...)

	return &cli.Command{
		Name:      "browse",
		Usage:     "interactive todo browser",
		UsageText: "todoctl browse [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: BrowseCommandAction,
	}
}
