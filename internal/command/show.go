// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/detail"
	"github.com/staranto/todoctl/internal/meta"
)

// ErrTodoNotFound is returned by show when no todo has the requested id.
var ErrTodoNotFound = errors.New("todo not found")

// ShowCommandAction is the action handler for the "show" subcommand. It
// loads the joined set and renders the detail view of one todo.
func ShowCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "show") {
		return nil
	}

	arg := cmd.Args().First()
	if arg == "" {
		return errors.New("show requires a todo ID")
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid todo ID %q: %w", arg, err)
	}

	ctl, err := loadFresh(cmd)
	if err != nil {
		return err
	}
	defer ctl.Close()

	todo, ok := findTodo(ctl.All(), id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrTodoNotFound, id)
	}
	log.Debugf("showing todo %d", id)

	return detail.Render(writer(cmd), detail.For(todo), cmd.Bool("color"))
}

// ShowCommandBuilder constructs the cli.Command definition for "show".
func ShowCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		newTLDRFlag(),
		NewColorFlag("show", meta.Config.Source),
	}
	flags = append(flags, NewEndpointFlags(meta.Config.Source)...)
	flags = append(flags, NewControllerFlags()...)

	return &cli.Command{
		Name:      "show",
		Usage:     "show the details of one todo",
		UsageText: "todoctl show ID [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: ShowCommandAction,
	}
}
