// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/meta"
	"github.com/staranto/todoctl/internal/model"
)

// TqCommandAction is the action handler for the "tq" subcommand. It runs a
// live refresh through the list controller, optionally loads more pages or
// applies a search, and emits the display list per common flags.
func TqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*TodoRecord]{
		CommandName:  "tq",
		SchemaType:   reflect.TypeOf(TodoRecord{}),
		DefaultAttrs: []string{".id", "title", "userName", "completed"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]*TodoRecord, error) {
			todos, err := queryTodos(cmd)
			if err != nil {
				return nil, err
			}
			return todoRecords(todos), nil
		},
	}
	return runner.Run(ctx, cmd)
}

func queryTodos(cmd *cli.Command) ([]model.Todo, error) {
	ctl, err := loadFresh(cmd)
	if err != nil {
		return nil, err
	}
	defer ctl.Close()

	if cmd.Bool("all") {
		return ctl.All(), nil
	}

	for i := 0; i < cmd.Int("pages"); i++ {
		before := len(ctl.CurrentDisplayList())
		ctl.OnApproachingEndOfList()
		ctl.Wait()
		if len(ctl.CurrentDisplayList()) == before {
			log.Debugf("no more pages after %d", i)
			break
		}
	}

	if q := cmd.String("search"); q != "" {
		ctl.OnSearchTextChanged(q)
	}

	return ctl.CurrentDisplayList(), nil
}

// TqCommandBuilder constructs the cli.Command definition for the "tq" command,
// wiring flags, metadata, and the action/validator handlers.
func TqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "pages",
			Aliases: []string{"p"},
			Usage:   "additional pages to load after the first",
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		NameSpacedValueChainFlagFromConfigFile("tq", meta.Config.Source, &cli.StringFlag{
			Name:    "search",
			Aliases: []string{"q"},
			Usage:   "case-insensitive match on title or assignee",
		}),
		&cli.BoolFlag{
			Name:        "all",
			Usage:       "emit the full joined set instead of the display list",
			HideDefault: true,
		},
	}
	flags = append(flags, NewControllerFlags()...)

	return (&QueryCommandBuilder{
		Name:      "tq",
		Usage:     "todo query",
		UsageText: `todoctl tq [options]`,
		Flags:     flags,
		Action:    TqCommandAction,
		Meta:      meta,
	}).Build()
}
