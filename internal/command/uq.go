// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/meta"
)

// UqCommandAction is the action handler for the "uq" subcommand. It fetches
// the user collection and emits it per common flags.
func UqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*UserRecord]{
		CommandName:  "uq",
		SchemaType:   reflect.TypeOf(UserRecord{}),
		DefaultAttrs: []string{".id", "name"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]*UserRecord, error) {
			users, err := newClient(cmd).FetchUsers(ctx).Await(ctx)
			if err != nil {
				return nil, err
			}
			return userRecords(users), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// UqCommandBuilder constructs the cli.Command definition for the "uq" command.
func UqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "uq",
		Usage:     "user query",
		UsageText: `todoctl uq [options]`,
		Action:    UqCommandAction,
		Meta:      meta,
	}).Build()
}
