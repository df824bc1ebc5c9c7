// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/apex/log"
	"github.com/hashicorp/jsonapi"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/attrs"
	"github.com/staranto/todoctl/internal/cache"
	"github.com/staranto/todoctl/internal/controller"
	"github.com/staranto/todoctl/internal/meta"
	"github.com/staranto/todoctl/internal/model"
	"github.com/staranto/todoctl/internal/output"
	"github.com/staranto/todoctl/internal/remote"
)

// writer returns the root command's Writer so tests can capture output.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if w := cmd.Root().Writer; w != nil {
			return w
		}
	}
	return os.Stdout
}

// ShortCircuitTLDR checks the --tldr flag and, if present, runs
// `tldr todoctl <subcmd>` and returns true so the caller can exit early. Without
// a tldr client on the PATH the built-in examples are printed instead.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if !cmd.Bool("tldr") {
		return false
	}

	if _, err := exec.LookPath("tldr"); err != nil {
		log.WithError(err).Debug("no tldr client, using built-in examples")
		output.DumpExamples(writer(cmd), examples[subcmd])
		return true
	}

	c := exec.CommandContext(ctx, "tldr", "todoctl", subcmd)
	c.Stdout = writer(cmd)
	c.Stderr = os.Stderr
	_ = c.Run()
	return true
}

// DumpSchemaIfRequested prints the attribute keys of the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(writer(cmd), "", t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, err
		}
	}
	err = al.SetGlobalTransformSpec()
	return
}

// settingsFrom collects the output flags.
func settingsFrom(cmd *cli.Command) output.Settings {
	return output.Settings{
		Output: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
	}
}

// EmitJSONAPISlice marshals a slice as JSONAPI and passes it to the common
// output routine.
func EmitJSONAPISlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	var raw bytes.Buffer
	if err := jsonapi.MarshalPayload(&raw, results); err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return output.SliceDiceSpit(raw, al, settingsFrom(cmd), "data", writer(cmd))
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// newClient builds a remote client from the endpoint flags.
func newClient(cmd *cli.Command) *remote.Client {
	return remote.New(remote.Endpoints{
		Todos: cmd.String("todos-url"),
		Users: cmd.String("users-url"),
	})
}

// newController builds a list controller over a fresh in-memory cache using
// the controller flags.
func newController(cmd *cli.Command) *controller.Controller {
	opts := controller.DefaultOptions()
	opts.LoadMoreDelay = cmd.Duration("delay")
	opts.DiscardStale = cmd.Bool("discard-stale")
	log.Debugf("controller options: %+v", opts)
	return controller.New(newClient(cmd), cache.New(), opts)
}

// loadFresh runs one live refresh to completion and returns the controller
// in Ready. The caller owns Close.
func loadFresh(cmd *cli.Command) (*controller.Controller, error) {
	ctl := newController(cmd)
	ctl.OnConnectivityChanged(true)
	ctl.Wait()

	if err := ctl.Snapshot().Err; err != nil {
		ctl.Close()
		return nil, err
	}
	return ctl, nil
}

// QueryCommandBuilder is a helper that constructs a cli.Command for query
// subcommands (tq, uq) using a consistent pattern. The builder wires
// metadata, adds tldr/schema flags, applies global and endpoint flags, and
// sets up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, qcb.Flags...)
	flags = append(flags, newTLDRFlag(), newSchemaFlag())
	flags = append(flags, NewGlobalFlags(qcb.Name, qcb.Meta.Config.Source)...)
	flags = append(flags, NewEndpointFlags(qcb.Meta.Config.Source)...)

	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common query action pattern for all
// query subcommands. It handles the short-circuit checks, attrs, schema
// dumping and output emission, with data fetching provided by FetchFn.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs.String())

	results, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	return EmitJSONAPISlice(results, attrs, cmd)
}

// findTodo returns the first todo with id.
func findTodo(todos []model.Todo, id int) (model.Todo, bool) {
	for _, t := range todos {
		if t.ID != nil && *t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}
