// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/config"
	"github.com/staranto/todoctl/internal/connectivity"
	"github.com/staranto/todoctl/internal/controller"
	"github.com/staranto/todoctl/internal/remote"
)

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}
}

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output flags shared by the query commands. ns is
// the command name used to namespace config keys and source is the config
// file.
func NewGlobalFlags(ns string, source string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		NewColorFlag(ns, source),
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(source)),
				yaml.YAML("output", altsrc.StringSourcer(source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"sort", altsrc.StringSourcer(source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(source)),
				yaml.YAML("titles", altsrc.StringSourcer(source)),
			),
			Value: false,
		},
	}

	return
}

// NewColorFlag is split out because show uses it without the other output
// flags.
func NewColorFlag(ns string, source string) cli.Flag {
	return &cli.BoolWithInverseFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"color", altsrc.StringSourcer(source)),
			yaml.YAML("color", altsrc.StringSourcer(source)),
		),
		Value: false,
	}
}

// NewEndpointFlags returns --todos-url and --users-url. Values come from the
// flag, then the environment, then endpoints.todos|users in the config file.
func NewEndpointFlags(source string) []cli.Flag {
	endpoint := func(name, env, key, def string) *cli.StringFlag {
		return &cli.StringFlag{
			Name:  name,
			Usage: "URL of the " + key + " collection",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar(env),
				yaml.YAML("endpoints."+key, altsrc.StringSourcer(source)),
			),
			Value: def,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, URLValidator)
			},
		}
	}

	return []cli.Flag{
		endpoint("todos-url", "TODOCTL_TODOS_URL", remote.CollectionTodos, remote.DefaultTodosURL),
		endpoint("users-url", "TODOCTL_USERS_URL", remote.CollectionUsers, remote.DefaultUsersURL),
	}
}

// NewControllerFlags returns the list controller tuning flags. Defaults come
// from load_more_delay and discard_stale in the config file.
func NewControllerFlags() []cli.Flag {
	delay, _ := config.GetDuration("load_more_delay", controller.DefaultLoadMoreDelay)
	discard, _ := config.GetBool("discard_stale", true)

	return []cli.Flag{
		&cli.DurationFlag{
			Name:  "delay",
			Usage: "simulated latency before each additional page",
			Value: delay,
		},
		&cli.BoolWithInverseFlag{
			Name:  "discard-stale",
			Usage: "drop results superseded by a later refresh",
			Value: discard,
		},
	}
}

// NewConnectivityFlags returns the browse flags that drive the connectivity
// monitor. The probe defaults to the todos endpoint when connectivity.probe is
// not configured.
func NewConnectivityFlags() []cli.Flag {
	probe, _ := config.GetString("connectivity.probe", "")
	interval, _ := config.GetDuration("connectivity.interval", connectivity.DefaultInterval)

	return []cli.Flag{
		&cli.StringFlag{
			Name:  "probe",
			Usage: "URL probed for connectivity (defaults to --todos-url)",
			Value: probe,
			Validator: func(value string) error {
				if value == "" {
					return nil
				}
				return FlagValidators(value, URLValidator)
			},
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "connectivity probe interval",
			Value: interval,
		},
		&cli.BoolFlag{
			Name:        "offline",
			Usage:       "start with the offline override on",
			HideDefault: true,
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
