// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

// examples are shown by --tldr when no tldr client is installed. Keep them in
// step with the Quick examples in docs/commands.
var examples = map[string][][2]string{
	"tq": {
		{"todoctl tq", "show the first page"},
		{"todoctl tq --pages 2 -o json", "show the first three pages as JSON"},
		{"todoctl tq --search bob", "find todos assigned to Bob"},
		{"todoctl tq --all --filter completed=false --sort -id", "open todos, newest id first"},
		{"todoctl tq @mine", "apply the mine argument set from the config file"},
	},
	"uq": {
		{"todoctl uq", "list user ids and names"},
		{"todoctl uq -o yaml", "users as YAML"},
	},
	"show": {
		{"todoctl show 7", "show todo 7"},
		{"todoctl show --no-color 7", "show todo 7 without color"},
	},
	"browse": {
		{"todoctl browse", "start the browser"},
		{"todoctl browse --offline --no-alt-screen", "start offline, inline in the terminal"},
	},
}
