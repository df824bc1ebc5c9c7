// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version holds build information, set with -ldflags at release time.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the full version line.
func String() string {
	return fmt.Sprintf("todoctl %s (%s, %s)", Version, Commit, Date)
}
