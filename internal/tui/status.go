// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/staranto/todoctl/internal/controller"
	"github.com/staranto/todoctl/internal/remote"
)

// status renders the one line bar under the list.
func (m Model) status() string {
	s := m.snap
	parts := make([]string, 0, 6)

	switch {
	case m.sw != nil && m.sw.Offline():
		parts = append(parts, errorStyle.Render("○ offline (forced)"))
	case s.Connected:
		parts = append(parts, doneStyle.Render("● online"))
	default:
		parts = append(parts, mutedStyle.Render("○ offline"))
	}

	switch s.State {
	case controller.LoadingFresh, controller.LoadingMore:
		parts = append(parts, m.spinner.View()+" "+s.State.String())
	default:
		parts = append(parts, s.State.String())
	}

	counts := fmt.Sprintf("%s of %s todos", humanize.Comma(int64(len(s.Display))), humanize.Comma(int64(s.Total)))
	if s.Query != "" {
		counts = fmt.Sprintf("%s matches for %q", humanize.Comma(int64(len(s.Display))), s.Query)
	}
	parts = append(parts, counts)

	if s.Users > 0 {
		parts = append(parts, humanize.Comma(int64(s.Users))+" users")
	}

	if !s.LastRefresh.IsZero() {
		parts = append(parts, "refreshed "+humanize.RelTime(s.LastRefresh, m.now(), "ago", "from now"))
		if s.LastChange.Changed() {
			parts = append(parts, s.LastChange.String())
		}
	}

	line := strings.Join(parts, mutedStyle.Render(" · "))
	if s.Err != nil {
		line += "\n" + errorStyle.Render(remote.Friendly(s.Err))
	}
	return line
}
