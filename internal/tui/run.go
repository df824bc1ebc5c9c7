// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/staranto/todoctl/internal/connectivity"
	"github.com/staranto/todoctl/internal/controller"
)

// Config wires the browse view to its collaborators.
type Config struct {
	Controller *controller.Controller
	Switch     *connectivity.Switch
	Monitor    *connectivity.Monitor
	// AltScreen runs the view in the terminal's alternate screen.
	AltScreen bool
}

// Run shows the browse view until the user quits or ctx is done. The Monitor
// drives the Controller for the lifetime of the view; both are stopped before
// Run returns.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Controller == nil || cfg.Monitor == nil {
		return errors.New("tui: controller and monitor are required")
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(New(cfg.Controller, cfg.Switch, cfg.Monitor), opts...)
	cfg.Controller.Subscribe(func() { p.Send(changedMsg{}) })
	cfg.Monitor.Start(ctx, cfg.Controller.OnConnectivityChanged)

	_, err := p.Run()

	cfg.Monitor.Stop()
	cfg.Controller.Close()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("browse: %w", err)
	}
	log.Debug("browse view closed")
	return nil
}
