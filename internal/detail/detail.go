// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package detail renders the read-only view of a single todo.
package detail

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/todoctl/internal/model"
)

// View is the three line presentation of one todo.
type View struct {
	Title    string
	Assignee string
	Status   string
	done     bool
}

// For builds the View for todo. Missing fields fall back to an empty title,
// "Unknown" assignee and "Pending" status.
func For(todo model.Todo) View {
	done := todo.IsCompleted()
	status := "Pending"
	if done {
		status = "Completed"
	}
	return View{
		Title:    todo.TitleOr(""),
		Assignee: "Assigned to: " + todo.UserNameOr("Unknown"),
		Status:   "Status: " + status,
		done:     done,
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// String renders the view styled for a terminal.
func (v View) String() string {
	status := pendingStyle.Render(v.Status)
	if v.done {
		status = doneStyle.Render(v.Status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(v.Title),
		labelStyle.Render(v.Assignee),
		status,
	)
}

// Render writes the view to w, plain unless styled.
func Render(w io.Writer, v View, styled bool) error {
	if styled {
		_, err := fmt.Fprintln(w, v.String())
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", v.Title, v.Assignee, v.Status)
	return err
}
