// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/todoctl/internal/connectivity"
	"github.com/staranto/todoctl/internal/controller"
	"github.com/staranto/todoctl/internal/detail"
	"github.com/staranto/todoctl/internal/model"
)

// changedMsg tells the model the controller has something new to show.
type changedMsg struct{}

// poker is the part of connectivity.Monitor the model needs.
type poker interface {
	Poke()
}

const defaultHeight = 24

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4672"))
)

// todoItem adapts a joined todo to list.Item.
type todoItem struct {
	model.Todo
}

func (i todoItem) FilterValue() string { return i.TitleOr("") }

// todoDelegate renders one todo per line: checkbox, title and assignee.
type todoDelegate struct{}

func (d todoDelegate) Height() int                               { return 1 }
func (d todoDelegate) Spacing() int                              { return 0 }
func (d todoDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}

	box := "☐"
	if it.IsCompleted() {
		box = doneStyle.Render("☑")
	}

	line := fmt.Sprintf("%s %s", box, it.TitleOr(""))
	if name := it.UserNameOr(""); name != "" {
		line += " " + mutedStyle.Render("· "+name)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

// Model is the browse view. It never mutates controller state from Update;
// every controller call is issued from a tea.Cmd.
type Model struct {
	ctl *controller.Controller
	sw  *connectivity.Switch
	mon poker

	keys    keyMap
	help    help.Model
	list    list.Model
	search  textinput.Model
	spinner spinner.Model

	snap      controller.Snapshot
	width     int
	height    int
	searching bool
	requested bool
	detail    *detail.View

	now func() time.Time
}

// New returns a Model over ctl. sw and mon may be nil, which disables the
// offline toggle.
func New(ctl *controller.Controller, sw *connectivity.Switch, mon *connectivity.Monitor) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title or assignee"
	ti.CharLimit = 200
	ti.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	keys := defaultKeys()

	// Searching goes through the controller, so the list only pages.
	l := list.New(nil, todoDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.CursorUp = keys.Up
	l.KeyMap.CursorDown = keys.Down
	l.KeyMap.PrevPage = keys.PageUp
	l.KeyMap.NextPage = keys.PageDn
	l.KeyMap.GoToStart = keys.Top
	l.KeyMap.GoToEnd = keys.Bottom

	m := Model{
		ctl:     ctl,
		sw:      sw,
		keys:    keys,
		help:    help.New(),
		list:    l,
		search:  ti,
		spinner: sp,
		now:     time.Now,
	}
	if mon != nil {
		m.mon = mon
	}
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// do runs fn off the update loop. Controller calls notify subscribers, and the
// subscriber sends to the program, so they must not run inside Update.
func do(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, m.maybeLoadMore()

	case changedMsg:
		m.sync()
		m.requested = false
		return m, m.maybeLoadMore()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || !m.searching) {
			return m, tea.Quit
		}
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Open) {
		m.detail = nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.searching = false
		m.search.Blur()
		return m, m.setQuery("")
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	query := m.setQuery(m.search.Value())
	if cmd == nil {
		return m, query
	}
	return m, tea.Batch(cmd, query)
}

// setQuery rewinds the selection and hands text to the controller.
func (m *Model) setQuery(text string) tea.Cmd {
	m.search.SetValue(text)
	m.list.ResetSelected()
	ctl := m.ctl
	return do(func() { ctl.OnSearchTextChanged(text) })
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDn, m.keys.Top, m.keys.Bottom):
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		if more := m.maybeLoadMore(); more != nil {
			return m, tea.Batch(cmd, more)
		}
		return m, cmd
	case key.Matches(msg, m.keys.Open):
		if it, ok := m.list.SelectedItem().(todoItem); ok {
			v := detail.For(it.Todo)
			m.detail = &v
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.search.Value() != "" {
			return m, m.setQuery("")
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Offline):
		if m.sw == nil {
			return m, nil
		}
		offline := m.sw.Toggle()
		log.WithField("offline", offline).Debug("offline override toggled")
		if m.mon != nil {
			m.mon.Poke()
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if m.sw != nil && m.sw.Offline() {
			return m, nil
		}
		ctl := m.ctl
		return m, do(func() { ctl.OnConnectivityChanged(true) })
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	return m, nil
}

// maybeLoadMore asks for the next page once the threshold row is on screen.
func (m *Model) maybeLoadMore() tea.Cmd {
	s := m.snap
	if m.requested || s.State != controller.Ready || s.LoadingMore || s.Query != "" {
		return nil
	}
	start, end := m.list.Paginator.GetSliceBounds(len(m.list.Items()))
	if !visibleThreshold(start, end, len(s.Display)) {
		return nil
	}
	m.requested = true
	ctl := m.ctl
	return do(ctl.OnApproachingEndOfList)
}

// visibleThreshold reports whether any of the rows [start, end) of a count
// long list is the prefetch row.
func visibleThreshold(start, end, count int) bool {
	for row := max(start, 0); row < end && row < count; row++ {
		if controller.AtThreshold(row, count) {
			return true
		}
	}
	return false
}

// sync copies the controller's state into the list, keeping the selection on
// an existing row.
func (m *Model) sync() {
	m.snap = m.ctl.Snapshot()

	items := make([]list.Item, len(m.snap.Display))
	for i, t := range m.snap.Display {
		items[i] = todoItem{t}
	}
	// Filtering is off, so SetItems never returns a command.
	_ = m.list.SetItems(items)

	m.layout()
	if n := len(items); m.list.Index() >= n {
		m.list.Select(max(n-1, 0))
	}
}

// layout gives the list whatever height the header, status and help leave.
func (m *Model) layout() {
	h := m.height
	if h <= 0 {
		h = defaultHeight
	}
	h -= lipgloss.Height(m.header()) + lipgloss.Height(m.status()) + lipgloss.Height(m.help.View(m.keys))
	m.list.SetSize(m.width, max(h, 1))
}

func (m Model) header() string {
	search := ""
	if m.searching || m.search.Value() != "" {
		search = m.search.View()
	}
	return titleStyle.Render("Todos") + "\n" + search
}

// View implements tea.Model.
func (m Model) View() string {
	if m.detail != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Todo"),
			"",
			m.detail.String(),
			"",
			mutedStyle.Render("esc back"),
		)
	}

	body := m.list.View()
	if len(m.snap.Display) == 0 {
		body = lipgloss.NewStyle().Height(m.list.Height()).Render(mutedStyle.Render(m.empty()))
	}

	return strings.Join([]string{
		m.header(),
		body,
		m.status(),
		m.help.View(m.keys),
	}, "\n")
}

func (m Model) empty() string {
	switch {
	case m.snap.Query != "":
		return "no matches"
	case m.snap.State == controller.LoadingFresh:
		return "loading..."
	default:
		return "nothing to show"
	}
}
