// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
// no-cloc

package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/todoctl/internal/async"
	"github.com/staranto/todoctl/internal/cache"
	"github.com/staranto/todoctl/internal/connectivity"
	"github.com/staranto/todoctl/internal/controller"
	"github.com/staranto/todoctl/internal/model"
)

type fakeSource struct {
	todos []model.Todo
	users []model.User
	err   error
}

func (f *fakeSource) FetchUsers(context.Context) *async.Future[[]model.User] {
	return async.Resolved(f.users, f.err)
}

func (f *fakeSource) FetchTodos(context.Context) *async.Future[[]model.Todo] {
	return async.Resolved(f.todos, nil)
}

type pokes struct{ n int }

func (p *pokes) Poke() { p.n++ }

func makeTodos(n int) []model.Todo {
	out := make([]model.Todo, n)
	for i := range out {
		out[i] = model.Todo{
			ID:        model.Ptr(i + 1),
			Title:     model.Ptr(fmt.Sprintf("task %d", i+1)),
			Completed: model.Ptr(i%2 == 0),
			UserID:    model.Ptr(i%2 + 1),
		}
	}
	return out
}

func makeUsers() []model.User {
	return []model.User{
		{ID: model.Ptr(1), Name: model.Ptr("Ann")},
		{ID: model.Ptr(2), Name: model.Ptr("Bob")},
	}
}

func newTestModel(t *testing.T, src *fakeSource) (Model, *controller.Controller) {
	t.Helper()
	ctl := controller.New(src, cache.New(), controller.Options{DiscardStale: true})
	t.Cleanup(ctl.Close)
	m := New(ctl, nil, nil)
	m.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }
	return m, ctl
}

// step feeds msg to m and returns the new model and command.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// run executes cmd, waits for the controller and delivers the change.
func run(t *testing.T, m Model, ctl *controller.Controller, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	exec(cmd)
	ctl.Wait()
	return step(t, m, changedMsg{})
}

func exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			exec(c)
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, height int) (Model, *controller.Controller) {
	t.Helper()
	m, ctl := newTestModel(t, &fakeSource{todos: makeTodos(45), users: makeUsers()})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: height})

	ctl.OnConnectivityChanged(true)
	ctl.Wait()
	return m, ctl
}

func TestModel_ShowsFirstPageAndLoadsMoreWhenThresholdVisible(t *testing.T) {
	m, ctl := loaded(t, 30)

	m, cmd := step(t, m, changedMsg{})
	assert.Len(t, m.snap.Display, model.PageSize)
	assert.Contains(t, m.View(), "task 1")
	assert.Contains(t, m.View(), "Ann")

	m, cmd = run(t, m, ctl, cmd)
	assert.Len(t, m.snap.Display, 2*model.PageSize)
	assert.Nil(t, cmd, "threshold of the second page is off screen")
}

func TestModel_PagingRevealsThreshold(t *testing.T) {
	m, ctl := loaded(t, 10)

	m, cmd := step(t, m, changedMsg{})
	assert.Nil(t, cmd)

	per := m.list.Paginator.PerPage
	require.Less(t, per, 15, "threshold row starts off screen")
	want := 15 / per * per

	for i := 1; i < want; i++ {
		m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Nil(t, cmd, "row %d", m.list.Index())
	}
	m, cmd = step(t, m, keyRunes("j"))
	assert.Equal(t, want, m.list.Index())

	m, cmd = run(t, m, ctl, cmd)
	assert.Len(t, m.snap.Display, 40)
	assert.Len(t, m.list.Items(), 40)
	assert.Equal(t, want, m.list.Index())
	assert.Nil(t, cmd)
}

func TestModel_PageKeys(t *testing.T) {
	m, _ := loaded(t, 10)
	m, _ = step(t, m, changedMsg{})
	per := m.list.Paginator.PerPage

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 1, m.list.Paginator.Page)
	assert.Equal(t, per, m.list.Index())

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 0, m.list.Index())
}

func TestModel_NoRepeatRequestUntilChanged(t *testing.T) {
	m, _ := loaded(t, 30)

	m, cmd := step(t, m, changedMsg{})
	require.NotNil(t, cmd)

	_, cmd = step(t, m, keyRunes("j"))
	assert.Nil(t, cmd)
}

func TestModel_Search(t *testing.T) {
	m, ctl := loaded(t, 30)
	m, _ = step(t, m, changedMsg{})

	m, _ = step(t, m, keyRunes("/"))
	require.True(t, m.searching)

	m, cmd := step(t, m, keyRunes("bob"))
	assert.Equal(t, "bob", m.search.Value())

	m, cmd = run(t, m, ctl, cmd)
	assert.Nil(t, cmd, "no load more while searching")
	assert.Len(t, m.snap.Display, 22)
	assert.Contains(t, m.status(), `22 matches for "bob"`)

	m, cmd = step(t, m, keyRunes("q"))
	assert.Equal(t, "bobq", m.search.Value(), "q types while searching")
	m, _ = run(t, m, ctl, cmd)
	assert.Empty(t, m.snap.Display)
	assert.Contains(t, m.View(), "no matches")

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Equal(t, "", m.search.Value())
	m, _ = run(t, m, ctl, cmd)
	assert.Len(t, m.snap.Display, model.PageSize)
}

func TestModel_EnterKeepsQuery(t *testing.T) {
	m, ctl := loaded(t, 30)
	m, _ = step(t, m, changedMsg{})
	m, _ = step(t, m, keyRunes("/"))
	m, cmd := step(t, m, keyRunes("task 4"))
	m, _ = run(t, m, ctl, cmd)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "task 4", m.search.Value())
	assert.Len(t, m.snap.Display, 7)

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = run(t, m, ctl, cmd)
	assert.Equal(t, "", m.snap.Query)
}

func TestModel_Detail(t *testing.T) {
	m, _ := loaded(t, 30)
	m, _ = step(t, m, changedMsg{})

	m, _ = step(t, m, keyRunes("j"))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.detail)

	v := m.View()
	assert.Contains(t, v, "task 2")
	assert.Contains(t, v, "Assigned to: Bob")
	assert.Contains(t, v, "Status: Pending")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.detail)
}

func TestModel_EnterOnEmptyList(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.detail)
	assert.Contains(t, m.View(), "nothing to show")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{})

	_, cmd := step(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_CursorBounds(t *testing.T) {
	m, _ := loaded(t, 100)
	m, _ = step(t, m, changedMsg{})

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.list.Index())

	m, _ = step(t, m, keyRunes("G"))
	assert.Equal(t, model.PageSize-1, m.list.Index())

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, model.PageSize-1, m.list.Index())

	m, _ = step(t, m, keyRunes("g"))
	assert.Equal(t, 0, m.list.Index())
}

func TestModel_SelectionFollowsShrinkingList(t *testing.T) {
	m, ctl := loaded(t, 100)
	m, _ = step(t, m, changedMsg{})

	m, _ = step(t, m, keyRunes("G"))
	require.Equal(t, model.PageSize-1, m.list.Index())

	ctl.OnSearchTextChanged("task 4")
	m, _ = step(t, m, changedMsg{})

	assert.Len(t, m.list.Items(), 7)
	assert.Equal(t, 6, m.list.Index())
	assert.Equal(t, "task 45", m.list.SelectedItem().(todoItem).TitleOr(""))
}

func TestModel_ViewFitsTerminal(t *testing.T) {
	m, _ := loaded(t, 30)
	m, _ = step(t, m, changedMsg{})
	assert.Equal(t, 30, lipgloss.Height(m.View()))

	m, _ = step(t, m, keyRunes("?"))
	require.True(t, m.help.ShowAll)
	assert.Equal(t, 30, lipgloss.Height(m.View()))

	m, ctl := newTestModel(t, &fakeSource{err: errors.New("boom")})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	ctl.OnConnectivityChanged(true)
	ctl.Wait()
	m, _ = step(t, m, changedMsg{})
	require.Equal(t, 2, lipgloss.Height(m.status()))
	assert.Equal(t, 24, lipgloss.Height(m.View()))
}

func TestModel_OfflineToggle(t *testing.T) {
	ctl := controller.New(&fakeSource{}, cache.New(), controller.Options{})
	defer ctl.Close()

	sw := connectivity.NewSwitch(connectivity.ProberFunc(func(context.Context) bool { return true }))
	p := &pokes{}
	m := New(ctl, sw, nil)
	m.mon = p

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.True(t, sw.Offline())
	assert.Equal(t, 1, p.n)
	assert.Contains(t, m.status(), "offline (forced)")

	_, cmd := step(t, m, keyRunes("r"))
	assert.Nil(t, cmd, "no refresh while forced offline")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.False(t, sw.Offline())
	assert.Equal(t, 2, p.n)

	_, cmd = step(t, m, keyRunes("r"))
	assert.NotNil(t, cmd)
}

func TestModel_StatusBar(t *testing.T) {
	m, _ := loaded(t, 30)
	m, _ = step(t, m, changedMsg{})
	m.snap.LastRefresh = m.now().Add(-2 * time.Minute)

	s := m.status()
	assert.Contains(t, s, "online")
	assert.Contains(t, s, "ready")
	assert.Contains(t, s, "20 of 45 todos")
	assert.Contains(t, s, "2 users")
	assert.Contains(t, s, "refreshed 2 minutes ago")
	assert.Contains(t, s, "+45 -0 ~0")
}

func TestModel_StatusShowsError(t *testing.T) {
	m, ctl := newTestModel(t, &fakeSource{err: errors.New("boom")})
	ctl.OnConnectivityChanged(true)
	ctl.Wait()
	m, _ = step(t, m, changedMsg{})

	assert.Equal(t, controller.Idle, m.snap.State)
	assert.Contains(t, m.status(), "boom")
}

func TestVisibleThreshold(t *testing.T) {
	tests := []struct {
		name              string
		start, end, count int
		want              bool
	}{
		{"empty", 0, 10, 0, false},
		{"short list", 0, 10, 3, false},
		{"on screen", 0, 20, 20, true},
		{"below", 0, 10, 20, false},
		{"first row", 15, 20, 20, true},
		{"last row", 6, 16, 20, true},
		{"above", 16, 20, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, visibleThreshold(tt.start, tt.end, tt.count))
		})
	}
}

func TestRunRequiresCollaborators(t *testing.T) {
	err := Run(context.Background(), Config{})
	assert.Error(t, err)
}
