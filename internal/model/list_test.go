// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todo(id, userID int, title string) Todo {
	return Todo{ID: Ptr(id), UserID: Ptr(userID), Title: Ptr(title), Completed: Ptr(false)}
}

func user(id int, name string) User {
	return User{ID: Ptr(id), Name: Ptr(name)}
}

func numbered(n int) []Todo {
	all := make([]Todo, n)
	for i := range all {
		all[i] = todo(i+1, 1, fmt.Sprintf("item %d", i+1))
	}
	return all
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name  string
		todos []Todo
		users []User
		want  []string // "" means nil UserName
	}{
		{
			name:  "example",
			todos: []Todo{todo(1, 10, "Buy milk"), todo(2, 11, "Walk dog")},
			users: []User{user(10, "Ann"), user(11, "Bo")},
			want:  []string{"Ann", "Bo"},
		},
		{
			name:  "no matching user",
			todos: []Todo{todo(1, 99, "Orphan")},
			users: []User{user(10, "Ann")},
			want:  []string{""},
		},
		{
			name:  "first duplicate id wins",
			todos: []Todo{todo(1, 10, "Dup")},
			users: []User{user(10, "First"), user(10, "Second")},
			want:  []string{"First"},
		},
		{
			name:  "nil user id",
			todos: []Todo{{ID: Ptr(1), Title: Ptr("No owner")}},
			users: []User{user(10, "Ann")},
			want:  []string{""},
		},
		{
			name:  "user without name",
			todos: []Todo{todo(1, 10, "Nameless")},
			users: []User{{ID: Ptr(10)}, user(10, "Later")},
			want:  []string{""},
		},
		{
			name:  "no users",
			todos: []Todo{todo(1, 10, "Alone")},
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Join(tt.todos, tt.users)
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				if w == "" {
					assert.Nil(t, got[i].UserName, "at index %d", i)
					continue
				}
				require.NotNil(t, got[i].UserName, "at index %d", i)
				assert.Equal(t, w, *got[i].UserName)
				assert.Equal(t, tt.todos[i].ID, got[i].ID, "order preserved")
			}
		})
	}
}

func TestJoin_DoesNotMutateInput(t *testing.T) {
	todos := []Todo{todo(1, 10, "Buy milk")}
	_ = Join(todos, []User{user(10, "Ann")})
	assert.Nil(t, todos[0].UserName)
}

func TestWindow(t *testing.T) {
	all := numbered(45)

	tests := []struct {
		name    string
		page    int
		size    int
		wantLen int
	}{
		{name: "page zero", page: 0, size: PageSize, wantLen: 20},
		{name: "page one", page: 1, size: PageSize, wantLen: 40},
		{name: "clamped", page: 2, size: PageSize, wantLen: 45},
		{name: "far past the end", page: 9, size: PageSize, wantLen: 45},
		{name: "negative page", page: -1, size: PageSize, wantLen: 0},
		{name: "zero size", page: 0, size: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(all, tt.page, tt.size)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, all[:tt.wantLen], got, "window must be a prefix")
		})
	}
}

func TestWindow_IsACopy(t *testing.T) {
	all := numbered(3)
	w := Window(all, 0, PageSize)
	w[0].Title = Ptr("changed")
	assert.Equal(t, "item 1", all[0].TitleOr(""))
}

func TestSearch(t *testing.T) {
	joined := Join(
		[]Todo{todo(1, 10, "Buy milk"), todo(2, 11, "Walk dog"), todo(3, 10, "Bake BREAD")},
		[]User{user(10, "Ann"), user(11, "Bo")},
	)

	tests := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{name: "matches user name", query: "bo", wantIDs: []int{2}},
		{name: "matches title case-insensitively", query: "bread", wantIDs: []int{3}},
		{name: "matches either field", query: "A", wantIDs: []int{1, 2, 3}},
		{name: "no match", query: "zzz", wantIDs: []int{}},
		{name: "empty query", query: "", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(joined, tt.query)
			ids := make([]int, 0, len(got))
			for _, g := range got {
				ids = append(ids, g.IDOr(0))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearch_Unbounded(t *testing.T) {
	all := numbered(55)
	assert.Len(t, Search(all, "item"), 55)
}

func TestAccessors(t *testing.T) {
	var empty Todo
	assert.Equal(t, -1, empty.IDOr(-1))
	assert.Equal(t, "x", empty.TitleOr("x"))
	assert.Equal(t, 0, empty.UserIDOr(0))
	assert.Equal(t, "Unknown", empty.UserNameOr("Unknown"))
	assert.False(t, empty.IsCompleted())

	done := Todo{Completed: Ptr(true)}
	assert.True(t, done.IsCompleted())

	var u User
	assert.Equal(t, 7, u.IDOr(7))
	assert.Equal(t, "n/a", u.NameOr("n/a"))
}
