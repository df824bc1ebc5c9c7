// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import "strings"

// Join returns a copy of todos with UserName set from the first user, in fetch
// order, whose id matches the todo's userId. Todos without a match keep a nil
// UserName. Neither input is modified.
func Join(todos []Todo, users []User) []Todo {
	joined := make([]Todo, len(todos))
	copy(joined, todos)

	for i := range joined {
		joined[i].UserName = nil
		if joined[i].UserID == nil {
			continue
		}
		for _, u := range users {
			if u.ID != nil && *u.ID == *joined[i].UserID {
				if u.Name != nil {
					name := *u.Name
					joined[i].UserName = &name
				}
				break
			}
		}
	}

	return joined
}

// Window returns the first size*(page+1) todos, clamped to len(all). The
// result is a fresh slice so callers may append to it.
func Window(all []Todo, page, size int) []Todo {
	if page < 0 || size <= 0 {
		return []Todo{}
	}
	n := size * (page + 1)
	if n > len(all) {
		n = len(all)
	}
	window := make([]Todo, n)
	copy(window, all[:n])
	return window
}

// Search returns every todo whose title or user name contains query, ignoring
// case. Order is preserved and the result is not paginated. An empty query
// matches nothing; callers reset to a window instead.
func Search(all []Todo, query string) []Todo {
	matches := []Todo{}
	if query == "" {
		return matches
	}

	q := strings.ToLower(query)
	for _, t := range all {
		if t.Title != nil && strings.Contains(strings.ToLower(*t.Title), q) {
			matches = append(matches, t)
			continue
		}
		if t.UserName != nil && strings.Contains(strings.ToLower(*t.UserName), q) {
			matches = append(matches, t)
		}
	}

	return matches
}
