// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

// PageSize is the number of todos added to the display window per page.
const PageSize = 20

// Todo is a single todo item. Every wire field is optional. UserName is never
// sent by the API; it is filled in by Join.
type Todo struct {
	ID        *int    `json:"id,omitempty"`
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	UserID    *int    `json:"userId,omitempty"`
	UserName  *string `json:"userName,omitempty"`
}

// User is the subset of the remote user record needed for the join.
type User struct {
	ID   *int    `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

// IDOr returns the todo id or def when absent.
func (t Todo) IDOr(def int) int {
	if t.ID == nil {
		return def
	}
	return *t.ID
}

// TitleOr returns the title or def when absent.
func (t Todo) TitleOr(def string) string {
	if t.Title == nil {
		return def
	}
	return *t.Title
}

// UserIDOr returns the owning user id or def when absent.
func (t Todo) UserIDOr(def int) int {
	if t.UserID == nil {
		return def
	}
	return *t.UserID
}

// UserNameOr returns the joined user name or def when absent.
func (t Todo) UserNameOr(def string) string {
	if t.UserName == nil {
		return def
	}
	return *t.UserName
}

// IsCompleted treats an absent flag as not completed.
func (t Todo) IsCompleted() bool {
	return t.Completed != nil && *t.Completed
}

// IDOr returns the user id or def when absent.
func (u User) IDOr(def int) int {
	if u.ID == nil {
		return def
	}
	return *u.ID
}

// NameOr returns the user name or def when absent.
func (u User) NameOr(def string) string {
	if u.Name == nil {
		return def
	}
	return *u.Name
}

// Ptr returns a pointer to v. Handy for building records in tests and fakes.
func Ptr[T any](v T) *T {
	return &v
}
