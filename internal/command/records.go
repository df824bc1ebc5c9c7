// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import "github.com/staranto/todoctl/internal/model"

// TodoRecord is the JSON:API shape of a joined todo. It is what --attrs,
// --filter, --sort and --schema see.
type TodoRecord struct {
	ID        int    `jsonapi:"primary,todos"`
	Title     string `jsonapi:"attr,title"`
	Completed bool   `jsonapi:"attr,completed"`
	UserID    int    `jsonapi:"attr,userId"`
	UserName  string `jsonapi:"attr,userName,omitempty"`
}

// UserRecord is the JSON:API shape of a user.
type UserRecord struct {
	ID   int    `jsonapi:"primary,users"`
	Name string `jsonapi:"attr,name"`
}

// todoRecords converts todos, keeping order. Absent fields become zero values
// and an absent user name is omitted from the document.
func todoRecords(todos []model.Todo) []*TodoRecord {
	out := make([]*TodoRecord, 0, len(todos))
	for _, t := range todos {
		out = append(out, &TodoRecord{
			ID:        t.IDOr(0),
			Title:     t.TitleOr(""),
			Completed: t.IsCompleted(),
			UserID:    t.UserIDOr(0),
			UserName:  t.UserNameOr(""),
		})
	}
	return out
}

func userRecords(users []model.User) []*UserRecord {
	out := make([]*UserRecord, 0, len(users))
	for _, u := range users {
		out = append(out, &UserRecord{ID: u.IDOr(0), Name: u.NameOr("")})
	}
	return out
}
