// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/todoctl/internal/async"
	"github.com/staranto/todoctl/internal/model"
)

// Collection names, used in errors and logs.
const (
	CollectionTodos = "todos"
	CollectionUsers = "users"
)

// Default endpoints.
const (
	DefaultTodosURL = "https://jsonplaceholder.typicode.com/todos"
	DefaultUsersURL = "https://jsonplaceholder.typicode.com/users"
)

// Endpoints are the two read-only collection URLs.
type Endpoints struct {
	Todos string
	Users string
}

// DefaultEndpoints returns the public jsonplaceholder endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{Todos: DefaultTodosURL, Users: DefaultUsersURL}
}

// Client fetches the todo and user collections. It holds no state between
// calls and is safe for concurrent use.
type Client struct {
	endpoints Endpoints
	http      *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. The default is http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New returns a Client for the given endpoints.
func New(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints,
		http:      http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchUsers starts a fetch of the user collection.
func (c *Client) FetchUsers(ctx context.Context) *async.Future[[]model.User] {
	return async.Go(ctx, func(ctx context.Context) ([]model.User, error) {
		return fetchArray[model.User](ctx, c.http, CollectionUsers, c.endpoints.Users)
	})
}

// FetchTodos starts a fetch of the todo collection.
func (c *Client) FetchTodos(ctx context.Context) *async.Future[[]model.Todo] {
	return async.Go(ctx, func(ctx context.Context) ([]model.Todo, error) {
		return fetchArray[model.Todo](ctx, c.http, CollectionTodos, c.endpoints.Todos)
	})
}

// fetchArray GETs rawURL and decodes a JSON array of T, element by element.
func fetchArray[T any](ctx context.Context, hc *http.Client, collection, rawURL string) ([]T, error) {
	doc, err := hitter(ctx, hc, collection, rawURL)
	if err != nil {
		log.WithError(err).Debugf("fetch %s failed", collection)
		return nil, err
	}

	decodeErr := func(err error) error {
		return &FetchError{Collection: collection, URL: rawURL, Kind: ErrDecode, Err: err}
	}

	body := doc.Bytes()
	if !gjson.ValidBytes(body) {
		return nil, decodeErr(errors.New("malformed JSON"))
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, decodeErr(fmt.Errorf("expected an array, got %s", root.Type))
	}

	elements := root.Array()
	items := make([]T, 0, len(elements))
	for i, el := range elements {
		if !el.IsObject() {
			return nil, decodeErr(fmt.Errorf("element %d: expected an object, got %s", i, el.Type))
		}
		var item T
		if err := json.Unmarshal([]byte(el.Raw), &item); err != nil {
			return nil, decodeErr(fmt.Errorf("element %d: %w", i, err))
		}
		items = append(items, item)
	}

	log.Debugf("decoded %d %s", len(items), collection)
	return items, nil
}
