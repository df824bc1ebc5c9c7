// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/todoctl/internal/model"
)

// Collection names a cache slot.
type Collection string

// The only two collections the cache holds.
const (
	Todos Collection = "cachedTodos"
	Users Collection = "cachedUsers"
)

// ErrUnknownCollection is returned for any collection other than Todos or Users.
var ErrUnknownCollection = errors.New("unknown cache collection")

// Enabled returns true unless TODOCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("TODOCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Store is the in-memory result cache. The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	enabled bool
	slots   map[Collection]any
}

// New returns an empty Store. Whether it caches at all is decided once, here,
// from Enabled.
func New() *Store {
	s := &Store{
		enabled: Enabled(),
		slots:   make(map[Collection]any, 2),
	}
	if !s.enabled {
		log.Debug("result cache disabled")
	}
	return s
}

func validate(c Collection) error {
	if c != Todos && c != Users {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	return nil
}

// Put replaces the whole slot for c. items must be []model.Todo for Todos and
// []model.User for Users.
func (s *Store) Put(c Collection, items any) error {
	if err := validate(c); err != nil {
		return err
	}

	var stored any
	switch v := items.(type) {
	case []model.Todo:
		if c != Todos {
			return fmt.Errorf("cannot store %T in %s", items, c)
		}
		stored = clone(v)
	case []model.User:
		if c != Users {
			return fmt.Errorf("cannot store %T in %s", items, c)
		}
		stored = clone(v)
	default:
		return fmt.Errorf("cannot store %T in %s", items, c)
	}

	if !s.enabled {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[c] = stored
	log.Debugf("cache put %s", c)
	return nil
}

// Get returns a copy of the slot for c. The second return value is false when
// the slot was never populated, was evicted, or the cache is disabled.
func (s *Store) Get(c Collection) (any, bool) {
	if validate(c) != nil || !s.enabled {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	switch v := s.slots[c].(type) {
	case []model.Todo:
		return clone(v), true
	case []model.User:
		return clone(v), true
	default:
		return nil, false
	}
}

// PutTodos stores the joined todo collection.
func (s *Store) PutTodos(todos []model.Todo) {
	if err := s.Put(Todos, todos); err != nil {
		log.WithError(err).Warn("failed to cache todos")
	}
}

// PutUsers stores the user collection.
func (s *Store) PutUsers(users []model.User) {
	if err := s.Put(Users, users); err != nil {
		log.WithError(err).Warn("failed to cache users")
	}
}

// Todos returns the cached todos, if any.
func (s *Store) Todos() ([]model.Todo, bool) {
	v, ok := s.Get(Todos)
	if !ok {
		return nil, false
	}
	todos, ok := v.([]model.Todo)
	return todos, ok
}

// Users returns the cached users, if any.
func (s *Store) Users() ([]model.User, bool) {
	v, ok := s.Get(Users)
	if !ok {
		return nil, false
	}
	users, ok := v.([]model.User)
	return users, ok
}

// Evict drops a single slot, as the runtime would under memory pressure.
func (s *Store) Evict(c Collection) error {
	if err := validate(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, c)
	log.Debugf("cache evicted %s", c)
	return nil
}

// Purge drops every slot.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = make(map[Collection]any, 2)
	log.Debug("cache purged")
}

func clone[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
