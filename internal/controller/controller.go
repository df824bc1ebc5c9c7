// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/staranto/todoctl/internal/async"
	"github.com/staranto/todoctl/internal/differ"
	"github.com/staranto/todoctl/internal/model"
)

// Source fetches the two remote collections. *remote.Client implements it.
type Source interface {
	FetchUsers(ctx context.Context) *async.Future[[]model.User]
	FetchTodos(ctx context.Context) *async.Future[[]model.Todo]
}

// Store is the result cache. *cache.Store implements it.
type Store interface {
	PutTodos([]model.Todo)
	PutUsers([]model.User)
	Todos() ([]model.Todo, bool)
	Users() ([]model.User, bool)
}

// DefaultLoadMoreDelay is the simulated latency of a load-more.
const DefaultLoadMoreDelay = time.Second

// Options tune a Controller. The zero value applies results unconditionally
// and loads more without delay; DefaultOptions is what the CLI uses.
type Options struct {
	// LoadMoreDelay is waited before the next page is appended.
	LoadMoreDelay time.Duration
	// DiscardStale drops fetch results superseded by a later connectivity
	// event and load-more results superseded by a window reset.
	DiscardStale bool
}

// DefaultOptions returns a one second load-more delay with stale results
// discarded.
func DefaultOptions() Options {
	return Options{LoadMoreDelay: DefaultLoadMoreDelay, DiscardStale: true}
}

// Snapshot is a consistent copy of the controller's observable state.
type Snapshot struct {
	State       State
	Display     []model.Todo
	Total       int
	Users       int
	Page        int
	Query       string
	LoadingMore bool
	Connected   bool
	LastRefresh time.Time
	LastChange  differ.Summary
	Err         error
}

// Controller is the list state machine. All fields below mu are guarded by it.
type Controller struct {
	source Source
	store  Store
	opts   Options

	now      func() time.Time
	schedule func(time.Duration, func())

	wg sync.WaitGroup

	mu          sync.Mutex
	state       State
	restore     State
	fresh       int
	all         []model.Todo
	display     []model.Todo
	users       []model.User
	page        int
	query       string
	loadingMore bool
	connected   bool
	fetchGen    uint64
	windowGen   uint64
	lastRefresh time.Time
	lastChange  differ.Summary
	err         error
	closed      bool
	subs        []func()
}

// New returns an Idle controller with an empty list.
func New(source Source, store Store, opts Options) *Controller {
	return &Controller{
		source: source,
		store:  store,
		opts:   opts,
		now:    time.Now,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		display: []model.Todo{},
	}
}

// Subscribe registers fn to be called after every observable change. fn runs
// without the controller lock held and may call back into the controller.
func (c *Controller) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// notify must be called without the lock held.
func (c *Controller) notify() {
	c.mu.Lock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// OnConnectivityChanged starts a live refresh when connected, otherwise
// restores the list from the cache.
func (c *Controller) OnConnectivityChanged(connected bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.connected = connected
	c.fetchGen++
	gen := c.fetchGen

	if !connected {
		c.loadFromCacheLocked()
		c.mu.Unlock()
		c.notify()
		return
	}

	if c.state != LoadingFresh {
		c.restore = c.state
		if c.restore == LoadingMore {
			c.restore = Ready
		}
	}
	c.state = LoadingFresh
	c.fresh++
	c.wg.Add(1)
	c.mu.Unlock()
	c.notify()

	log.WithField("generation", gen).Debug("refresh started")
	go c.refresh(gen)
}

func (c *Controller) loadFromCacheLocked() {
	todos, ok := c.store.Todos()
	if !ok {
		log.Debug("offline with nothing cached")
		return
	}
	if users, ok := c.store.Users(); ok {
		c.users = users
	}
	c.replaceLocked(todos)
	if c.fresh == 0 {
		c.state = Ready
	} else {
		c.restore = Ready
	}
	log.Debugf("restored %d todos from cache", len(todos))
}

// replaceLocked swaps in a new full set and resets pagination.
func (c *Controller) replaceLocked(todos []model.Todo) {
	c.all = todos
	c.page = 0
	c.windowGen++
	c.recomputeLocked()
}

func (c *Controller) recomputeLocked() {
	if c.query != "" {
		c.display = model.Search(c.all, c.query)
		return
	}
	c.display = model.Window(c.all, c.page, model.PageSize)
}

func (c *Controller) refresh(gen uint64) {
	defer c.wg.Done()

	// The controller never cancels a fetch.
	ctx := context.Background()

	users, err := c.source.FetchUsers(ctx).Await(ctx)
	if err != nil {
		c.settleFailure(gen, err)
		return
	}
	todos, err := c.source.FetchTodos(ctx).Await(ctx)
	if err != nil {
		c.settleFailure(gen, err)
		return
	}

	joined := model.Join(todos, users)

	c.mu.Lock()
	c.fresh--
	if c.staleFetchLocked(gen) {
		c.mu.Unlock()
		c.notify()
		return
	}

	previous, _ := c.store.Todos()
	summary, err := differ.Arrays(previous, joined)
	if err != nil {
		log.WithError(err).Debug("could not summarize refresh")
	}

	c.store.PutUsers(users)
	c.store.PutTodos(joined)

	c.users = users
	c.replaceLocked(joined)
	c.err = nil
	c.lastRefresh = c.now()
	c.lastChange = summary
	if c.fresh == 0 {
		c.state = Ready
	} else {
		c.restore = Ready
	}
	c.mu.Unlock()

	log.WithFields(log.Fields{
		"todos":   len(joined),
		"users":   len(users),
		"changes": summary.String(),
	}).Debug("refresh complete")
	c.notify()
}

// staleFetchLocked reports whether the fetch of generation gen has been
// superseded. When it has and no other fetch is running, the state is settled.
func (c *Controller) staleFetchLocked(gen uint64) bool {
	if !c.opts.DiscardStale || gen == c.fetchGen {
		return false
	}
	log.WithField("generation", gen).Debug("discarding stale refresh")
	if c.fresh == 0 && c.state == LoadingFresh {
		c.state = c.restore
	}
	return true
}

func (c *Controller) settleFailure(gen uint64, err error) {
	c.mu.Lock()
	c.fresh--
	if c.staleFetchLocked(gen) {
		c.mu.Unlock()
		c.notify()
		return
	}

	log.WithError(err).Warn("refresh failed, keeping the current list")
	c.err = err
	if c.fresh == 0 && c.state == LoadingFresh {
		c.state = c.restore
	}
	c.mu.Unlock()
	c.notify()
}

// OnApproachingEndOfList requests the next page. It is a no-op while anything
// is loading, while a search is active, or when the window already covers
// the full set.
func (c *Controller) OnApproachingEndOfList() {
	c.mu.Lock()
	if c.closed || c.loadingMore || c.query != "" || c.state != Ready ||
		(c.page+1)*model.PageSize >= len(c.all) {
		c.mu.Unlock()
		return
	}

	c.loadingMore = true
	c.state = LoadingMore
	gen := c.windowGen
	c.wg.Add(1)
	c.mu.Unlock()
	c.notify()

	c.schedule(c.opts.LoadMoreDelay, func() {
		defer c.wg.Done()
		c.finishLoadMore(gen)
	})
}

func (c *Controller) finishLoadMore(gen uint64) {
	c.mu.Lock()
	c.loadingMore = false
	if c.state == LoadingMore {
		c.state = Ready
	}

	if c.opts.DiscardStale && gen != c.windowGen {
		log.Debug("discarding stale page")
		c.mu.Unlock()
		c.notify()
		return
	}

	if next := (c.page + 1) * model.PageSize; next < len(c.all) {
		c.page++
		c.recomputeLocked()
		log.Debugf("loaded page %d", c.page)
	}
	c.mu.Unlock()
	c.notify()
}

// OnSearchTextChanged filters the full set. An empty text clears the search
// and returns to the first page.
func (c *Controller) OnSearchTextChanged(text string) {
	c.mu.Lock()
	c.query = text
	if text == "" {
		c.page = 0
		c.windowGen++
	}
	c.recomputeLocked()
	c.mu.Unlock()
	c.notify()
}

// CurrentDisplayList returns a copy of what should be shown.
func (c *Controller) CurrentDisplayList() []model.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Todo, len(c.display))
	copy(out, c.display)
	return out
}

// IsLoadingMore reports whether a load-more is in flight.
func (c *Controller) IsLoadingMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadingMore
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of everything observable at once.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	display := make([]model.Todo, len(c.display))
	copy(display, c.display)

	return Snapshot{
		State:       c.state,
		Display:     display,
		Total:       len(c.all),
		Users:       len(c.users),
		Page:        c.page,
		Query:       c.query,
		LoadingMore: c.loadingMore,
		Connected:   c.connected,
		LastRefresh: c.lastRefresh,
		LastChange:  c.lastChange,
		Err:         c.err,
	}
}

// All returns a copy of the full joined set.
func (c *Controller) All() []model.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Todo, len(c.all))
	copy(out, c.all)
	return out
}

// Wait blocks until every outstanding fetch and load-more has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close stops accepting connectivity and load-more events and waits for
// outstanding work.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.wg.Wait()
}
