// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package async provides a single-resolution future used to hand results of
// background work back to their owner.
package async

import (
	"context"
	"sync"
)

// Result is the resolved outcome of a Future. Exactly one of Value or Err is
// meaningful: Err != nil means failure.
type Result[T any] struct {
	Value T
	Err   error
}

// Future resolves exactly once. Later resolve attempts are ignored.
type Future[T any] struct {
	once   sync.Once
	done   chan struct{}
	result Result[T]
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Go runs fn on a new goroutine and returns a Future for its outcome.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		v, err := fn(ctx)
		f.resolve(Result[T]{Value: v, Err: err})
	}()
	return f
}

// Resolved returns a Future that is already resolved with v and err.
func Resolved[T any](v T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(Result[T]{Value: v, Err: err})
	return f
}

func (f *Future[T]) resolve(r Result[T]) {
	f.once.Do(func() {
		f.result = r
		close(f.done)
	})
}

// Done is closed once the Future has resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future resolves or ctx is done. A ctx error does not
// resolve the Future; the underlying work keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result.Value, f.result.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
