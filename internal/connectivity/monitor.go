// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
)

// DefaultInterval is how often the Monitor probes when no interval is given.
const DefaultInterval = 5 * time.Second

// Monitor polls a Prober and reports transitions. The callback runs on the
// Monitor's own goroutine, one call at a time, in the order the transitions
// were observed. Callers that own other state must hand the value over to it
// themselves.
type Monitor struct {
	prober   Prober
	interval time.Duration
	poke     chan struct{}

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New returns a Monitor. A non-positive interval selects DefaultInterval.
func New(prober Prober, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		prober:   prober,
		interval: interval,
		poke:     make(chan struct{}, 1),
	}
}

// Start begins monitoring. fn receives the initial state immediately after
// the first probe and then every change. Start on a running Monitor is a
// no-op.
func (m *Monitor) Start(ctx context.Context, fn func(connected bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.stopped = make(chan struct{})

	go m.loop(ctx, fn, m.stopped)
}

// Poke asks for an immediate probe. It never blocks.
func (m *Monitor) Poke() {
	select {
	case m.poke <- struct{}{}:
	default:
	}
}

// Stop ends monitoring and waits for the loop to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, stopped := m.cancel, m.stopped
	m.cancel, m.stopped = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

func (m *Monitor) loop(ctx context.Context, fn func(bool), stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var (
		known bool
		last  bool
	)

	check := func() {
		pctx, cancel := context.WithTimeout(ctx, m.interval)
		connected := m.prober.Probe(pctx)
		cancel()

		if ctx.Err() != nil {
			return
		}
		if known && connected == last {
			return
		}
		known, last = true, connected
		log.Debugf("connectivity: connected=%t", connected)
		fn(connected)
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		case <-m.poke:
			check()
		}
	}
}
