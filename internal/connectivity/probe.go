// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package connectivity

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/apex/log"
)

// Prober answers a single "is the network reachable right now" question.
type Prober interface {
	Probe(ctx context.Context) bool
}

// ProberFunc adapts a plain function to Prober.
type ProberFunc func(ctx context.Context) bool

// Probe implements Prober.
func (f ProberFunc) Probe(ctx context.Context) bool {
	return f(ctx)
}

// HTTPProber considers the network reachable when a HEAD request to URL gets
// any HTTP response at all, whatever the status.
type HTTPProber struct {
	URL    string
	Client *http.Client
}

// Probe implements Prober.
func (p *HTTPProber) Probe(ctx context.Context) bool {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		log.WithError(err).Debugf("invalid probe url %q", p.URL)
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		log.WithError(err).Debug("probe failed")
		return false
	}
	resp.Body.Close()
	return true
}

// Switch wraps a Prober with a manual offline override. While forced offline
// the inner Prober is not consulted.
type Switch struct {
	inner   Prober
	offline atomic.Bool
}

// NewSwitch returns a Switch around inner, initially not forced.
func NewSwitch(inner Prober) *Switch {
	return &Switch{inner: inner}
}

// SetOffline forces (true) or releases (false) the offline override.
func (s *Switch) SetOffline(offline bool) {
	s.offline.Store(offline)
}

// Toggle flips the override and returns the new forced-offline value.
func (s *Switch) Toggle() bool {
	for {
		old := s.offline.Load()
		if s.offline.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Offline reports whether the override is active.
func (s *Switch) Offline() bool {
	return s.offline.Load()
}

// Probe implements Prober.
func (s *Switch) Probe(ctx context.Context) bool {
	if s.offline.Load() {
		return false
	}
	return s.inner.Probe(ctx)
}
