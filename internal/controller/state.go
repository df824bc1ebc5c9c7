// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package controller

// State is the lifecycle state of the list.
type State int

const (
	Idle State = iota
	LoadingFresh
	Ready
	LoadingMore
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingFresh:
		return "loading"
	case Ready:
		return "ready"
	case LoadingMore:
		return "loading more"
	default:
		return "unknown"
	}
}

// PrefetchDistance is how many rows before the end of the list a load-more is
// requested.
const PrefetchDistance = 5

// AtThreshold reports whether showing row (zero based) of a list of count rows
// should trigger a load-more.
func AtThreshold(row, count int) bool {
	return row == count-PrefetchDistance
}
