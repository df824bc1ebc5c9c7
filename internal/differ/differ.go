// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// Package differ summarizes what changed between two versions of a collection.
package differ

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
)

// Summary counts element level changes between two JSON arrays.
type Summary struct {
	Added    int
	Removed  int
	Modified int
}

// Changed reports whether anything differs.
func (s Summary) Changed() bool {
	return s.Added+s.Removed+s.Modified > 0
}

func (s Summary) String() string {
	if !s.Changed() {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d ~%d", s.Added, s.Removed, s.Modified)
}

// Arrays compares two slices by their JSON encoding, element by element.
func Arrays[T any](before, after []T) (Summary, error) {
	left, err := toGeneric(before)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to encode previous set: %w", err)
	}
	right, err := toGeneric(after)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to encode current set: %w", err)
	}

	diff := gojsondiff.New().CompareArrays(left, right)

	var s Summary
	for _, d := range diff.Deltas() {
		switch d.(type) {
		case *gojsondiff.Added:
			s.Added++
		case *gojsondiff.Deleted:
			s.Removed++
		case *gojsondiff.Moved:
			// Reordering alone is not a change of content.
		default:
			s.Modified++
		}
	}
	return s, nil
}

func toGeneric[T any](in []T) ([]interface{}, error) {
	if in == nil {
		return []interface{}{}, nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	var out []interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
