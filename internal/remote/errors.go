// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by a fetch wraps exactly one of these so
// callers can tell them apart with errors.Is, or ignore the difference.
var (
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	ErrTransport       = errors.New("transport failure")
	ErrDecode          = errors.New("decode failure")
)

// FetchError describes a failed collection fetch.
type FetchError struct {
	Collection string
	URL        string
	Kind       error
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s (%s): %v", e.Collection, e.URL, e.Kind)
	}
	return fmt.Sprintf("fetch %s (%s): %v: %v", e.Collection, e.URL, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Friendly renders err as a single line suitable for the terminal.
func Friendly(err error) string {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return err.Error()
	}

	switch {
	case errors.Is(err, ErrInvalidEndpoint):
		return fmt.Sprintf("the %s endpoint %q is not a valid http(s) URL", fe.Collection, fe.URL)
	case errors.Is(err, ErrDecode):
		return fmt.Sprintf("the %s endpoint did not return a JSON array", fe.Collection)
	default:
		return fmt.Sprintf("unable to reach the %s endpoint: %v", fe.Collection, fe.Err)
	}
}
