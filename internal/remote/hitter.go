// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package remote

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/apex/log"
	"github.com/google/uuid"
)

// requestIDHeader carries a per-request id so server logs can be matched to
// ours.
const requestIDHeader = "X-Request-Id"

// hitter issues a single GET for collection against rawURL and returns the
// body. Every failure comes back as a *FetchError of kind ErrInvalidEndpoint or
// ErrTransport.
func hitter(ctx context.Context, client *http.Client, collection, rawURL string) (bytes.Buffer, error) {
	fail := func(kind, err error) (bytes.Buffer, error) {
		return bytes.Buffer{}, &FetchError{Collection: collection, URL: rawURL, Kind: kind, Err: err}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fail(ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fail(ErrInvalidEndpoint, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fail(ErrInvalidEndpoint, err)
	}

	id := uuid.NewString()
	req.Header.Set(requestIDHeader, id)
	req.Header.Set("Accept", "application/json")

	entry := log.WithFields(log.Fields{"collection": collection, "request_id": id})
	entry.Debugf("GET %s", u)

	resp, err := client.Do(req)
	if err != nil {
		return fail(ErrTransport, err)
	}
	defer resp.Body.Close()

	entry.Debugf("status %d", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(ErrTransport, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return fail(ErrTransport, fmt.Errorf("failed to read response: %w", err))
	}

	return doc, nil
}
