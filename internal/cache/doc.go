// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache keeps the most recent todo and user collections in memory for
// the life of the process. There is one slot per collection, no TTL and no
// automatic eviction.
package cache
