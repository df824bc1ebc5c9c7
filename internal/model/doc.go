// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package model holds the todo and user records decoded from the remote API and
// the pure list operations (join, pagination window, search) applied to them.
package model
