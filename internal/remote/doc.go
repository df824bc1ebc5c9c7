// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package remote fetches the todo and user collections from the REST API.
package remote
