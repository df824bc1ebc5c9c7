// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package connectivity watches network reachability and reports transitions.
package connectivity
