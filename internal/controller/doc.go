// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package controller owns the browsable todo list: it decides between a live
// fetch and the cache on connectivity changes, joins and stores fresh results,
// paginates the joined set and applies search.
package controller
