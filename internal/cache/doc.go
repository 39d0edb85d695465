// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides an in-memory, time based response cache keyed by
// request URL. Expired entries are swept lazily before every read; there is no
// background janitor and no capacity limit.
package cache
