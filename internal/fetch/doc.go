// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package fetch performs a single logical GET with a bounded number of retries.
// Rate limit rejections wait a constant cooldown, every other failure waits
// according to an escalating schedule.
package fetch
