// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package deck is a client for the Deck of Cards API (deckofcardsapi.com).
// Responses are cached for a short TTL, fetched with retry, and validated
// before they are returned. Operations never return an error; a nil result
// means the operation failed and the reason was logged.
package deck
