// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package deck

import "github.com/staranto/deckctl/internal/schema"

// Deck describes a deck held by the API.
type Deck struct {
	DeckID    string `json:"deck_id"`
	Shuffled  bool   `json:"shuffled"`
	Remaining int    `json:"remaining"`
}

// Card is a single drawn card. Suit and Code are left as the API spells them.
type Card struct {
	Image string `json:"image"`
	Value string `json:"value"`
	Suit  string `json:"suit"`
	Code  string `json:"code"`
}

// DrawnCards is the result of a draw.
type DrawnCards struct {
	Cards     []Card `json:"cards"`
	DeckID    string `json:"deck_id"`
	Remaining int    `json:"remaining"`
}

var (
	DeckSchema = schema.Obj(
		schema.F("deck_id", schema.Str()),
		schema.F("shuffled", schema.Boolean()),
		schema.F("remaining", schema.Int()),
	)

	CardSchema = schema.Obj(
		schema.F("image", schema.Str()),
		schema.F("value", schema.Str()),
		schema.F("suit", schema.Str()),
		schema.F("code", schema.Str()),
	)

	DrawnCardsSchema = schema.Obj(
		schema.F("cards", schema.ArrayOf(CardSchema)),
		schema.F("deck_id", schema.Str()),
		schema.F("remaining", schema.Int()),
	)
)
