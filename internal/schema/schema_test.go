// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package schema

import (
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	card = Obj(
		F("image", Str()),
		F("value", Str()),
		F("suit", Str()),
		F("code", Str()),
	)
	deck = Obj(
		F("deck_id", Str()),
		F("shuffled", Boolean()),
		F("remaining", Int()),
	)
	drawn = Obj(
		F("cards", ArrayOf(card)),
		F("deck_id", Str()),
		F("remaining", Int()),
	)
)

type testDeck struct {
	DeckID    string `json:"deck_id"`
	Shuffled  bool   `json:"shuffled"`
	Remaining int    `json:"remaining"`
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		schema  Schema
		want    []string
	}{
		{
			name:    "valid deck",
			payload: `{"deck_id":"abc123","shuffled":true,"remaining":52}`,
			schema:  deck,
			want:    nil,
		},
		{
			name:    "extra members are allowed",
			payload: `{"success":true,"deck_id":"abc123","shuffled":false,"remaining":52}`,
			schema:  deck,
			want:    nil,
		},
		{
			name:    "missing field",
			payload: `{"shuffled":true,"remaining":52}`,
			schema:  deck,
			want:    []string{"deck_id"},
		},
		{
			name:    "number as string is not coerced",
			payload: `{"deck_id":"abc123","shuffled":true,"remaining":"52"}`,
			schema:  deck,
			want:    []string{"remaining"},
		},
		{
			name:    "fractional count",
			payload: `{"deck_id":"abc123","shuffled":true,"remaining":52.5}`,
			schema:  deck,
			want:    []string{"remaining"},
		},
		{
			name:    "integral value in exponent form",
			payload: `{"deck_id":"abc123","shuffled":true,"remaining":5.2e1}`,
			schema:  deck,
			want:    []string{"remaining"},
		},
		{
			name:    "negative integer",
			payload: `{"deck_id":"abc123","shuffled":true,"remaining":-1}`,
			schema:  deck,
			want:    nil,
		},
		{
			name:    "null is a mismatch",
			payload: `{"deck_id":null,"shuffled":true,"remaining":52}`,
			schema:  deck,
			want:    []string{"deck_id"},
		},
		{
			name:    "several mismatches keep schema order",
			payload: `{"deck_id":1,"shuffled":"yes"}`,
			schema:  deck,
			want:    []string{"deck_id", "shuffled", "remaining"},
		},
		{
			name: "nested array element",
			payload: `{"deck_id":"abc","remaining":50,"cards":[
				{"image":"i","value":"KING","suit":"HEARTS","code":"KH"},
				{"image":"i","value":"2","suit":7,"code":"2S"}]}`,
			schema: drawn,
			want:   []string{"cards.1.suit"},
		},
		{
			name:    "empty array matches",
			payload: `{"deck_id":"abc","remaining":0,"cards":[]}`,
			schema:  drawn,
			want:    nil,
		},
		{
			name:    "array where object expected",
			payload: `[1,2,3]`,
			schema:  deck,
			want:    []string{"."},
		},
		{
			name:    "not json",
			payload: `<html>rate limited</html>`,
			schema:  deck,
			want:    []string{"."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check([]byte(tt.payload), tt.schema)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Success(t *testing.T) {
	got, err := Decode[testDeck]([]byte(`{"deck_id":"abc123","shuffled":true,"remaining":52}`), deck, "Deck", nil)
	require.NoError(t, err)
	assert.Equal(t, testDeck{DeckID: "abc123", Shuffled: true, Remaining: 52}, got)
}

func TestDecode_FailureIsLogged(t *testing.T) {
	h := memory.New()
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}

	got, err := Decode[testDeck]([]byte(`{"deck_id":"abc123","shuffled":true,"remaining":"52"}`), deck, "Deck", logger)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, testDeck{}, got)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Deck", ve.Label)
	assert.Equal(t, []string{"remaining"}, ve.Paths)

	require.Len(t, h.Entries, 1)
	assert.Equal(t, log.ErrorLevel, h.Entries[0].Level)
	assert.Equal(t, []string{"remaining"}, h.Entries[0].Fields.Get("paths"))
	assert.Equal(t, "Deck", h.Entries[0].Fields.Get("type"))
}

func TestDecode_NarrowTarget(t *testing.T) {
	h := memory.New()
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}

	// A looser schema than the target type still cannot smuggle a fraction
	// into an int.
	loose := Obj(F("deck_id", Str()), F("shuffled", Boolean()), F("remaining", Num()))
	payload := []byte(`{"deck_id":"abc123","shuffled":true,"remaining":51.5}`)
	require.Empty(t, Check(payload, loose))

	_, err := Decode[testDeck](payload, loose, "Deck", logger)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"remaining"}, ve.Paths)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "boolean", Bool.String())
	assert.Equal(t, "integer", Integer.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
