// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandArgSets(t *testing.T) {
	sets := map[string][]string{
		"draw.defaults": {"--output json"},
		"draw.hand":     {"--count 5", "--sort suit"},
	}
	lookup := func(key string) ([]string, error) {
		if v, ok := sets[key]; ok {
			return v, nil
		}
		return nil, errors.New("no valid path found")
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults applied",
			args: []string{"deckctl", "draw", "--deck", "abc123"},
			want: []string{"deckctl", "draw", "--output", "json", "--deck", "abc123"},
		},
		{
			name: "named set replaces defaults",
			args: []string{"deckctl", "draw", "--deck", "abc123", "@hand", "-o", "yaml"},
			want: []string{"deckctl", "draw", "--count", "5", "--sort", "suit", "--deck", "abc123", "-o", "yaml"},
		},
		{
			name: "unknown set dropped",
			args: []string{"deckctl", "draw", "@nope"},
			want: []string{"deckctl", "draw"},
		},
		{
			name: "no defaults for command",
			args: []string{"deckctl", "new", "-o", "json"},
			want: []string{"deckctl", "new", "-o", "json"},
		},
		{
			name: "help untouched",
			args: []string{"deckctl", "draw", "--help"},
			want: []string{"deckctl", "draw", "--help"},
		},
		{
			name: "root flags untouched",
			args: []string{"deckctl", "--help"},
			want: []string{"deckctl", "--help"},
		},
		{
			name: "lone at sign is an argument",
			args: []string{"deckctl", "draw", "@"},
			want: []string{"deckctl", "draw", "--output", "json", "@"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandArgSets(tt.args, lookup))
		})
	}
}
