// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/deckctl/internal/deck"
	"github.com/staranto/deckctl/internal/meta"
)

var deckAttrs = []string{"deck_id", "shuffled", "remaining"}

// NewCommandAction asks for a new deck, shuffled unless --unshuffled.
func NewCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &DeckActionRunner[deck.Deck]{
		CommandName:  "new",
		DefaultAttrs: deckAttrs,
		Call: func(ctx context.Context, cmd *cli.Command, c *deck.Client, hook deck.Hook) *deck.Deck {
			if cmd.Bool("unshuffled") {
				return c.NewDeck(ctx, hook)
			}
			return c.NewShuffledDeck(ctx, cmd.Int("count"), hook)
		},
	}
	return runner.Run(ctx, cmd)
}

func NewCommandBuilder(m meta.Meta) *cli.Command {
	b := &DeckCommandBuilder{
		Name:      "new",
		Usage:     "create a new deck",
		UsageText: "deckctl new [--count N] [--unshuffled] [options]",
		Flags: []cli.Flag{
			newCountFlag("new", m.Config.Source, "number of standard decks to combine", 1),
			&cli.BoolFlag{
				Name:        "unshuffled",
				Aliases:     []string{"u"},
				Usage:       "leave the deck in factory order (ignores --count)",
				HideDefault: true,
			},
		},
		Action: NewCommandAction,
		Meta:   m,
	}
	return b.Build()
}
