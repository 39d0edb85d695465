// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/deckctl/internal/deck"
	"github.com/staranto/deckctl/internal/meta"
)

// Rows are the drawn cards; deck_id and remaining are only in raw output.
var cardAttrs = []string{"code", "value", "suit", "!image"}

func DrawCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &DeckActionRunner[deck.DrawnCards]{
		CommandName:  "draw",
		Parent:       "cards",
		DefaultAttrs: cardAttrs,
		Call: func(ctx context.Context, cmd *cli.Command, c *deck.Client, hook deck.Hook) *deck.DrawnCards {
			return c.Draw(ctx, cmd.String("deck"), cmd.Int("count"), hook)
		},
	}
	return runner.Run(ctx, cmd)
}

func DrawCommandBuilder(m meta.Meta) *cli.Command {
	b := &DeckCommandBuilder{
		Name:      "draw",
		Usage:     "draw cards from a deck",
		UsageText: "deckctl draw --deck ID [--count N] [options]",
		Flags: []cli.Flag{
			newDeckFlag(),
			newCountFlag("draw", m.Config.Source, "number of cards to draw", 1),
		},
		Action: DrawCommandAction,
		Meta:   m,
	}
	return b.Build()
}
