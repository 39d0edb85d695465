// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/deckctl/internal/deck"
	"github.com/staranto/deckctl/internal/meta"
)

func ShuffleCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &DeckActionRunner[deck.Deck]{
		CommandName:  "shuffle",
		DefaultAttrs: deckAttrs,
		Call: func(ctx context.Context, cmd *cli.Command, c *deck.Client, hook deck.Hook) *deck.Deck {
			return c.Reshuffle(ctx, cmd.String("deck"), cmd.Bool("remaining"), hook)
		},
	}
	return runner.Run(ctx, cmd)
}

func ShuffleCommandBuilder(m meta.Meta) *cli.Command {
	b := &DeckCommandBuilder{
		Name:      "shuffle",
		Usage:     "shuffle an existing deck",
		UsageText: "deckctl shuffle --deck ID [--remaining] [options]",
		Flags: []cli.Flag{
			newDeckFlag(),
			&cli.BoolFlag{
				Name:        "remaining",
				Aliases:     []string{"r"},
				Usage:       "only shuffle the cards still in the deck",
				HideDefault: true,
			},
		},
		Action: ShuffleCommandAction,
		Meta:   m,
	}
	return b.Build()
}
