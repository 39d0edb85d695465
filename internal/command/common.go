// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/deckctl/internal/attrs"
	"github.com/staranto/deckctl/internal/config"
	"github.com/staranto/deckctl/internal/deck"
	"github.com/staranto/deckctl/internal/meta"
	"github.com/staranto/deckctl/internal/output"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// OutputOptions collects the presentation flags of cmd.
func OutputOptions(cmd *cli.Command) output.Options {
	pad, _ := config.GetInt("padding", 0)
	return output.Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: pad,
	}
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewClient builds a deck.Client from the client flags of cmd.
func NewClient(cmd *cli.Command) *deck.Client {
	return deck.New(
		deck.WithBaseURL(cmd.String("base-url")),
		deck.WithTTL(cmd.Duration("ttl")),
		deck.WithTimeout(cmd.Duration("timeout")),
		deck.WithTestMode(cmd.Bool("test-mode")),
		deck.WithLogger(log.Log),
	)
}

// DumpHook returns a hook printing payloads to the meta's stderr when --dump
// is set, and nil otherwise.
func DumpHook(cmd *cli.Command, m meta.Meta) deck.Hook {
	if !cmd.Bool("dump") {
		return nil
	}
	return func(_ context.Context, payload []byte) error {
		return output.Dump(m.Stderr(), payload)
	}
}

// DeckCommandBuilder constructs a cli.Command for a deck subcommand using a
// consistent pattern. It wires metadata, applies the global and client flags,
// and sets up validators.
type DeckCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *DeckCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, b.Flags...)
	flags = append(flags, NewGlobalFlags(b.Name, b.Meta.Config.Source)...)
	flags = append(flags, NewClientFlags(b.Name, b.Meta.Config.Source)...)

	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: b.Action,
	}
}

// DeckActionRunner[T] is the action shared by every deck subcommand: build
// the client, make the call, render the result. Call returns nil on failure
// and has already logged why.
type DeckActionRunner[T any] struct {
	CommandName  string
	Parent       string
	DefaultAttrs []string
	Call         func(context.Context, *cli.Command, *deck.Client, deck.Hook) *T
}

// Run executes the action with the provided context and command.
func (r *DeckActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	al, err := BuildAttrs(cmd, r.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	result := r.Call(ctx, cmd, NewClient(cmd), DumpHook(cmd, m))
	if result == nil {
		return fmt.Errorf("%s failed, see log for details", r.CommandName)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	return output.SliceDiceSpit(raw, al, OutputOptions(cmd), r.Parent, m.Stdout())
}
