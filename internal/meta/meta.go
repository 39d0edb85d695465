// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"io"
	"os"

	"github.com/staranto/deckctl/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Out receives rendered results, Err receives --dump payloads.
	Out io.Writer
	Err io.Writer
}

// Stdout is Out or os.Stdout.
func (m Meta) Stdout() io.Writer {
	if m.Out == nil {
		return os.Stdout
	}
	return m.Out
}

// Stderr is Err or os.Stderr.
func (m Meta) Stderr() io.Writer {
	if m.Err == nil {
		return os.Stderr
	}
	return m.Err
}
