// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/deckctl/internal/command"
	"github.com/staranto/deckctl/internal/config"
	mylog "github.com/staranto/deckctl/internal/log"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	args = expandArgSets(args, config.GetStringSlice)

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// expandArgSets replaces an @set argument with the args listed under
// <command>.<set> in the config file. Without an @set, <command>.defaults is
// used when present. Each list entry may hold several space separated args.
// Help requests and flag-only invocations are left alone.
func expandArgSets(args []string, lookup func(string) ([]string, error)) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return args
		}
	}

	out := make([]string, 0, len(args))
	out = append(out, args[:2]...)

	idx := 2
	set := "defaults"
	explicit := false
	for i, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			idx += i
			explicit = true
			break
		}
	}

	var rest []string
	if explicit {
		rest = append(rest, args[2:idx]...)
		rest = append(rest, args[idx+1:]...)
	} else {
		rest = args[2:]
	}

	// Set args go in front of the user's args so explicit flags win.
	setArgs, err := lookup(args[1] + "." + set)
	if err != nil && explicit {
		log.WithError(err).Warnf("arg set @%s not found", set)
	}
	for _, arg := range setArgs {
		out = append(out, strings.Fields(arg)...)
	}

	out = append(out, rest...)
	log.Debugf("set=%s, args=%v", set, out)
	return out
}
