// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/deckctl/internal/cache"
	"github.com/staranto/deckctl/internal/deck"
	"github.com/staranto/deckctl/internal/fetch"
)

// sources builds the value chain for a flag: env var, then <ns>.<key> and
// <key> in the config file when there is one.
func sources(ns string, cfgFile string, env string, key string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	if env != "" {
		chain.Chain = append(chain.Chain, cli.EnvVar(env))
	}
	if cfgFile != "" {
		if ns != "" {
			chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+key, altsrc.StringSourcer(cfgFile)))
		}
		chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(cfgFile)))
	}
	return chain
}

// NewGlobalFlags returns the presentation flags shared by every command. ns is
// the command name and config namespace.
func NewGlobalFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Sources: sources(ns, cfgFile, "", "attrs"),
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: sources(ns, cfgFile, "DECKCTL_COLOR", "color"),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: sources(ns, cfgFile, "DECKCTL_OUTPUT", "output"),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: sources(ns, cfgFile, "", "sort"),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: sources(ns, cfgFile, "DECKCTL_TITLES", "titles"),
			Value:   false,
		},
	}
}

// NewClientFlags returns the flags that shape the API client.
func NewClientFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "root URL of the deck API",
			Sources: sources(ns, cfgFile, "DECKCTL_BASE_URL", "base_url"),
			Value:   deck.DefaultBaseURL,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, URLValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "dump",
			Usage:       "print each raw API payload to stderr",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "test-mode",
			Usage:       "shorten every retry wait",
			Sources:     sources(ns, cfgFile, "DECKCTL_TEST_MODE", "test_mode"),
			Hidden:      true,
			HideDefault: true,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "time limit for each request attempt",
			Sources: sources(ns, cfgFile, "DECKCTL_TIMEOUT", "timeout"),
			Value:   fetch.DefaultTimeout,
			Validator: func(value time.Duration) error {
				return FlagValidators(value, PositiveDurationValidator)
			},
		},
		&cli.DurationFlag{
			Name:    "ttl",
			Usage:   "how long responses are reused",
			Sources: sources(ns, cfgFile, "DECKCTL_TTL", "ttl"),
			Value:   cache.DefaultTTL,
			Validator: func(value time.Duration) error {
				return FlagValidators(value, PositiveDurationValidator)
			},
		},
	}
}

func newDeckFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "deck",
		Aliases:  []string{"d"},
		Usage:    "id of the deck to use",
		Sources:  cli.NewValueSourceChain(cli.EnvVar("DECKCTL_DECK")),
		Required: true,
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, NonEmptyValidator)
		},
	}
}

func newCountFlag(ns string, cfgFile string, usage string, value int) *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "count",
		Aliases: []string{"n"},
		Usage:   usage,
		Sources: sources(ns, cfgFile, "", "count"),
		Value:   value,
		Validator: func(value int) error {
			return FlagValidators(value, PositiveIntValidator)
		},
	}
}
