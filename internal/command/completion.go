// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/deckctl/internal/meta"
)

const bashCompletionScript = `# bash completion for deckctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_deckctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "new draw shuffle completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --base-url --dump --timeout --ttl"

    case "$cmd" in
        new)
            local opts="$common --count -n --unshuffled -u"
            ;;
        draw)
            local opts="$common --deck -d --count -n"
            ;;
        shuffle)
            local opts="$common --deck -d --remaining -r"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _deckctl deckctl
`

const zshCompletionScript = `#compdef deckctl

_deckctl() {
  local -a cmds
  cmds=(
    'new:create a new deck'
    'draw:draw cards from a deck'
    'shuffle:shuffle an existing deck'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--base-url[deck API root]:url'
  '--dump[print raw payloads]'
  '--timeout[per attempt time limit]:duration'
  '--ttl[cache lifetime]:duration'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'deckctl commands' cmds
    return
  fi

  case $words[2] in
    new)
      _arguments -C $common \
        '(-n --count)'{-n,--count}'[decks to combine]:count' \
        '(-u --unshuffled)'{-u,--unshuffled}'[factory order]'
      ;;
    draw)
      _arguments -C $common \
        '(-d --deck)'{-d,--deck}'[deck id]:deck' \
        '(-n --count)'{-n,--count}'[cards to draw]:count'
      ;;
    shuffle)
      _arguments -C $common \
        '(-d --deck)'{-d,--deck}'[deck id]:deck' \
        '(-r --remaining)'{-r,--remaining}'[only undrawn cards]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _deckctl deckctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(m.Stdout(), bashCompletionScript)
	case "zsh":
		fmt.Fprint(m.Stdout(), zshCompletionScript)
	default:
		return fmt.Errorf("usage: deckctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "deckctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": m,
		},
		Action: CompletionCommandAction,
	}
}
