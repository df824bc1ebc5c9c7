// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/meta"
)

const bashCompletionScript = `# bash completion for todoctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_todoctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "tq uq show browse completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr --schema"
    local endpoints="--todos-url --users-url"
    local tuning="--delay --discard-stale --no-discard-stale"

    case "$cmd" in
        tq)
            local opts="$common $endpoints $tuning --pages -p --search -q --all"
            ;;
        uq)
            local opts="$common $endpoints"
            ;;
        show)
            local opts="--color -c --no-color --tldr $endpoints $tuning"
            ;;
        browse)
            local opts="--tldr $endpoints $tuning --probe --interval --offline --alt-screen --no-alt-screen"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
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

complete -F _todoctl todoctl
`

const zshCompletionScript = `#compdef todoctl

_todoctl() {
  local -a cmds
  cmds=(
    'tq:todo query'
    'uq:user query'
    'show:show the details of one todo'
    'browse:interactive todo browser'
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
  '--tldr[show tldr page]'
  '--schema[dump schema]'
  )

  local -a endpoints
  endpoints=(
  '--todos-url[todos collection URL]:url'
  '--users-url[users collection URL]:url'
  )

  local -a tuning
  tuning=(
  '--delay[simulated latency per page]:duration'
  '--discard-stale[drop superseded results]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'todoctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    tq)
      _arguments -C \
        $common $endpoints $tuning \
        '(-p --pages)'{-p,--pages}'[additional pages]:pages' \
        '(-q --search)'{-q,--search}'[search text]:text' \
        '--all[emit the full set]'
      ;;
    uq)
      _arguments -C $common $endpoints
      ;;
    show)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '--tldr[show tldr page]' \
        $endpoints $tuning \
        '1:todo ID'
      ;;
    browse)
      _arguments -C \
        '--tldr[show tldr page]' \
        $endpoints $tuning \
        '--probe[connectivity probe URL]:url' \
        '--interval[probe interval]:duration' \
        '--offline[start offline]' \
        '--alt-screen[use the alternate screen]'
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
compdef _todoctl todoctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: todoctl completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "todoctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
