package main

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// completionCommands and completionFlags drive the generated scripts.
var (
	completionCommands = []string{"build", "doctor", "completion", "version", "help"}
	completionFlags    = []string{
		"--config", "--output", "--workers", "--max-publications",
		"--provider", "--model", "--quiet", "--verbose",
	}
)

// runCompletion writes a completion script for the requested shell.
func runCompletion(args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: specify bash or zsh", ErrUnsupportedShell)
	}
	switch args[0] {
	case "bash":
		return writeBashCompletion(w)
	case "zsh":
		return writeZshCompletion(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh)", ErrUnsupportedShell, args[0])
	}
}

func writeBashCompletion(w io.Writer) error {
	_, err := fmt.Fprintf(w, `# bash completion for bindery
_bindery() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    case "$prev" in
        --config|-c) COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- "$cur") ); return ;;
        --output|-o) COMPREPLY=( $(compgen -d -- "$cur") ); return ;;
        --provider) COMPREPLY=( $(compgen -W "placeholder gemini" -- "$cur") ); return ;;
        completion) COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") ); return ;;
    esac
    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "%s" -- "$cur") )
    else
        COMPREPLY=( $(compgen -W "%s" -- "$cur") )
    fi
}
complete -F _bindery bindery
`, join(completionFlags), join(completionCommands))
	return err
}

func writeZshCompletion(w io.Writer) error {
	_, err := fmt.Fprintf(w, `#compdef bindery
_bindery() {
    local -a commands flags
    commands=(%s)
    flags=(%s)
    if (( CURRENT == 2 )); then
        _describe 'command' commands
    else
        _values 'flags' $flags
    fi
}
_bindery "$@"
`, join(completionCommands), join(completionFlags))
	return err
}

func join(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += " "
		}
		out += item
	}
	return out
}
