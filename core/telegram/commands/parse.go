package commands

import (
	"errors"
	"strings"
	"unicode"
)

// Prefix is the marker Telegram clients put in front of a command name.
const Prefix = "/"

var (
	// ErrNotCommand is returned for text that does not start with the command prefix
	// or has an empty name.
	ErrNotCommand = errors.New("commands: not a command")
	// ErrArguments is returned when a command is followed by arguments.
	ErrArguments = errors.New("commands: arguments are not supported")
)

// Parse normalizes command text into its canonical key: "/Start@CounterBot" -> "/start".
// The text must begin with the prefix; trailing whitespace is ignored. The bot
// mention suffix is dropped and the name is lowercased. Commands take no
// arguments, so any trailing text is rejected. Parse is deterministic and never panics.
func Parse(text string) (string, error) {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	name, ok := strings.CutPrefix(text, Prefix)
	if !ok {
		return "", ErrNotCommand
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", ErrArguments
	}
	name, mention, hasMention := strings.Cut(name, "@")
	if name == "" || (hasMention && mention == "") {
		return "", ErrNotCommand
	}
	return Prefix + strings.ToLower(name), nil
}

// Normalize lowercases a registered command name and ensures the prefix.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(name, Prefix) {
		name = Prefix + name
	}
	return name
}
