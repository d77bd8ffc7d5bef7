// Package commands describes bot commands and parses command text.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler and menu description.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
}
