package counterbot

import (
	"fmt"

	coretelegram "github.com/m3rciful/counterbot/core/telegram"
	"github.com/m3rciful/counterbot/core/telegram/commands"
)

const (
	// CommandHelp lists the supported commands.
	CommandHelp = "/help"
	// CommandStart resets the counter and posts a fresh counter message.
	CommandStart = "/start"

	helpHeader      = "These commands are supported:"
	commandNotFound = "Command not found!"
)

func (a *App) registerHandlers(reg *coretelegram.Registry) error {
	table := []struct {
		name string
		cmd  commands.Command
	}{
		{CommandHelp, commands.Command{
			Handler:     a.handleHelp,
			Description: "Click the Add button and start counting, it's that simple.",
		}},
		{CommandStart, commands.Command{
			Handler:     a.handleStart,
			Description: "Start & Restart the counter.",
		}},
	}
	for _, entry := range table {
		if err := reg.RegisterCommand(entry.name, entry.cmd); err != nil {
			return fmt.Errorf("counterbot: %w", err)
		}
	}
	if err := reg.RegisterCallback(AddKey, a.handleAdd); err != nil {
		return fmt.Errorf("counterbot: %w", err)
	}
	return nil
}
