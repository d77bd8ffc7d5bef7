package counterbot

import (
	"github.com/m3rciful/counterbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// AddKey is both the label and the raw callback data of the increment button.
const AddKey = "Add"

// Keyboard returns a fresh single-button keyboard for a counter message.
func Keyboard() *tele.ReplyMarkup {
	return keyboard.InlineRow(keyboard.InlineBtn{Text: AddKey, Data: AddKey})
}
