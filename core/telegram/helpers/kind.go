package helpers

import (
	coreconfig "github.com/m3rciful/counterbot/core/config"

	tele "gopkg.in/telebot.v4"
)

// KindOther marks updates the bot does not route anywhere.
const KindOther = "other"

// KindOf classifies an update by shape. Each update maps to exactly one kind;
// messages without text (photos, stickers, service messages) are "other".
func KindOf(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return coreconfig.UpdateCallback
	case upd.Message != nil && upd.Message.Text != "":
		return coreconfig.UpdateMessage
	case upd.Query != nil:
		return coreconfig.UpdateInlineQuery
	}
	return KindOther
}
