package helpers

import (
	"errors"

	tele "gopkg.in/telebot.v4"
)

// SendText sends raw text (no parse mode) to the current recipient,
// attaching markup when given. Transport errors are returned unchanged.
func SendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	if len(markup) > 0 && markup[0] != nil {
		return c.Send(text, markup[0])
	}
	return c.Send(text)
}

// EditText replaces the text of the message the update refers to.
// Inline message edits are acknowledged by Telegram with a bare true,
// which telebot reports as tele.ErrTrueResult; that counts as success.
func EditText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var err error
	if len(markup) > 0 && markup[0] != nil {
		err = c.Edit(text, markup[0])
	} else {
		err = c.Edit(text)
	}
	if IsTrueResult(err) {
		return nil
	}
	return err
}

// IsTrueResult reports whether err only signals a successful boolean API result.
func IsTrueResult(err error) bool {
	return errors.Is(err, tele.ErrTrueResult)
}
