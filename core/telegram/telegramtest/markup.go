package telegramtest

import "encoding/json"

// Button is an inline keyboard button as it appears on the wire.
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// InlineKeyboard decodes the reply_markup parameter of a call.
// It returns nil when the call carries no inline keyboard.
func (c Call) InlineKeyboard() [][]Button {
	raw := c.Params["reply_markup"]
	if raw == "" {
		return nil
	}
	var markup struct {
		InlineKeyboard [][]Button `json:"inline_keyboard"`
	}
	if err := json.Unmarshal([]byte(raw), &markup); err != nil {
		return nil
	}
	return markup.InlineKeyboard
}
