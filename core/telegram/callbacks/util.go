// Package callbacks decodes inline button callback data.
package callbacks

import (
	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData splits callback data into key and payload.
// Telebot has already decoded "\f<unique>|<payload>" into Unique and Data when
// a unique endpoint matched. Anything else is a plain button whose data is the
// key verbatim: no trimming, no envelope decoding.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	return cb.Data, ""
}
