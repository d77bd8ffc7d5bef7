package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		cb           *tele.Callback
		key, payload string
	}{
		{nil, "", ""},
		{&tele.Callback{}, "", ""},
		{&tele.Callback{Data: "Add"}, "Add", ""},
		{&tele.Callback{Unique: "vote", Data: "7"}, "vote", "7"},
		// Plain data is never reinterpreted.
		{&tele.Callback{Data: "Add|7"}, "Add|7", ""},
		{&tele.Callback{Data: " Add "}, " Add ", ""},
		{&tele.Callback{Data: "\fAdd"}, "\fAdd", ""},
		{&tele.Callback{Data: "\fAdd|x"}, "\fAdd|x", ""},
	}
	for _, tc := range cases {
		key, payload := ParseCallbackData(tc.cb)
		if key != tc.key || payload != tc.payload {
			t.Errorf("ParseCallbackData(%+v) = %q, %q; want %q, %q", tc.cb, key, payload, tc.key, tc.payload)
		}
	}
}
