package counterbot

import (
	"testing"

	"github.com/m3rciful/counterbot/core/bootstrap"
	coreconfig "github.com/m3rciful/counterbot/core/config"
	"github.com/m3rciful/counterbot/core/counter"
	coretelegram "github.com/m3rciful/counterbot/core/telegram"
	"github.com/m3rciful/counterbot/core/telegram/telegramtest"

	tele "gopkg.in/telebot.v4"
)

const chatID = 42

type harness struct {
	t   *testing.T
	srv *telegramtest.Server
	app *App
	rt  coretelegram.Runtime
	ids int
}

func newHarness(t *testing.T, inline bool) *harness {
	t.Helper()
	srv := telegramtest.NewServer(t)
	cfg := &coreconfig.Config{Telegram: coreconfig.TelegramConfig{
		Token:      telegramtest.Token,
		RunMode:    coreconfig.RunModeLongpoll,
		APIURL:     srv.URL,
		InlineMode: inline,
	}}
	app, err := New(cfg, &bootstrap.Result{Counter: counter.New(), InstanceID: "test-instance"})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	opts, err := app.TelegramRunOptions()
	if err != nil {
		t.Fatalf("run options: %v", err)
	}
	opts.Offline = true
	opts.Synchronous = true
	rt, err := coretelegram.Build(opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	rt.Bot.Me.Username = telegramtest.BotUsername
	return &harness{t: t, srv: srv, app: app, rt: rt}
}

func (h *harness) nextID() int {
	h.ids++
	return h.ids
}

func (h *harness) sendText(text string) {
	id := h.nextID()
	h.rt.Bot.ProcessUpdate(tele.Update{ID: id, Message: &tele.Message{
		ID:     id,
		Text:   text,
		Sender: &tele.User{ID: chatID},
		Chat:   &tele.Chat{ID: chatID, Type: tele.ChatPrivate},
	}})
}

// press simulates a button press on the chat message with messageID.
func (h *harness) press(id, messageID int, data string) {
	h.rt.Bot.ProcessUpdate(tele.Update{ID: id, Callback: &tele.Callback{
		ID:     "cb",
		Data:   data,
		Sender: &tele.User{ID: chatID},
		Message: &tele.Message{
			ID:   messageID,
			Chat: &tele.Chat{ID: chatID, Type: tele.ChatPrivate},
		},
	}})
}

func (h *harness) pressInline(inlineID, data string) {
	h.rt.Bot.ProcessUpdate(tele.Update{ID: h.nextID(), Callback: &tele.Callback{
		ID:        "cb-inline",
		Data:      data,
		Sender:    &tele.User{ID: chatID},
		MessageID: inlineID,
	}})
}

func (h *harness) onlyCall(method string) telegramtest.Call {
	h.t.Helper()
	calls := h.srv.Calls(method)
	if len(calls) != 1 {
		h.t.Fatalf("%s calls = %d, want 1 (all calls: %+v)", method, len(calls), h.srv.Calls())
	}
	return calls[0]
}

func assertAddKeyboard(t *testing.T, call telegramtest.Call) {
	t.Helper()
	kb := call.InlineKeyboard()
	if len(kb) != 1 || len(kb[0]) != 1 {
		t.Fatalf("keyboard = %+v, want one row with one button", kb)
	}
	if kb[0][0].Text != "Add" || kb[0][0].CallbackData != "Add" {
		t.Fatalf("button = %+v", kb[0][0])
	}
}
