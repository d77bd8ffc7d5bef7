package counterbot

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/m3rciful/counterbot/core/telegram/telegramtest"
)

func TestStartSendsZeroWithKeyboard(t *testing.T) {
	h := newHarness(t, false)
	h.app.Counter().IncrementAndGet()

	h.sendText("/start")

	call := h.onlyCall("sendMessage")
	if call.Params["text"] != "0000" {
		t.Fatalf("text = %q", call.Params["text"])
	}
	if call.Params["chat_id"] != strconv.Itoa(chatID) {
		t.Fatalf("chat_id = %q", call.Params["chat_id"])
	}
	assertAddKeyboard(t, call)
	if got := h.app.Counter().Value(); got != 0 {
		t.Fatalf("counter = %d after start", got)
	}
}

func TestStartThenAddEditsMessage(t *testing.T) {
	h := newHarness(t, false)
	h.sendText("/start")
	h.onlyCall("sendMessage")

	h.press(h.nextID(), 77, "Add")

	edit := h.onlyCall("editMessageText")
	if edit.Params["text"] != "0001" {
		t.Fatalf("edit text = %q", edit.Params["text"])
	}
	if edit.Params["message_id"] != "77" || edit.Params["chat_id"] != strconv.Itoa(chatID) {
		t.Fatalf("edit target = %v", edit.Params)
	}
	assertAddKeyboard(t, edit)
	h.onlyCall("answerCallbackQuery")
}

func TestConcurrentAddsAreAtomic(t *testing.T) {
	const presses = 50
	h := newHarness(t, false)
	h.sendText("/start")

	var wg sync.WaitGroup
	for i := 0; i < presses; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.press(1000+i, 77, "Add")
		}(i)
	}
	wg.Wait()

	if got := h.app.Counter().Value(); got != presses {
		t.Fatalf("counter = %d, want %d", got, presses)
	}
	seen := make(map[string]bool)
	for _, call := range h.srv.Calls("editMessageText") {
		seen[call.Params["text"]] = true
	}
	for v := 1; v <= presses; v++ {
		if !seen[fmt.Sprintf("%04d", v)] {
			t.Fatalf("no edit rendered %04d", v)
		}
	}
}

func TestThreeConcurrentAddsFromZero(t *testing.T) {
	h := newHarness(t, false)
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.press(10+i, 5, "Add")
		}(i)
	}
	wg.Wait()
	if got := h.app.Counter().Value(); got != 3 {
		t.Fatalf("counter = %d, want 3", got)
	}
	if got := len(h.srv.Calls("editMessageText")); got != 3 {
		t.Fatalf("edits = %d, want 3", got)
	}
}

func TestHelpListsCommands(t *testing.T) {
	h := newHarness(t, false)
	h.sendText("/help")

	text := h.onlyCall("sendMessage").Params["text"]
	want := strings.Join([]string{
		"These commands are supported:",
		"/help — Click the Add button and start counting, it's that simple.",
		"/start — Start & Restart the counter.",
	}, "\n")
	if text != want {
		t.Fatalf("help =\n%s\nwant\n%s", text, want)
	}
}

func TestUnknownCommand(t *testing.T) {
	for _, text := range []string{"/unknown", "/start now", "hello", "/", " /start", "/start@"} {
		t.Run(text, func(t *testing.T) {
			h := newHarness(t, false)
			h.sendText(text)
			if got := h.onlyCall("sendMessage").Params["text"]; got != "Command not found!" {
				t.Fatalf("reply = %q", got)
			}
		})
	}
}

func TestCommandsAreCaseInsensitive(t *testing.T) {
	h := newHarness(t, false)
	h.sendText("/START@" + telegramtest.BotUsername)
	if got := h.onlyCall("sendMessage").Params["text"]; got != "0000" {
		t.Fatalf("reply = %q", got)
	}
}

func TestCallbackWithoutDataIsIgnored(t *testing.T) {
	h := newHarness(t, false)
	h.press(1, 77, "")
	if calls := h.srv.Calls(); len(calls) != 0 {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if got := h.app.Counter().Value(); got != 0 {
		t.Fatalf("counter = %d", got)
	}
}

func TestUnknownCallbackIsIgnored(t *testing.T) {
	h := newHarness(t, false)
	h.press(1, 77, "Remove")
	if calls := h.srv.Calls(); len(calls) != 0 {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if got := h.app.Counter().Value(); got != 0 {
		t.Fatalf("counter = %d", got)
	}
}

func TestAddRequiresExactData(t *testing.T) {
	for _, data := range []string{"Add|7", " Add ", "\fAdd", "\fAdd|x", "add", "ADD"} {
		t.Run(strconv.Quote(data), func(t *testing.T) {
			h := newHarness(t, false)
			h.press(1, 77, data)
			if calls := h.srv.Calls(); len(calls) != 0 {
				t.Fatalf("unexpected calls: %+v", calls)
			}
			if got := h.app.Counter().Value(); got != 0 {
				t.Fatalf("counter = %d", got)
			}
		})
	}
}

func TestAddEditsInlineMessage(t *testing.T) {
	h := newHarness(t, false)
	h.pressInline("inline-1", "Add")

	edit := h.onlyCall("editMessageText")
	if edit.Params["inline_message_id"] != "inline-1" || edit.Params["text"] != "0001" {
		t.Fatalf("edit = %v", edit.Params)
	}
	if _, ok := edit.Params["chat_id"]; ok {
		t.Fatalf("inline edit carries chat_id: %v", edit.Params)
	}
	if got := h.rt.Tracker.Failures(); got != 0 {
		t.Fatalf("true result reported as failure")
	}
}

func TestAddWithoutMessageOnlyIncrements(t *testing.T) {
	h := newHarness(t, false)
	h.pressInline("", "Add")
	if got := len(h.srv.Calls("editMessageText")); got != 0 {
		t.Fatalf("edits = %d", got)
	}
	h.onlyCall("answerCallbackQuery")
	if got := h.app.Counter().Value(); got != 1 {
		t.Fatalf("counter = %d", got)
	}
}

func TestEditFailureKeepsIncrement(t *testing.T) {
	h := newHarness(t, false)
	h.srv.Fail("editMessageText", telegramtest.Failure{Code: 400, Description: "Bad Request: message to edit not found", Times: 1})

	h.press(1, 77, "Add")
	if got := h.app.Counter().Value(); got != 1 {
		t.Fatalf("counter = %d after failed edit", got)
	}
	if got := h.rt.Tracker.Failures(); got != 1 {
		t.Fatalf("failures = %d", got)
	}

	h.press(2, 77, "Add")
	edits := h.srv.Calls("editMessageText")
	if len(edits) != 2 || edits[1].Params["text"] != "0002" {
		t.Fatalf("edits = %+v", edits)
	}
}

func TestSendFailureDoesNotStopDispatch(t *testing.T) {
	h := newHarness(t, false)
	h.srv.Fail("sendMessage", telegramtest.Failure{Code: 502, Description: "Bad Gateway", Times: 1})

	h.sendText("/start")
	h.sendText("/start")

	if got := h.rt.Tracker.Failures(); got != 1 {
		t.Fatalf("failures = %d", got)
	}
	if got := len(h.srv.Calls("sendMessage")); got != 2 {
		t.Fatalf("sends = %d", got)
	}
}

func TestInlineQueryAnswersCounter(t *testing.T) {
	h := newHarness(t, true)
	h.app.Counter().IncrementAndGet()
	h.app.Counter().IncrementAndGet()

	h.rt.Bot.ProcessUpdate(inlineQuery(1))

	results := h.onlyCall("answerInlineQuery").Params["results"]
	for _, want := range []string{`"message_text":"0002"`, `"callback_data":"Add"`} {
		if !strings.Contains(results, want) {
			t.Fatalf("results %s missing %s", results, want)
		}
	}
}

func TestInlineQueryIgnoredWhenDisabled(t *testing.T) {
	h := newHarness(t, false)
	h.rt.Bot.ProcessUpdate(inlineQuery(1))
	if calls := h.srv.Calls(); len(calls) != 0 {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}
