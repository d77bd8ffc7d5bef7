package telegram

import (
	"testing"

	"github.com/m3rciful/counterbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	if err := reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start & Restart the counter."}); err != nil {
		t.Fatalf("register start: %v", err)
	}
	if err := reg.RegisterCommand("/Help", commands.Command{Handler: noop, Description: "Show help."}); err != nil {
		t.Fatalf("register help: %v", err)
	}
	return reg
}

func TestRegisterCommandRejectsInvalid(t *testing.T) {
	reg := testRegistry(t)
	cases := map[string]commands.Command{
		"":       {Handler: noop, Description: "x"},
		"start2": {Handler: noop, Description: "no prefix"},
		"/nil":   {Description: "no handler"},
		"/nodsc": {Handler: noop},
		"/START": {Handler: noop, Description: "duplicate"},
		"/help":  {Handler: noop, Description: "duplicate of /Help"},
	}
	for name, cmd := range cases {
		if err := reg.RegisterCommand(name, cmd); err == nil {
			t.Errorf("RegisterCommand(%q) succeeded", name)
		}
	}
	if got := len(reg.Commands()); got != 2 {
		t.Fatalf("commands = %d, want 2", got)
	}
}

func TestLookupCommand(t *testing.T) {
	reg := testRegistry(t)
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"/start", "/start", true},
		{"/START", "/start", true},
		{"/Help@counter_bot", "/help", true},
		{"/h", "", false},
		{" /start", "", false},
		{"/start@", "", false},
		{"/start now", "", false},
		{"start", "", false},
		{"/unknown", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		key, cmd, ok := reg.LookupCommand(tc.text)
		if ok != tc.ok || key != tc.want {
			t.Errorf("LookupCommand(%q) = %q, %v; want %q, %v", tc.text, key, ok, tc.want, tc.ok)
		}
		if ok && cmd.Handler == nil {
			t.Errorf("LookupCommand(%q) returned nil handler", tc.text)
		}
	}
}

func TestHelpTextListsCommands(t *testing.T) {
	reg := testRegistry(t)
	got := reg.HelpText("These commands are supported:")
	want := "These commands are supported:\n/help — Show help.\n/start — Start & Restart the counter."
	if got != want {
		t.Fatalf("HelpText() =\n%s\nwant\n%s", got, want)
	}
}

func TestCallbacks(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("Add", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("Add", noop); err == nil {
		t.Fatal("duplicate callback accepted")
	}
	if err := reg.RegisterCallback("", noop); err == nil {
		t.Fatal("empty key accepted")
	}
	if _, ok := reg.GetCallback("Add"); !ok {
		t.Fatal("callback not found")
	}
	if _, ok := reg.GetCallback("add"); ok {
		t.Fatal("callback keys are case-sensitive")
	}
	if got := reg.ListCallbacks(); len(got) != 1 || got[0] != "Add" {
		t.Fatalf("ListCallbacks() = %v", got)
	}
	if reg.CallbackNotFound() != nil {
		t.Fatal("unknown callbacks should be ignored by default")
	}
}

func TestFallbacks(t *testing.T) {
	reg := NewRegistry()
	if reg.TextFallback() != nil {
		t.Fatal("no text fallback by default")
	}
	reg.SetTextFallback(noop)
	reg.SetCallbackNotFound(noop)
	if reg.TextFallback() == nil || reg.CallbackNotFound() == nil {
		t.Fatal("fallbacks not stored")
	}
	reg.SetCallbackNotFound(nil)
	if reg.CallbackNotFound() != nil {
		t.Fatal("nil fallback should clear the handler")
	}
}
