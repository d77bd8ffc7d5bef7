package router

import (
	tg "github.com/m3rciful/counterbot/core/telegram"
	"github.com/m3rciful/counterbot/core/telegram/ui"
)

// Bind installs the fallbacks into the registry and returns the text and
// callback routes. A nil provider leaves unknown updates unanswered.
func Bind(reg *tg.Registry, fb ui.FallbackProvider) []tg.Route {
	if reg == nil {
		reg = tg.NewRegistry()
	}
	if fb != nil {
		reg.SetTextFallback(fb.UnknownText())
		reg.SetCallbackNotFound(fb.UnknownCallback())
	}
	return append(TextRoutes(reg), CallbackRoute(reg))
}
