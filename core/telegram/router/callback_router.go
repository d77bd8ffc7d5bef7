package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/counterbot/core/logger"
	tg "github.com/m3rciful/counterbot/core/telegram"
	"github.com/m3rciful/counterbot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute returns a handler that routes callbacks through the registry.
// Callbacks without data are ignored: nothing is sent, edited or answered.
// Unknown keys go to the registry's not-found handler, or are ignored without one.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		key, _ := callbacks.ParseCallbackData(cb)
		if key == "" {
			logSkip(c, "callback.unknown", start, "no_data")
			return nil
		}
		safeKey := logger.SanitizeLimit(key, 64)
		name := "callback." + normalizeHandlerName(safeKey)
		extras := []slog.Attr{slog.String("cb_key", safeKey)}

		var cbHandler tele.HandlerFunc
		if reg != nil {
			cbHandler, _ = reg.GetCallback(key)
		}
		if cbHandler == nil {
			var fallback tele.HandlerFunc
			if reg != nil {
				fallback = reg.CallbackNotFound()
			}
			if fallback == nil {
				logSkip(c, name, start, "not_found", extras...)
				return nil
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, func() error {
				return fallback(c)
			}, extras...)
		}

		return handleWithSummary(c, name, start, func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}
