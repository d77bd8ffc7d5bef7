package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/counterbot/core/logger"
	tg "github.com/m3rciful/counterbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextRoutes builds the single text route: every text message is parsed as a
// command and dispatched through the registry, so commands are never bound
// as separate telebot endpoints. Other text goes to the registry's text fallback.
func TextRoutes(reg *tg.Registry) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				}, slog.String("command", key))
			}
		}

		var fallback tele.HandlerFunc
		if reg != nil {
			fallback = reg.TextFallback()
		}
		if fallback != nil {
			return handleWithSummary(c, "unknown_command", start, func() error {
				return fallback(c)
			})
		}

		logSkip(c, "unknown_command", start, "no_fallback")
		return nil
	}

	if reg != nil {
		logger.TWire.Info("tg.wire",
			slog.String("event", "complete"),
			slog.Int("commands", len(reg.Commands())),
			slog.Int("callbacks", len(reg.ListCallbacks())),
		)
	}

	return []tg.Route{{Endpoint: tele.OnText, Handler: handler}}
}
