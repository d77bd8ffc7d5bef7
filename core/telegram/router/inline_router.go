package router

import (
	"time"

	tg "github.com/m3rciful/counterbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// InlineRoute binds an inline query handler with the usual summary logging.
func InlineRoute(h tele.HandlerFunc) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Query() == nil {
			return nil
		}
		return handleWithSummary(c, "inline_query", start, func() error {
			return h(c)
		})
	}
	return tg.Route{Endpoint: tele.OnQuery, Handler: handler}
}
