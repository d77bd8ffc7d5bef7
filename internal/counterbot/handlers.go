package counterbot

import (
	"log/slog"

	"github.com/m3rciful/counterbot/core/counter"
	"github.com/m3rciful/counterbot/core/logger"
	tghelpers "github.com/m3rciful/counterbot/core/telegram/helpers"
	"github.com/m3rciful/counterbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// Where the pressed button lives.
const (
	originMessage = "message"
	originInline  = "inline"
	originNone    = "none"
)

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendText(c, a.registry.HelpText(helpHeader))
}

func (a *App) handleStart(c tele.Context) error {
	a.counter.Reset()
	logger.LogEvent(tghelpers.BuildContext(c), logger.Counter, slog.LevelInfo, "counter.reset",
		slog.String("status", "ok"),
	)
	return tghelpers.SendText(c, counter.Format(0), Keyboard())
}

// handleAdd increments the counter and rewrites the pressed message with the
// new value. The increment stands even when the edit fails.
func (a *App) handleAdd(c tele.Context) error {
	cb := c.Callback()
	value := a.counter.IncrementAndGet()
	text := counter.Format(value)

	origin := originNone
	var err error
	switch {
	case cb.Message != nil:
		origin = originMessage
		err = tghelpers.EditText(c, text, Keyboard())
	case cb.MessageID != "":
		origin = originInline
		err = tghelpers.EditText(c, text, Keyboard())
	}

	logger.LogEvent(tghelpers.BuildContext(c), logger.Counter, slog.LevelInfo, "counter.increment",
		slog.String("status", logger.Status(err)),
		slog.Uint64("value", value),
		slog.String("origin", origin),
	)

	// Stops the client's loading indicator; the edit already carries the result.
	_ = c.Respond()
	return err
}

func (a *App) handleInlineQuery(c tele.Context) error {
	text := counter.Format(a.counter.Value())
	result := ui.NewArticleResult("counter", "Counter "+text, text, Keyboard())
	return c.Answer(&tele.QueryResponse{
		Results:    tele.Results{result},
		CacheTime:  1,
		IsPersonal: true,
	})
}

func (a *App) handleUnknownText(c tele.Context) error {
	return tghelpers.SendText(c, commandNotFound)
}
