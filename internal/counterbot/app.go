// Package counterbot is the counter bot: one shared counter, a /start command
// that resets it and an Add button that increments it.
package counterbot

import (
	"fmt"

	"github.com/m3rciful/counterbot/core/bootstrap"
	coreconfig "github.com/m3rciful/counterbot/core/config"
	"github.com/m3rciful/counterbot/core/counter"
	coretelegram "github.com/m3rciful/counterbot/core/telegram"
	"github.com/m3rciful/counterbot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// App holds the counter and the command registry of one bot.
type App struct {
	cfg        *coreconfig.Config
	counter    *counter.Store
	instanceID string
	registry   *coretelegram.Registry
}

// New wires the counter from the bootstrap result into a fresh registry.
func New(cfg *coreconfig.Config, res *bootstrap.Result) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("counterbot: nil config provided")
	}
	if res == nil || res.Counter == nil {
		return nil, fmt.Errorf("counterbot: bootstrap result without counter")
	}
	a := &App{
		cfg:        cfg,
		counter:    res.Counter,
		instanceID: res.InstanceID,
		registry:   coretelegram.NewRegistry(),
	}
	if err := a.registerHandlers(a.registry); err != nil {
		return nil, err
	}
	return a, nil
}

// Counter exposes the shared counter.
func (a *App) Counter() *counter.Store {
	return a.counter
}

// Registry exposes the command and callback table.
func (a *App) Registry() *coretelegram.Registry {
	return a.registry
}

// UnknownText answers text that is not a known command.
func (a *App) UnknownText() tele.HandlerFunc {
	return a.handleUnknownText
}

// UnknownCallback returns nil: presses of unknown buttons are ignored.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return nil
}

// TelegramRunOptions binds the bot to the update dispatcher. Only text and
// callback updates are routed, plus inline queries when inline mode is on.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	routes := router.Bind(a.registry, a)
	if a.cfg.Telegram.InlineMode {
		routes = append(routes, router.InlineRoute(a.handleInlineQuery))
	}

	return coretelegram.RunOptions{
		Config:   a.cfg,
		Registry: a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, coretelegram.MiddlewareOptions{
			InstanceID: a.instanceID,
		}),
		Routes: routes,
	}, nil
}
