// Package telegram assembles a telebot bot from a registry, routes and
// middleware, and runs it until its context is cancelled.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	coreconfig "github.com/m3rciful/counterbot/core/config"
	"github.com/m3rciful/counterbot/core/logger"
	"github.com/m3rciful/counterbot/core/telegram/dispatch"

	tele "gopkg.in/telebot.v4"
)

// Middleware describes a global bot middleware to be registered via bot.Use.
type Middleware struct {
	Name string
	Use  func(next tele.HandlerFunc) tele.HandlerFunc
}

// Route declares a single bot handler bound to an arbitrary endpoint.
// Endpoint values are passed directly to tele.Bot.Handle.
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// RunOptions controls the behaviour of Build and RunTelegram.
type RunOptions struct {
	Config   *coreconfig.Config
	Registry *Registry
	Tracker  *dispatch.Tracker

	Middlewares []Middleware
	Routes      []Route

	// Client overrides the retrying HTTP client.
	Client *http.Client
	// Offline skips getMe and every startup API call.
	Offline bool
	// Synchronous runs handlers on the update loop goroutine instead of one
	// goroutine per update.
	Synchronous bool

	DisableWebhookCleanup bool
	DisableCommandMenu    bool

	OnStart func(ctx context.Context, rt Runtime) error
	OnStop  func(ctx context.Context, rt Runtime) error
}

// Runtime exposes runtime components to lifecycle hooks.
type Runtime struct {
	Bot      *tele.Bot
	Registry *Registry
	Tracker  *dispatch.Tracker
}

// Build creates the bot and binds middleware and routes without starting it.
// The tracker is installed as the outermost middleware and as the error sink.
func Build(opts RunOptions) (Runtime, error) {
	if opts.Config == nil {
		return Runtime{}, fmt.Errorf("telegram: nil config provided")
	}
	cfg := opts.Config
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}
	tracker := opts.Tracker
	if tracker == nil {
		tracker = dispatch.NewTracker()
	}
	client := opts.Client
	if client == nil {
		client = BuildHTTPClient(HTTPClientOptions{
			LongPollTimeout: longPollTimeout(cfg.Telegram.LongPollTimeoutSeconds),
		})
	}

	poller := BuildPoller(PollerOptions{
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		InlineMode:             cfg.Telegram.InlineMode,
		Webhook: WebhookOptions{
			Listen: cfg.Webhook.Listen,
			Port:   cfg.Webhook.Port,
			URL:    cfg.Webhook.URL,
		},
	})

	bot, err := tele.NewBot(tele.Settings{
		URL:         cfg.Telegram.APIURL,
		Token:       cfg.Telegram.Token,
		Poller:      poller,
		Client:      client,
		Offline:     opts.Offline,
		Synchronous: opts.Synchronous,
		OnError:     tracker.OnError,
	})
	if err != nil {
		return Runtime{}, fmt.Errorf("telegram: bot initialization failed: %w", redactErr(err))
	}

	bot.Use(tracker.Middleware)
	for _, mw := range opts.Middlewares {
		if mw.Use == nil {
			continue
		}
		bot.Use(mw.Use)
	}
	for _, route := range opts.Routes {
		if route.Endpoint == nil || route.Handler == nil {
			continue
		}
		bot.Handle(route.Endpoint, route.Handler)
	}

	return Runtime{Bot: bot, Registry: reg, Tracker: tracker}, nil
}

// RunTelegram composes and runs a Telegram bot until the provided context is done.
// On shutdown it stops polling, then waits for in-flight handlers for at most
// telegram.drain_timeout_seconds.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	buildStart := time.Now()
	rt, err := Build(opts)
	if err != nil {
		return err
	}
	buildTook := time.Since(buildStart)
	cfg := opts.Config
	bot := rt.Bot

	switch p := bot.Poller.(type) {
	case *tele.Webhook:
		logger.TG.LogAttrs(ctx, slog.LevelInfo, "webhook mode",
			slog.String("event", "mode"),
			slog.String("mode", "webhook"),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	case *tele.LongPoller:
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.String("mode", "polling"),
			slog.Int("timeout_seconds", int(p.Timeout/time.Second)),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
		if !opts.Offline && !opts.DisableWebhookCleanup {
			removeWebhook(bot)
		}
	}

	if !opts.Offline && !opts.DisableCommandMenu {
		InitBotCommands(bot, rt.Registry)
	}

	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, rt); err != nil {
			return err
		}
	}

	runDone := make(chan struct{})
	go func() {
		bot.Start()
		close(runDone)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		bot.Stop()
		<-runDone
		runErr = ctx.Err()
	case <-runDone:
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout(cfg))
	defer cancel()
	_ = rt.Tracker.Drain(drainCtx)

	if opts.OnStop != nil {
		if err := opts.OnStop(drainCtx, rt); err != nil {
			return err
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func drainTimeout(cfg *coreconfig.Config) time.Duration {
	secs := cfg.Telegram.DrainTimeoutSeconds
	if secs <= 0 {
		secs = coreconfig.DefaultDrainTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// removeWebhook clears a webhook left from an earlier deployment; Telegram
// refuses getUpdates while one is set.
func removeWebhook(bot *tele.Bot) {
	if err := bot.RemoveWebhook(false); err != nil {
		logger.TG.Warn("failed to delete webhook",
			slog.String("event", "delete_webhook"),
			slog.String("mode", "polling"),
			slog.String("err", dispatch.SanitizeError(err)),
		)
		return
	}
	logger.TG.Info("webhook deleted",
		slog.String("event", "delete_webhook"),
		slog.String("mode", "polling"),
	)
}

// redactErr strips the token from errors that embed the request URL.
func redactErr(err error) error {
	return errors.New(dispatch.SanitizeError(err))
}
