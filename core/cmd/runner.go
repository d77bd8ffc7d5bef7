// Package cmd is the shared process entry: load config, bootstrap, run until signalled.
package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m3rciful/counterbot/core/bootstrap"
	coreconfig "github.com/m3rciful/counterbot/core/config"
	"github.com/m3rciful/counterbot/core/logger"
	coretelegram "github.com/m3rciful/counterbot/core/telegram"
)

// DefaultConfigEnvVar names the variable holding the config file path.
const DefaultConfigEnvVar = "CONFIG_PATH"

// App is a bot ready to be bound to the Telegram runtime.
type App interface {
	TelegramRunOptions() (coretelegram.RunOptions, error)
}

// Options describe how to build and run one bot process.
// Only NewApp is required; the other hooks default to the core implementations.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string

	NewApp func(cfg *coreconfig.Config, infra *bootstrap.Result) (App, error)

	LoadConfig     func(path string) (*coreconfig.Config, error)
	Bootstrap      func(bootstrap.Options) (*bootstrap.Result, error)
	ShutdownLogger func() error
	RunTelegram    func(ctx context.Context, opts coretelegram.RunOptions) error

	// Context is the parent of the signal context.
	Context context.Context
}

func (o *Options) setDefaults() {
	if o.ConfigEnvVar == "" {
		o.ConfigEnvVar = DefaultConfigEnvVar
	}
	if o.LoadConfig == nil {
		o.LoadConfig = coreconfig.Load
	}
	if o.Bootstrap == nil {
		o.Bootstrap = bootstrap.Run
	}
	if o.ShutdownLogger == nil {
		o.ShutdownLogger = logger.Shutdown
	}
	if o.RunTelegram == nil {
		o.RunTelegram = coretelegram.RunTelegram
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
}

// Run loads configuration, bootstraps shared infrastructure, builds the app
// and serves updates until SIGINT or SIGTERM.
func Run(opts Options) error {
	if opts.NewApp == nil {
		return fmt.Errorf("cmd: NewApp is required")
	}
	opts.setDefaults()
	startedAt := time.Now()

	path := os.Getenv(opts.ConfigEnvVar)
	if path == "" {
		path = opts.DefaultConfigPath
	}
	// The structured logger needs the config, so this goes to the std logger.
	log.Printf("loading config: %q (missing file means environment only)", path)
	cfg, err := opts.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}

	infra, err := opts.Bootstrap(bootstrap.Options{Config: cfg})
	if err != nil {
		return fmt.Errorf("cmd: bootstrap failed: %w", err)
	}
	defer func() {
		if err := opts.ShutdownLogger(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	app, err := opts.NewApp(cfg, infra)
	if err != nil {
		return fmt.Errorf("cmd: app init failed: %w", err)
	}
	runOpts, err := app.TelegramRunOptions()
	if err != nil {
		return fmt.Errorf("cmd: telegram options build failed: %w", err)
	}
	attachLifecycle(&runOpts, infra, startedAt)

	ctx, cancel := signal.NotifyContext(opts.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return opts.RunTelegram(ctx, runOpts)
}

// attachLifecycle wraps the app's hooks with the process ready and shutdown lines.
func attachLifecycle(runOpts *coretelegram.RunOptions, infra *bootstrap.Result, startedAt time.Time) {
	appLog := logger.L.With("component", "app", "instance", infra.InstanceID)

	onStart := runOpts.OnStart
	runOpts.OnStart = func(ctx context.Context, rt coretelegram.Runtime) error {
		if onStart != nil {
			if err := onStart(ctx, rt); err != nil {
				return err
			}
		}
		appLog.Info("app ready",
			slog.String("event", "ready"),
			slog.String("bot", rt.Bot.Me.Username),
			slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
		)
		return nil
	}

	onStop := runOpts.OnStop
	runOpts.OnStop = func(ctx context.Context, rt coretelegram.Runtime) error {
		appLog.Info("shutting down...",
			slog.String("event", "shutdown"),
			slog.Uint64("value", infra.Counter.Value()),
			slog.Uint64("handled", rt.Tracker.Handled()),
			slog.Uint64("failures", rt.Tracker.Failures()),
		)
		if onStop != nil {
			return onStop(ctx, rt)
		}
		return nil
	}
}
