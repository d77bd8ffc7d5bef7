// Package bootstrap initializes process-wide infrastructure before the bot starts.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	coreconfig "github.com/m3rciful/counterbot/core/config"
	"github.com/m3rciful/counterbot/core/counter"
	"github.com/m3rciful/counterbot/core/logger"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit    func(*coreconfig.Config) error
	NewInstanceID func() string
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	// Counter is the single in-memory counter shared by all handlers.
	Counter *counter.Store
	// InstanceID identifies this process in logs.
	InstanceID string
}

// Run initializes the logger, issues the instance id and creates the counter.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	newID := opts.NewInstanceID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	res := &Result{
		Counter:    counter.New(),
		InstanceID: newID(),
	}

	logger.Counter.Info("counter ready",
		slog.String("event", "init"),
		slog.String("instance", res.InstanceID),
		slog.Uint64("value", res.Counter.Value()),
	)
	return res, nil
}
