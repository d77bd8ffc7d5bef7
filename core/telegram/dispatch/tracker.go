// Package dispatch tracks update handler tasks: it counts the ones in flight so
// shutdown can drain them, and reports the errors they return.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/counterbot/core/logger"
	tghelpers "github.com/m3rciful/counterbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Tracker follows every update handler invocation. Telebot runs each update in
// its own goroutine; Tracker adds no queueing or backpressure on top of that.
type Tracker struct {
	wg       sync.WaitGroup
	inFlight atomic.Int64
	handled  atomic.Uint64
	failures atomic.Uint64
}

// NewTracker returns an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Middleware registers the wrapped handler as in flight until it returns.
func (t *Tracker) Middleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		t.wg.Add(1)
		t.inFlight.Add(1)
		defer func() {
			t.inFlight.Add(-1)
			t.handled.Add(1)
			t.wg.Done()
		}()
		return next(c)
	}
}

// OnError reports a handler error and lets the update loop continue.
// It is meant for tele.Settings.OnError.
func (t *Tracker) OnError(err error, c tele.Context) {
	if err == nil {
		return
	}
	t.failures.Add(1)

	ctx := context.Background()
	if c != nil {
		ctx = tghelpers.BuildContext(c)
	}
	logger.LogEvent(ctx, logger.TG, slog.LevelError, "update.fail",
		slog.String("status", "fail"),
		slog.String("err", SanitizeError(err)),
		slog.String("error_kind", ClassifyError(err)),
	)
}

// InFlight returns the number of handlers currently running.
func (t *Tracker) InFlight() int64 {
	return t.inFlight.Load()
}

// Handled returns the number of handler invocations that finished.
func (t *Tracker) Handled() uint64 {
	return t.handled.Load()
}

// Failures returns the number of errors reported through OnError.
func (t *Tracker) Failures() uint64 {
	return t.failures.Load()
}

// Drain waits until in-flight handlers finish or ctx is done.
// Call it only after the bot has stopped polling. Telebot starts each handler
// goroutine before this middleware registers it, so an update dispatched right
// before Stop may register after Drain has already seen zero and is not waited
// for. Draining is best effort.
func (t *Tracker) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	start := time.Now()
	select {
	case <-done:
		logger.TG.Info("handlers drained",
			slog.String("event", "drain"),
			slog.String("status", "ok"),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
			slog.Uint64("failures", t.Failures()),
		)
		return nil
	case <-ctx.Done():
		logger.TG.Warn("drain interrupted",
			slog.String("event", "drain"),
			slog.String("status", "cancelled"),
			slog.Int64("in_flight", t.InFlight()),
		)
		return ctx.Err()
	}
}
