package bootstrap

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	coreconfig "github.com/m3rciful/counterbot/core/config"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunRequiresConfig(t *testing.T) {
	if _, err := Run(Options{LoggerInit: noLogger}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunIssuesInstanceAndCounter(t *testing.T) {
	res, err := Run(Options{Config: &coreconfig.Config{}, LoggerInit: noLogger})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := uuid.Parse(res.InstanceID); err != nil {
		t.Fatalf("instance id %q: %v", res.InstanceID, err)
	}
	if res.Counter == nil || res.Counter.Value() != 0 {
		t.Fatal("counter should start at zero")
	}

	other, err := Run(Options{Config: &coreconfig.Config{}, LoggerInit: noLogger})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if other.InstanceID == res.InstanceID {
		t.Fatal("instance ids must differ")
	}
	res.Counter.IncrementAndGet()
	if other.Counter.Value() != 0 {
		t.Fatal("counters must be independent")
	}
}

func TestRunLoggerFailure(t *testing.T) {
	want := errors.New("no log dir")
	_, err := Run(Options{
		Config:        &coreconfig.Config{},
		LoggerInit:    func(*coreconfig.Config) error { return want },
		NewInstanceID: func() string { return "fixed" },
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v", err)
	}
}
