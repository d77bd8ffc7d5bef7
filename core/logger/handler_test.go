package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, format logFormat) (*slog.Logger, func() string) {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	handler := newStructuredHandler(handlerConfig{
		level:    slog.LevelDebug,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	read := func() string {
		if err := aw.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
		return strings.TrimSpace(buf.String())
	}
	return slog.New(handler), read
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	ctx := WithRID(context.Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	LogEvent(ctx, log.With("component", "app"), slog.LevelInfo, "test.event",
		slog.String("status", "OK"),
		slog.String("cause", "unit"),
	)

	tokens := strings.Split(read(), " ")
	expected := []string{"ts=", "level=INFO", "component=app", "event=test.event", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %v", tokens)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	log, read := newTestLogger(t, formatJSON)
	ctx := WithRID(context.Background(), "rid-json")
	ctx = WithInstance(ctx, "inst-1")

	LogEvent(ctx, log.With("component", "service.counter"), slog.LevelError, "counter.failed",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
	)

	line := read()
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"service.counter"`, `"event":"counter.failed"`, `"status":"fail"`, `"rid":"rid-json"`, `"instance":"inst-1"`, `"ts_unix_nano"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	rawRID := "123:456:789"
	for _, tc := range []struct {
		format   logFormat
		want     string
		wantFull bool
	}{
		{formatKV, "rid=" + CompactRID(rawRID), false},
		{formatJSON, `"rid":"` + CompactRID(rawRID) + `"`, true},
	} {
		log, read := newTestLogger(t, tc.format)
		LogEvent(WithRID(context.Background(), rawRID), log, slog.LevelInfo, "rid.test")
		line := read()
		if !strings.Contains(line, tc.want) {
			t.Fatalf("%s: expected %s in %s", tc.format, tc.want, line)
		}
		if got := strings.Contains(line, "rid_full"); got != tc.wantFull {
			t.Fatalf("%s: rid_full present = %v in %s", tc.format, got, line)
		}
	}
}

func TestStructuredHandlerNormalizesValues(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	log.WithGroup("req").Info("values",
		slog.Duration("duration", 1500*time.Microsecond),
		slog.String("empty", ""),
		slog.String("text", "two words"),
	)
	line := read()
	for _, want := range []string{"event=values", "component=app", "req.duration_ms=2", `req.text="two words"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %s in %s", want, line)
		}
	}
	for _, unwanted := range []string{"req.empty"} {
		if strings.Contains(line, unwanted) {
			t.Fatalf("unexpected %s in %s", unwanted, line)
		}
	}
}

func TestCompactRID(t *testing.T) {
	cases := map[string]string{
		"35:36:0":  "z.10.0",
		"1:2":      "1:2",
		"a:b:c":    "a:b:c",
		" 1:1:1 ":  "1.1.1",
		"-36:1:10": "-10.1.a",
	}
	for in, want := range cases {
		if got := CompactRID(in); got != want {
			t.Errorf("CompactRID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := Sanitize("a\x00b\tc\u200bd\x7f"); got != "ab\tcd" {
		t.Fatalf("Sanitize = %q", got)
	}
	if got := SanitizeLimit("привет", 3); got != "при" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("x", 0); got != "" {
		t.Fatalf("SanitizeLimit zero = %q", got)
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(2, 5)
	var allowed int
	for i := 0; i < 20; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 8 {
		t.Fatalf("allowed = %d, want 8", allowed)
	}
	s.Set(0, 0)
	if !s.Allow() {
		t.Fatal("disabled sampler must allow everything")
	}
	if n, d := parseRatioSpec("10"); n != 1 || d != 10 {
		t.Fatalf("parseRatioSpec(10) = %d/%d", n, d)
	}
	if n, d := parseRatioSpec("3/4"); n != 3 || d != 4 {
		t.Fatalf("parseRatioSpec(3/4) = %d/%d", n, d)
	}
}

func TestLoggersDiscardBeforeInit(t *testing.T) {
	// must not panic even though InitLogger was never called in this test binary
	Info(context.Background(), "tg", "noop")
	TG.Info("noop")
	Counter.Debug("noop")
}

func TestStructuredHandlerDropsUnknownOutcome(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	log.Info("summary", slog.String("outcome", "bogus"), slog.String("status", "weird"))
	line := read()
	if strings.Contains(line, "outcome=") {
		t.Fatalf("unknown outcome must be dropped: %s", line)
	}
	if !strings.Contains(line, "status=weird") {
		t.Fatalf("unknown status must be kept: %s", line)
	}
}
