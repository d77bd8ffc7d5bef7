package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"bad request", &tele.Error{Code: 400, Description: "Bad Request: message is not modified"}, "http_4xx"},
		{"server", fmt.Errorf("edit: %w", &tele.Error{Code: 502, Description: "Bad Gateway"}), "http_5xx"},
		{"flood", tele.FloodError{RetryAfter: 3}, "http_4xx"},
		{"deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), "timeout"},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.telegram.org"}, "dns"},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, "dial"},
		{"other", errors.New("telebot: unexpected end of JSON input"), "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyError(tc.err); got != tc.want {
				t.Fatalf("ClassifyError() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSanitizeErrorRedactsToken(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123456:AAE-x_Yz/sendMessage": dial tcp: i/o timeout`)
	got := SanitizeError(err)
	if strings.Contains(got, "123456:AAE-x_Yz") {
		t.Fatalf("token leaked: %s", got)
	}
	if !strings.Contains(got, "/bot<redacted>/sendMessage") {
		t.Fatalf("unexpected redaction: %s", got)
	}
	if SanitizeError(nil) != "" {
		t.Fatal("nil error should render empty")
	}
}
