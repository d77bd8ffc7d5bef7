package dispatch

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/m3rciful/counterbot/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

var tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)

// ClassifyError names the kind of transport failure for logs.
// Bot API rejections map to http_4xx / http_5xx (flood control is http_4xx),
// network failures to their netutil kind, everything else to "unknown".
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	switch status := httpStatusFromError(err); {
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	}
	if kind := netutil.Classify(err); kind != "" {
		return kind
	}
	return "unknown"
}

// SanitizeError renders err with any bot token redacted, since telebot
// includes the request URL in some network errors.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}

func httpStatusFromError(err error) int {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return http.StatusTooManyRequests
	}
	var groupErr tele.GroupError
	if errors.As(err, &groupErr) {
		return http.StatusBadRequest
	}
	return 0
}
