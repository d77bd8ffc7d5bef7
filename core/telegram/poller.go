package telegram

import (
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/counterbot/core/config"

	tele "gopkg.in/telebot.v4"
)

// DefaultLongPollTimeout is used when the configured timeout is zero.
const DefaultLongPollTimeout = 10 * time.Second

// WebhookOptions declares webhook listener settings.
type WebhookOptions struct {
	Listen string
	Port   int
	URL    string
}

// PollerOptions configures BuildPoller.
type PollerOptions struct {
	RunMode                string
	LongPollTimeoutSeconds int
	Webhook                WebhookOptions
	// InlineMode subscribes to inline queries in addition to messages and callbacks.
	InlineMode bool
}

// AllowedUpdates lists the update kinds the bot asks Telegram to deliver.
// Everything else would be dropped by the dispatcher anyway.
func AllowedUpdates(inline bool) []string {
	allowed := []string{"message", "callback_query"}
	if inline {
		allowed = append(allowed, "inline_query")
	}
	return allowed
}

// BuildPoller returns a Telebot poller based on provided options.
func BuildPoller(opts PollerOptions) tele.Poller {
	allowed := AllowedUpdates(opts.InlineMode)
	runMode := strings.ToLower(strings.TrimSpace(opts.RunMode))
	if runMode == coreconfig.RunModeWebhook {
		return &tele.Webhook{
			Listen:         fmt.Sprintf("%s:%d", opts.Webhook.Listen, opts.Webhook.Port),
			AllowedUpdates: allowed,
			Endpoint:       &tele.WebhookEndpoint{PublicURL: opts.Webhook.URL},
		}
	}
	return &tele.LongPoller{
		Timeout:        longPollTimeout(opts.LongPollTimeoutSeconds),
		AllowedUpdates: allowed,
	}
}

func longPollTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return DefaultLongPollTimeout
	}
	return time.Duration(seconds) * time.Second
}
