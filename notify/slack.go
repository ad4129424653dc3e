// Package notify delivers fire-and-forget Slack notifications. Delivery
// failures are reported to the caller as a boolean and must never fail the
// originating command.
package notify

import (
	"context"

	"github.com/slack-go/slack"

	"github.com/tiamat-cli/tiamat/config"
)

// Notifier posts messages to Slack through the Web API or an incoming
// webhook, whichever is configured. The zero-configuration Notifier is
// valid and silently drops messages.
type Notifier struct {
	client  *slack.Client
	webhook string
	channel string
}

// New builds a Notifier from configuration.
func New(ctx context.Context) *Notifier {
	v := config.Viper(ctx)

	n := &Notifier{
		webhook: v.GetString(config.SlackWebhookURL),
		channel: v.GetString(config.SlackChannel),
	}

	if token := v.GetString(config.SlackToken); token != "" {
		n.client = slack.New(token)
	}

	return n
}

// Configured reports whether any delivery path is available.
func (n *Notifier) Configured() bool {
	return n.client != nil || n.webhook != ""
}

// Send posts message to the channel (or the configured default when empty)
// and reports delivery. It never returns an error: notification is a side
// channel.
func (n *Notifier) Send(ctx context.Context, channel, message string) bool {
	if channel == "" {
		channel = n.channel
	}

	switch {
	case n.client != nil:
		_, _, err := n.client.PostMessageContext(ctx, channel, slack.MsgOptionText(message, false))
		return err == nil
	case n.webhook != "":
		err := slack.PostWebhookContext(ctx, n.webhook, &slack.WebhookMessage{
			Channel: channel,
			Text:    message,
		})
		return err == nil
	}

	return false
}
