// Package slack provides the send command for the Slack side channel.
package slack

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tiamat-cli/tiamat/notify"
)

// SendCmd initializes the send command
func SendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <channel> <message...>",
		Short: "Send a message to a Slack channel",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			notifier := notify.New(ctx)
			if !notifier.Configured() {
				return fmt.Errorf("slack is not configured (set slack.token or slack.webhook-url)")
			}

			channel := args[0]
			message := strings.Join(args[1:], " ")

			if !notifier.Send(ctx, channel, message) {
				return fmt.Errorf("failed to send message to %s", channel)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Message sent to %s\n", channel)

			return nil
		},
	}
}
