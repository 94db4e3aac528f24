package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

// postTimeout bounds the outbound webhook call; a slow Slack must not hold
// a request handler hostage.
const postTimeout = 5 * time.Second

// SlackWebhookNotifier posts messages to a Slack incoming webhook. The
// message carries the configured channel and bot username alongside the
// text; Slack's response body is not parsed.
type SlackWebhookNotifier struct {
	webhookURL string
	channel    string
	username   string
	httpClient *http.Client
}

// NewSlackWebhookNotifier creates a notifier for the given incoming webhook.
func NewSlackWebhookNotifier(webhookURL, channel, username string) *SlackWebhookNotifier {
	return &SlackWebhookNotifier{
		webhookURL: webhookURL,
		channel:    channel,
		username:   username,
		httpClient: &http.Client{Timeout: postTimeout},
	}
}

// Post sends one text message. Transport errors are returned as a delivery
// failure without retry; callers log them and move on.
func (n *SlackWebhookNotifier) Post(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, postTimeout)
	defer cancel()

	msg := &slack.WebhookMessage{
		Channel:  n.channel,
		Username: n.username,
		Text:     text,
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return fmt.Errorf("failed to post slack webhook message: %w", err)
	}
	return nil
}
