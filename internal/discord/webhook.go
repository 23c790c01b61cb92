package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/seedling/internal/domain"
)

// webhookExecutor is the part of *discordgo.Session the notifier needs
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// WebhookNotifier posts seedling milestones to a Discord channel webhook
type WebhookNotifier struct {
	exec      webhookExecutor
	webhookID string
	token     string
	username  string
}

// NewWebhookNotifier creates a notifier. Webhooks need no bot token, so the session is unauthenticated.
func NewWebhookNotifier(webhookID, token string) (*WebhookNotifier, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return newWebhookNotifier(s, webhookID, token), nil
}

func newWebhookNotifier(exec webhookExecutor, webhookID, token string) *WebhookNotifier {
	return &WebhookNotifier{
		exec:      exec,
		webhookID: webhookID,
		token:     token,
		username:  WebhookUsername,
	}
}

// SeedlingRipe announces that the seedling is waiting for harvest
func (n *WebhookNotifier) SeedlingRipe(ctx context.Context, state domain.TreeState) error {
	return n.send(ctx, ripeEmbed(state))
}

// SeedlingHarvested announces a completed harvest
func (n *WebhookNotifier) SeedlingHarvested(ctx context.Context, state domain.TreeState) error {
	return n.send(ctx, harvestedEmbed(state))
}

func (n *WebhookNotifier) send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	params := &discordgo.WebhookParams{
		Username: n.username,
		Embeds:   []*discordgo.MessageEmbed{embed},
	}

	if _, err := n.exec.WebhookExecute(n.webhookID, n.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%s: %w", LogMsgNotificationError, err)
	}

	slog.Debug(LogMsgNotificationSent, "title", embed.Title)
	return nil
}

// NopNotifier drops every notification
type NopNotifier struct{}

func (NopNotifier) SeedlingRipe(context.Context, domain.TreeState) error      { return nil }
func (NopNotifier) SeedlingHarvested(context.Context, domain.TreeState) error { return nil }
