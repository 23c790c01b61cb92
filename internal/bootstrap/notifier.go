package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/seedling/internal/config"
	"github.com/osse101/seedling/internal/discord"
	"github.com/osse101/seedling/internal/tree"
)

// NewNotifier returns the Discord webhook notifier when configured, otherwise a no-op
func NewNotifier(cfg *config.Config) (tree.Notifier, error) {
	if !cfg.DiscordWebhookEnabled() {
		slog.Info(LogMsgNotifierDisabled)
		return discord.NopNotifier{}, nil
	}

	n, err := discord.NewWebhookNotifier(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook notifier: %w", err)
	}
	slog.Info(LogMsgNotifierEnabled, "webhook_id", cfg.DiscordWebhookID)
	return n, nil
}
