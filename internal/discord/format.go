package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/seedling/internal/domain"
)

// WebhookUsername is the author name shown on webhook posts
const WebhookUsername = "Seedling"

// Embed colors
const (
	colorRipe      = 0x2ecc71 // Green
	colorHarvested = 0xe67e22 // Orange
)

// Log messages
const (
	LogMsgNotificationSent  = "Discord notification sent"
	LogMsgNotificationError = "failed to send Discord notification"
)

// progressBar renders the watering progress as filled and empty drops
func progressBar(count int) string {
	if count < 0 {
		count = 0
	}
	if count > domain.HarvestThreshold {
		count = domain.HarvestThreshold
	}
	return strings.Repeat("💧", count) + strings.Repeat("▫️", domain.HarvestThreshold-count)
}

func ripeEmbed(st domain.TreeState) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🌳 The seedling is ripe",
		Description: fmt.Sprintf("Watered %d/%d times. Waiting for an admin to harvest.", st.WateredCount, domain.HarvestThreshold),
		Color:       colorRipe,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Progress", Value: progressBar(st.WateredCount)},
			{Name: "Harvests so far", Value: fmt.Sprintf("%d", st.HarvestCount), Inline: true},
		},
	}
}

func harvestedEmbed(st domain.TreeState) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🌱 Harvested",
		Description: "A new seedling has been planted. Watering starts again tomorrow... or today, if nobody has watered yet.",
		Color:       colorHarvested,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Lifetime harvests", Value: fmt.Sprintf("%d", st.HarvestCount), Inline: true},
		},
	}
}
