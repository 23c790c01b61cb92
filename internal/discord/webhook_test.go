package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/seedling/internal/domain"
)

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(webhookID, token, wait, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func TestWebhookNotifier_SeedlingRipe(t *testing.T) {
	exec := new(mockExecutor)
	var sent *discordgo.WebhookParams
	exec.On("WebhookExecute", "123", "tok", false, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(3).(*discordgo.WebhookParams) }).
		Return(nil, nil).Once()

	n := newWebhookNotifier(exec, "123", "tok")
	err := n.SeedlingRipe(context.Background(), domain.TreeState{WateredCount: 10, HarvestCount: 2, ReadyForHarvest: true})

	require.NoError(t, err)
	exec.AssertExpectations(t)
	require.Len(t, sent.Embeds, 1)
	assert.Equal(t, WebhookUsername, sent.Username)
	assert.Contains(t, sent.Embeds[0].Title, "ripe")
	assert.Contains(t, sent.Embeds[0].Description, "10/10")
	assert.Equal(t, "2", sent.Embeds[0].Fields[1].Value)
}

func TestWebhookNotifier_SeedlingHarvestedError(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("WebhookExecute", "123", "tok", false, mock.Anything).Return(nil, errors.New("429")).Once()

	n := newWebhookNotifier(exec, "123", "tok")
	err := n.SeedlingHarvested(context.Background(), domain.TreeState{HarvestCount: 3})

	assert.ErrorContains(t, err, "429")
	exec.AssertExpectations(t)
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		count      int
		wantFilled int
	}{
		{0, 0},
		{3, 3},
		{10, 10},
		{12, 10},
		{-1, 0},
	}

	for _, tt := range tests {
		bar := progressBar(tt.count)
		assert.Equal(t, tt.wantFilled, countRune(bar, '💧'), "count=%d", tt.count)
	}
}

func countRune(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}

func TestNopNotifier(t *testing.T) {
	var n NopNotifier
	assert.NoError(t, n.SeedlingRipe(context.Background(), domain.TreeState{}))
	assert.NoError(t, n.SeedlingHarvested(context.Background(), domain.TreeState{}))
}
