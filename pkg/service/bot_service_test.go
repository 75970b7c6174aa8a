package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/redditbot/pkg/domain"
	"github.com/umputun/redditbot/pkg/repository"
	"github.com/umputun/redditbot/pkg/service/mocks"
)

func TestBotService_Bot(t *testing.T) {
	tests := []struct {
		name string
		row  domain.BotConfig
		cli  Caps
		want [3]int
	}{
		{name: "defaults", row: domain.BotConfig{ID: "b"}, want: [3]int{3, 10, 20}},
		{name: "cli caps", row: domain.BotConfig{ID: "b"}, cli: Caps{MaxSubs: 1, MaxReplies: 2, MaxUpvotes: 4}, want: [3]int{1, 2, 4}},
		{name: "row caps win", row: domain.BotConfig{ID: "b", MaxSubs: 5, MaxUpvotes: 7},
			cli: Caps{MaxSubs: 1, MaxReplies: 2, MaxUpvotes: 4}, want: [3]int{5, 2, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bots := &mocks.BotStoreMock{GetFunc: func(ctx context.Context, id string) (domain.BotConfig, error) {
				return tt.row, nil
			}}
			svc := NewBotService(bots, &mocks.HistoryStoreMock{})
			bot, err := svc.Bot(context.Background(), "b", tt.cli)
			require.NoError(t, err)
			assert.Equal(t, tt.want, [3]int{bot.MaxSubs, bot.MaxReplies, bot.MaxUpvotes})
			assert.Equal(t, domain.DefaultKeywords, bot.Keywords)
			assert.Equal(t, "b", bots.GetCalls()[0].Id)
		})
	}
}

func TestBotService_BotErrors(t *testing.T) {
	bots := &mocks.BotStoreMock{GetFunc: func(ctx context.Context, id string) (domain.BotConfig, error) {
		return domain.BotConfig{}, repository.ErrBotInactive
	}}
	_, err := NewBotService(bots, &mocks.HistoryStoreMock{}).Bot(context.Background(), "off", Caps{})
	assert.ErrorIs(t, err, repository.ErrBotInactive)
}

func TestBotService_History(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := &mocks.HistoryStoreMock{
		ExcludedFunc: func(ctx context.Context) ([]string, error) { return []string{"politics"}, nil },
		RecentFunc: func(ctx context.Context, botID string, s time.Time) ([]string, error) {
			return []string{"slime"}, nil
		},
		TouchFunc: func(ctx context.Context, botID, subreddit string, at time.Time) error {
			return errors.New("locked")
		},
	}
	bots := &mocks.BotStoreMock{ActiveIDsFunc: func(ctx context.Context) ([]string, error) { return []string{"a", "b"}, nil }}
	svc := NewBotService(bots, history)

	ids, err := svc.ActiveIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	excluded, err := svc.Excluded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"politics"}, excluded)

	recent, err := svc.Recent(context.Background(), "a", since)
	require.NoError(t, err)
	assert.Equal(t, []string{"slime"}, recent)
	assert.Equal(t, since, history.RecentCalls()[0].Since)

	assert.EqualError(t, svc.Touch(context.Background(), "a", "slime", since), "locked")
	assert.Equal(t, "slime", history.TouchCalls()[0].Subreddit)
}
