package service

import (
	"context"
	"time"

	"github.com/umputun/redditbot/pkg/domain"
)

//go:generate moq -out mocks/bot_store.go -pkg mocks -skip-ensure -fmt goimports . BotStore
//go:generate moq -out mocks/history_store.go -pkg mocks -skip-ensure -fmt goimports . HistoryStore

// BotStore loads bot rows, implemented by repository.BotRepository
type BotStore interface {
	Get(ctx context.Context, id string) (domain.BotConfig, error)
	ActiveIDs(ctx context.Context) ([]string, error)
}

// HistoryStore keeps exclusions and subreddit usage, implemented by repository.HistoryRepository
type HistoryStore interface {
	Recent(ctx context.Context, botID string, since time.Time) ([]string, error)
	Touch(ctx context.Context, botID, subreddit string, at time.Time) error
	Excluded(ctx context.Context) ([]string, error)
}

// Caps are activity limits given on the command line, zero means not set
type Caps struct {
	MaxSubs    int
	MaxReplies int
	MaxUpvotes int
}

// BotService provides unified access to repositories for the bot runner
type BotService struct {
	bots    BotStore
	history HistoryStore
}

// NewBotService creates a new bot service
func NewBotService(bots BotStore, history HistoryStore) *BotService {
	return &BotService{bots: bots, history: history}
}

// Bot loads the active bot and resolves its caps. A cap set on the bot row wins over the
// command line one, unset caps fall back to defaults.
func (s *BotService) Bot(ctx context.Context, id string, cli Caps) (domain.BotConfig, error) {
	bot, err := s.bots.Get(ctx, id)
	if err != nil {
		return domain.BotConfig{}, err
	}
	bot.MaxSubs = firstSet(bot.MaxSubs, cli.MaxSubs)
	bot.MaxReplies = firstSet(bot.MaxReplies, cli.MaxReplies)
	bot.MaxUpvotes = firstSet(bot.MaxUpvotes, cli.MaxUpvotes)
	return bot.WithDefaults(), nil
}

// ActiveIDs returns ids of all active bots
func (s *BotService) ActiveIDs(ctx context.Context) ([]string, error) {
	return s.bots.ActiveIDs(ctx)
}

// Excluded returns the global exclusion list
func (s *BotService) Excluded(ctx context.Context) ([]string, error) {
	return s.history.Excluded(ctx)
}

// Recent returns subreddits the bot used since the given time
func (s *BotService) Recent(ctx context.Context, botID string, since time.Time) ([]string, error) {
	return s.history.Recent(ctx, botID, since)
}

// Touch records the bot's interaction with the subreddit
func (s *BotService) Touch(ctx context.Context, botID, subreddit string, at time.Time) error {
	return s.history.Touch(ctx, botID, subreddit, at)
}

func firstSet(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
