package selector

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/redditbot/pkg/domain"
	"github.com/umputun/redditbot/pkg/selector/mocks"
)

// noShuffle keeps input order, makes results deterministic
func noShuffle(int, func(i, j int)) {}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		pool     []string
		n        int
		excluded []string
		recent   []string
		want     []string
	}{
		{name: "takes first n", pool: []string{"a", "b", "c"}, n: 2, want: []string{"a", "b"}},
		{name: "drops excluded", pool: []string{"a", "b", "c"}, n: 2, excluded: []string{"b"}, want: []string{"a", "c"}},
		{name: "excluded case insensitive", pool: []string{"Slime", "crafts"}, n: 2, excluded: []string{"slime"},
			want: []string{"crafts"}},
		{name: "dedup first spelling wins", pool: []string{"Slime", "slime", "SLIME", "kids"}, n: 3,
			want: []string{"Slime", "kids"}},
		{name: "recent skipped when enough fresh", pool: []string{"a", "b", "c"}, n: 2, recent: []string{"a"},
			want: []string{"b", "c"}},
		{name: "backfill from recent", pool: []string{"a", "b"}, n: 3, recent: []string{"b", "x", "y"},
			want: []string{"a", "b", "x"}},
		{name: "backfill skips excluded", pool: []string{}, n: 3, recent: []string{"x", "y", "z"}, excluded: []string{"y"},
			want: []string{"x", "z"}},
		{name: "zero n", pool: []string{"a"}, n: 0, want: []string{}},
		{name: "negative n", pool: []string{"a"}, n: -1, want: []string{}},
		{name: "empty everything", n: 3, want: []string{}},
		{name: "blank names ignored", pool: []string{" ", "a", ""}, n: 3, want: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.pool, tt.n, tt.excluded, tt.recent, noShuffle)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_PermutationOfEligible(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := Select([]string{"a", "b", "c"}, 2, []string{"b"}, nil, rand.Shuffle)
		assert.ElementsMatch(t, []string{"a", "c"}, got)
	}
}

func TestSelect_BackfillOnlyRecent(t *testing.T) {
	recent := []string{"r1", "r2", "r3", "r4"}
	got := Select(nil, 3, nil, recent, rand.Shuffle)
	assert.Len(t, got, 3)
	for _, name := range got {
		assert.Contains(t, recent, name)
	}

	got = Select(nil, 10, nil, recent, rand.Shuffle)
	assert.ElementsMatch(t, recent, got)
}

func TestSelect_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "A", "B"}
	pick := func() []string {
		res := []string{}
		for _, name := range names {
			if r.IntN(2) == 0 {
				res = append(res, name)
			}
		}
		return res
	}

	for i := 0; i < 500; i++ {
		pool, excluded, recent := pick(), pick(), pick()
		n := r.IntN(8)
		got := Select(pool, n, excluded, recent, r.Shuffle)

		require.LessOrEqual(t, len(got), n)
		exSet := lowerSet(excluded)
		seen := map[string]bool{}
		for _, name := range got {
			key := strings.ToLower(name)
			require.False(t, exSet[key], "excluded %q selected, pool=%v excluded=%v", name, pool, excluded)
			require.False(t, seen[key], "duplicate %q", name)
			seen[key] = true
		}

		eligible := map[string]bool{}
		for _, name := range append(append([]string{}, pool...), recent...) {
			if !exSet[strings.ToLower(name)] {
				eligible[strings.ToLower(name)] = true
			}
		}
		if len(eligible) >= n {
			require.Len(t, got, n, "pool=%v excluded=%v recent=%v", pool, excluded, recent)
		}
	}
}

func TestSelector_Discover(t *testing.T) {
	searcher := &mocks.SearcherMock{
		SearchSubredditsFunc: func(ctx context.Context, query string, limit int) ([]domain.Subreddit, error) {
			switch query {
			case "slime":
				return []domain.Subreddit{{Name: "Slime"}, {Name: "nsfwslime", Over18: true}, {Name: "SlimeRancher"}}, nil
			case "crafts":
				return []domain.Subreddit{{Name: "crafts"}, {Name: "slime"}}, nil
			case "broken":
				return nil, errors.New("search failed")
			}
			return []domain.Subreddit{{Name: query + "_sub"}}, nil
		},
	}
	s := New(Params{Searcher: searcher, Shuffle: noShuffle})

	t.Run("skips nsfw and duplicates", func(t *testing.T) {
		got := s.Discover(context.Background(), []string{"slime", "crafts"}, 5)
		assert.Equal(t, []string{"Slime", "SlimeRancher", "crafts"}, got)
	})

	t.Run("caps at twice max subs", func(t *testing.T) {
		got := s.Discover(context.Background(), []string{"slime", "crafts"}, 1)
		assert.Equal(t, []string{"Slime", "SlimeRancher"}, got)
	})

	t.Run("at most three keywords", func(t *testing.T) {
		calls := len(searcher.SearchSubredditsCalls())
		got := s.Discover(context.Background(), []string{"k1", "k2", "k3", "k4", "k5"}, 10)
		assert.Equal(t, []string{"k1_sub", "k2_sub", "k3_sub"}, got)
		assert.Len(t, searcher.SearchSubredditsCalls(), calls+3)
		assert.Equal(t, 10, searcher.SearchSubredditsCalls()[calls].Limit)
	})

	t.Run("search errors skipped", func(t *testing.T) {
		got := s.Discover(context.Background(), []string{"broken", "crafts"}, 5)
		assert.Equal(t, []string{"crafts", "slime"}, got)
	})

	t.Run("canceled context stops between keywords", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		got := s.Discover(ctx, []string{"k1", "k2"}, 5)
		assert.Equal(t, []string{"k1_sub"}, got)
	})
}

func TestSelector_Select(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &mocks.StoreMock{
		ExcludedFunc: func(ctx context.Context) ([]string, error) {
			return []string{"askreddit"}, nil
		},
		RecentFunc: func(ctx context.Context, botID string, since time.Time) ([]string, error) {
			return []string{"crafts"}, nil
		},
	}
	searcher := &mocks.SearcherMock{
		SearchSubredditsFunc: func(ctx context.Context, query string, limit int) ([]domain.Subreddit, error) {
			return []domain.Subreddit{{Name: "AskReddit"}, {Name: "DIY"}}, nil
		},
	}
	s := New(Params{Store: store, Searcher: searcher, RecentDays: 3, Shuffle: noShuffle, Now: func() time.Time { return now }})

	bot := domain.BotConfig{ID: "b1", Keywords: []string{"diy"}, FixedSubs: []string{"crafts", "slime"}, MaxSubs: 2}
	got := s.Select(context.Background(), bot)
	assert.Equal(t, []string{"slime", "DIY"}, got)

	require.Len(t, store.RecentCalls(), 1)
	assert.Equal(t, "b1", store.RecentCalls()[0].BotID)
	assert.Equal(t, now.Add(-72*time.Hour), store.RecentCalls()[0].Since)
	assert.Len(t, searcher.SearchSubredditsCalls(), 1)
}

func TestSelector_SelectSkipsDiscoveryWithEnoughFixed(t *testing.T) {
	searcher := &mocks.SearcherMock{}
	store := &mocks.StoreMock{
		ExcludedFunc: func(ctx context.Context) ([]string, error) { return nil, nil },
		RecentFunc:   func(ctx context.Context, botID string, since time.Time) ([]string, error) { return nil, nil },
	}
	s := New(Params{Store: store, Searcher: searcher, RecentDays: 3, Shuffle: noShuffle})

	bot := domain.BotConfig{ID: "b1", Keywords: []string{"diy"}, FixedSubs: []string{"a", "b", "c", "d"}, MaxSubs: 2}
	got := s.Select(context.Background(), bot)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Empty(t, searcher.SearchSubredditsCalls())
}

func TestSelector_SelectStoreErrors(t *testing.T) {
	store := &mocks.StoreMock{
		ExcludedFunc: func(ctx context.Context) ([]string, error) { return nil, errors.New("db down") },
		RecentFunc: func(ctx context.Context, botID string, since time.Time) ([]string, error) {
			return nil, errors.New("db down")
		},
	}
	s := New(Params{Store: store, RecentDays: 3, Shuffle: noShuffle})

	bot := domain.BotConfig{ID: "b1", FixedSubs: []string{"a", "b", "c"}, MaxSubs: 2}
	got := s.Select(context.Background(), bot)
	assert.Equal(t, []string{"a", "b"}, got)
}
