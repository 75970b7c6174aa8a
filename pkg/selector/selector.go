// Package selector picks subreddits for a bot run from its fixed list and keyword discovery,
// skipping globally excluded and recently used communities.
package selector

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/redditbot/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/searcher.go -pkg mocks -skip-ensure -fmt goimports . Searcher

const (
	maxDiscoveryKeywords = 3  // keywords searched per run
	discoveryResults     = 10 // search results per keyword
)

// Store provides the exclusion list and subreddit history
type Store interface {
	Excluded(ctx context.Context) ([]string, error)
	Recent(ctx context.Context, botID string, since time.Time) ([]string, error)
}

// Searcher finds subreddits by keyword
type Searcher interface {
	SearchSubreddits(ctx context.Context, query string, limit int) ([]domain.Subreddit, error)
}

// ShuffleFunc has the signature of rand.Shuffle
type ShuffleFunc func(n int, swap func(i, j int))

// Params for the selector. Zero RecentDays disables the recency filter.
type Params struct {
	Store          Store
	Searcher       Searcher
	RecentDays     int
	DiscoveryDelay time.Duration
	Shuffle        ShuffleFunc      // defaults to rand.Shuffle
	Now            func() time.Time // defaults to time.Now
}

// Selector assembles the candidate pool for a bot and picks subreddits from it
type Selector struct {
	Params
}

// New makes a selector with defaults filled in
func New(p Params) *Selector {
	if p.Shuffle == nil {
		p.Shuffle = rand.Shuffle
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Selector{Params: p}
}

// Select returns up to bot.MaxSubs subreddits for the run. Store failures are logged and treated
// as empty exclusion and recency sets, the run continues with whatever is known.
func (s *Selector) Select(ctx context.Context, bot domain.BotConfig) []string {
	pool := append([]string(nil), bot.FixedSubs...)
	if len(bot.Keywords) > 0 && len(bot.FixedSubs) < 2*bot.MaxSubs {
		pool = append(pool, s.Discover(ctx, bot.Keywords, bot.MaxSubs)...)
	}

	var excluded, recent []string
	if s.Store != nil {
		var err error
		if excluded, err = s.Store.Excluded(ctx); err != nil {
			log.Printf("[WARN] can't load excluded subreddits, assuming none: %v", err)
			excluded = nil
		}
		if s.RecentDays > 0 {
			since := s.Now().Add(-time.Duration(s.RecentDays) * 24 * time.Hour)
			if recent, err = s.Store.Recent(ctx, bot.ID, since); err != nil {
				log.Printf("[WARN] can't load subreddit history of %s, assuming none: %v", bot.ID, err)
				recent = nil
			}
		}
	}

	res := Select(pool, bot.MaxSubs, excluded, recent, s.Shuffle)
	log.Printf("[INFO] bot %s selected %d subreddits from pool of %d: %v", bot.ID, len(res), len(pool), res)
	return res
}

// Discover searches subreddits for up to 3 randomly chosen keywords and returns at most
// 2*maxSubs safe-for-work names. Search errors are logged and skipped.
func (s *Selector) Discover(ctx context.Context, keywords []string, maxSubs int) []string {
	limit := 2 * maxSubs
	if s.Searcher == nil || limit <= 0 {
		return []string{}
	}

	kw := append([]string(nil), keywords...)
	s.Shuffle(len(kw), func(i, j int) { kw[i], kw[j] = kw[j], kw[i] })
	if len(kw) > maxDiscoveryKeywords {
		kw = kw[:maxDiscoveryKeywords]
	}

	res := []string{}
	seen := map[string]bool{}
	for i, keyword := range kw {
		if len(res) >= limit {
			break
		}
		if i > 0 && !sleep(ctx, s.DiscoveryDelay) {
			break
		}
		subs, err := s.Searcher.SearchSubreddits(ctx, keyword, discoveryResults)
		if err != nil {
			log.Printf("[WARN] subreddit search for %q failed: %v", keyword, err)
			continue
		}
		for _, sub := range subs {
			key := strings.ToLower(sub.Name)
			if sub.Over18 || sub.Name == "" || seen[key] {
				continue
			}
			seen[key] = true
			res = append(res, sub.Name)
			if len(res) >= limit {
				break
			}
		}
	}
	log.Printf("[DEBUG] discovered %d subreddits for keywords %v", len(res), kw)
	return res
}

// Select picks up to n names from pool. Excluded names never appear in the result, names are
// compared case-insensitively and the first spelling wins. Recently used names are only taken
// to backfill when fewer than n fresh names are left.
func Select(pool []string, n int, excluded, recent []string, shuffle ShuffleFunc) []string {
	if n <= 0 {
		return []string{}
	}
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	excludedSet := lowerSet(excluded)
	recentSet := lowerSet(recent)
	chosen := map[string]bool{}

	fresh := []string{}
	for _, name := range pool {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || excludedSet[key] || chosen[key] {
			continue
		}
		chosen[key] = true
		if recentSet[key] {
			continue
		}
		fresh = append(fresh, strings.TrimSpace(name))
	}

	shuffleStrings(fresh, shuffle)
	if len(fresh) >= n {
		return fresh[:n]
	}

	res := fresh
	picked := lowerSet(res)
	backfill := []string{}
	for _, name := range recent {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || excludedSet[key] || picked[key] {
			continue
		}
		picked[key] = true
		backfill = append(backfill, strings.TrimSpace(name))
	}
	shuffleStrings(backfill, shuffle)
	for _, name := range backfill {
		if len(res) >= n {
			break
		}
		res = append(res, name)
	}
	return res
}

func shuffleStrings(s []string, shuffle ShuffleFunc) {
	shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func lowerSet(names []string) map[string]bool {
	res := make(map[string]bool, len(names))
	for _, name := range names {
		res[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return res
}

// sleep waits for d or until ctx is done, returns false if ctx is done
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
