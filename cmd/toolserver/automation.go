package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/umputun/redditbot/pkg/bot"
	"github.com/umputun/redditbot/pkg/config"
	"github.com/umputun/redditbot/pkg/reddit"
	"github.com/umputun/redditbot/pkg/selector"
	"github.com/umputun/redditbot/pkg/service"
	"github.com/umputun/redditbot/pkg/tools"
)

// botControl runs passes of one stored bot for the bot-control tools, one pass at a time
type botControl struct {
	botID     string
	bots      *service.BotService
	client    *reddit.Client
	generator bot.ReplyGenerator
	journal   bot.Journal
	runner    config.RunnerConfig
	noDelay   bool

	lock sync.Mutex
}

func (c *botControl) Discover(ctx context.Context, limit int) ([]string, error) {
	b, err := c.bots.Bot(ctx, c.botID, service.Caps{})
	if err != nil {
		return nil, fmt.Errorf("failed to load bot: %w", err)
	}
	subs := c.selector().Discover(ctx, b.Keywords, limit)
	if len(subs) > limit {
		subs = subs[:limit]
	}
	return subs, nil
}

func (c *botControl) Run(ctx context.Context, req tools.RunRequest) (tools.RunStats, error) {
	if !c.lock.TryLock() {
		return tools.RunStats{}, errors.New("bot run already in progress")
	}
	defer c.lock.Unlock()

	caps := service.Caps{MaxSubs: req.MaxSubreddits, MaxReplies: req.MaxReplies, MaxUpvotes: req.MaxUpvotes}
	b, err := c.bots.Bot(ctx, c.botID, caps)
	if err != nil {
		return tools.RunStats{}, fmt.Errorf("failed to load bot: %w", err)
	}

	runner := bot.New(bot.Params{
		Bot:       b,
		Reddit:    c.client,
		Generator: c.generator,
		Selector:  c.selector(),
		History:   c.bots,
		Journal:   c.journal,
		Config:    c.runner,
		DryRun:    req.DryRun,
		ReadOnly:  req.ReadOnly || c.client.ReadOnly(),
		Subreddit: req.Subreddit,
		PostLimit: req.Limit,
		NoDelay:   c.noDelay,
	})
	log.Printf("[INFO] tool run of bot %s, subreddit %q, dry-run %v", b.ID, req.Subreddit, req.DryRun)
	stats, err := runner.Run(ctx)
	res := tools.RunStats{Subreddits: stats.Subreddits, Replies: stats.Replies, Upvotes: stats.Upvotes,
		Skipped: stats.Skipped}
	if err != nil {
		return res, fmt.Errorf("bot run failed: %w", err)
	}
	return res, nil
}

func (c *botControl) selector() *selector.Selector {
	delay := c.runner.DiscoveryDelay
	if c.noDelay {
		delay = 0
	}
	return selector.New(selector.Params{Store: c.bots, Searcher: c.client, RecentDays: c.runner.RecentDays,
		DiscoveryDelay: delay})
}
