package tools

import (
	"context"
)

// Automation runs the engagement bot on behalf of the bot-control tools
type Automation interface {
	Discover(ctx context.Context, limit int) ([]string, error)
	Run(ctx context.Context, req RunRequest) (RunStats, error)
}

// RunRequest is a single bot pass asked for by a tool call. Zero caps leave the bot's own values.
type RunRequest struct {
	Subreddit     string
	Limit         int
	DryRun        bool
	ReadOnly      bool
	MaxSubreddits int
	MaxReplies    int
	MaxUpvotes    int
}

// RunStats are the counters of a finished pass
type RunStats struct {
	Subreddits int `json:"subreddits_processed"`
	Replies    int `json:"replies_made"`
	Upvotes    int `json:"upvotes_made"`
	Skipped    int `json:"posts_skipped"`
}

func (s *Service) botTools() []Tool {
	return []Tool{
		{
			Name:        "discover_subreddits",
			Description: "Discover subreddits matching the bot's keywords",
			Params: []Param{
				{Name: "limit", Type: TypeNumber, Description: "Number of subreddits to return (max 50)"},
			},
			Handler: s.discoverSubreddits,
		},
		{
			Name:        "reply_to_subreddit_posts",
			Description: "Reply to fresh posts in one subreddit with friendly comments. Dry run unless dry_run is false.",
			Params: []Param{
				{Name: "subreddit", Type: TypeString, Description: "Subreddit name without the r/ prefix", Required: true},
				{Name: "limit", Type: TypeNumber, Description: "Number of posts to process (max 25)"},
				{Name: "dry_run", Type: TypeBoolean, Description: "Simulate replies without posting (default true)"},
			},
			Handler: s.replyToSubredditPosts,
		},
		{
			Name:        "run_reddit_bot",
			Description: "Run a full bot pass: pick subreddits, reply to posts and upvote content. Dry run unless dry_run is false.",
			Params: []Param{
				{Name: "subreddit", Type: TypeString, Description: "Process only this subreddit"},
				{Name: "limit", Type: TypeNumber, Description: "Posts per subreddit (max 25)"},
				{Name: "dry_run", Type: TypeBoolean, Description: "Simulate replies and votes (default true)"},
				{Name: "read_only", Type: TypeBoolean, Description: "Never write to reddit (default false)"},
				{Name: "max_subreddits", Type: TypeNumber, Description: "Subreddits per run, the bot's own cap wins"},
				{Name: "max_replies", Type: TypeNumber, Description: "Replies per run, the bot's own cap wins"},
				{Name: "max_upvotes", Type: TypeNumber, Description: "Upvotes per run, the bot's own cap wins"},
			},
			Handler: s.runRedditBot,
		},
	}
}

// runResult is the reply of the run tools
type runResult struct {
	Status string   `json:"status"`
	DryRun bool     `json:"dry_run"`
	Stats  RunStats `json:"stats"`
}

func (s *Service) discoverSubreddits(ctx context.Context, a Args) (any, error) {
	subs, err := s.automation.Discover(ctx, a.Limit("limit", 10, 50))
	if err != nil {
		return nil, err
	}
	return struct {
		Status     string   `json:"status"`
		Subreddits []string `json:"subreddits"`
		Count      int      `json:"count"`
	}{Status: "success", Subreddits: subs, Count: len(subs)}, nil
}

func (s *Service) replyToSubredditPosts(ctx context.Context, a Args) (any, error) {
	sub := a.String("subreddit", "")
	if sub == "" {
		return nil, errorf("subreddit is required.")
	}
	req := RunRequest{Subreddit: sub, DryRun: a.Bool("dry_run", true), MaxSubreddits: 1}
	if _, ok := a["limit"]; ok {
		req.Limit = a.Limit("limit", 5, 25)
	}
	return s.run(ctx, req)
}

func (s *Service) runRedditBot(ctx context.Context, a Args) (any, error) {
	req := RunRequest{
		Subreddit:     a.String("subreddit", ""),
		DryRun:        a.Bool("dry_run", true),
		ReadOnly:      a.Bool("read_only", false),
		MaxSubreddits: max(a.Int("max_subreddits", 0), 0),
		MaxReplies:    max(a.Int("max_replies", 0), 0),
		MaxUpvotes:    max(a.Int("max_upvotes", 0), 0),
	}
	if _, ok := a["limit"]; ok {
		req.Limit = a.Limit("limit", 5, 25)
	}
	return s.run(ctx, req)
}

func (s *Service) run(ctx context.Context, req RunRequest) (any, error) {
	stats, err := s.automation.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return runResult{Status: "success", DryRun: req.DryRun, Stats: stats}, nil
}
