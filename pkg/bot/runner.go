// Package bot runs a single engagement pass of a bot: picks subreddits, replies to fresh posts
// and upvotes posts and comments within the per-run caps.
package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/redditbot/pkg/config"
	"github.com/umputun/redditbot/pkg/domain"
	"github.com/umputun/redditbot/pkg/llm"
	"github.com/umputun/redditbot/pkg/reddit"
)

//go:generate moq -out mocks/reddit.go -pkg mocks -skip-ensure -fmt goimports . Reddit
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . ReplyGenerator
//go:generate moq -out mocks/selector.go -pkg mocks -skip-ensure -fmt goimports . SubredditSelector
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . History
//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal

// Reddit is the part of the reddit client used by the runner
type Reddit interface {
	Posts(ctx context.Context, subreddit, sort string, limit int) ([]domain.Post, error)
	Comments(ctx context.Context, postID string, limit int) ([]domain.Comment, error)
	Reply(ctx context.Context, parentFullname, text string) (string, error)
	Vote(ctx context.Context, fullname string, dir int) error
}

// ReplyGenerator makes replies for posts
type ReplyGenerator interface {
	Generate(ctx context.Context, req llm.Request) (llm.Reply, error)
}

// SubredditSelector picks subreddits for the run
type SubredditSelector interface {
	Select(ctx context.Context, bot domain.BotConfig) []string
}

// History records subreddit usage
type History interface {
	Touch(ctx context.Context, botID, subreddit string, at time.Time) error
}

// Journal is the interaction log
type Journal interface {
	Replied(postID string) bool
	Record(rec domain.Interaction) error
}

// Params for the runner
type Params struct {
	Bot       domain.BotConfig // with defaults and caps already applied
	Reddit    Reddit
	Generator ReplyGenerator
	Selector  SubredditSelector
	History   History // optional, not used in dry run
	Journal   Journal
	Config    config.RunnerConfig

	DryRun    bool   // simulate replies and votes, synthetic posts when listing fails
	ReadOnly  bool   // client can't write, replies and votes are simulated
	Subreddit string // process only this subreddit, selector is not used
	PostLimit int    // posts per subreddit, overrides config
	NoDelay   bool   // disable all pauses

	Sleep func(ctx context.Context, d time.Duration) error // defaults to context-aware sleep
	Now   func() time.Time                                 // defaults to time.Now
}

// Stats of a single run
type Stats struct {
	Subreddits int
	Replies    int
	Upvotes    int
	Skipped    int
}

// String returns a short summary for logs
func (s Stats) String() string {
	return fmt.Sprintf("subreddits:%d, replies:%d, upvotes:%d, skipped:%d", s.Subreddits, s.Replies, s.Upvotes, s.Skipped)
}

// Runner executes one pass of a bot
type Runner struct {
	Params
	stats Stats
}

// New makes a runner
func New(p Params) *Runner {
	if p.Sleep == nil {
		p.Sleep = sleep
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Runner{Params: p}
}

// Run processes selected subreddits until caps are reached. Failures of a single subreddit are
// logged and skipped, only context cancellation is returned as error.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	r.stats = Stats{}
	subs := []string{r.Subreddit}
	if r.Subreddit == "" {
		subs = r.Selector.Select(ctx, r.Bot)
	}
	if len(subs) == 0 {
		log.Printf("[WARN] no subreddits to process for bot %s", r.Bot.ID)
		return r.stats, nil
	}

	log.Printf("[INFO] bot %s starts on %d subreddits, dry-run:%v, read-only:%v, caps replies:%d upvotes:%d",
		r.Bot.ID, len(subs), r.DryRun, r.ReadOnly, r.Bot.MaxReplies, r.Bot.MaxUpvotes)

	for i, sub := range subs {
		if r.stats.Replies >= r.Bot.MaxReplies || r.stats.Upvotes >= r.Bot.MaxUpvotes {
			log.Printf("[INFO] caps reached, stopping before r/%s", sub)
			break
		}
		if r.Subreddit == "" && r.stats.Subreddits >= r.Bot.MaxSubs {
			break
		}
		if i > 0 {
			if err := r.pause(ctx, r.Config.SubredditDelay); err != nil {
				return r.stats, err
			}
		}

		r.stats.Subreddits++
		r.touch(ctx, sub)
		if err := r.processSubreddit(ctx, sub); err != nil {
			if ctx.Err() != nil {
				return r.stats, ctx.Err()
			}
			log.Printf("[ERROR] failed to process r/%s: %v", sub, err)
		}
	}

	log.Printf("[INFO] bot %s done, %s", r.Bot.ID, r.stats)
	return r.stats, nil
}

// live reports whether actions on the post reach reddit
func (r *Runner) live(p domain.Post) bool {
	return !r.DryRun && !r.ReadOnly && !p.Synthetic()
}

func (r *Runner) touch(ctx context.Context, sub string) {
	if r.DryRun || r.History == nil {
		return
	}
	if err := r.History.Touch(ctx, r.Bot.ID, sub, r.Now()); err != nil {
		log.Printf("[WARN] can't record history of r/%s: %v", sub, err)
	}
}

func (r *Runner) processSubreddit(ctx context.Context, sub string) error {
	posts, err := r.fetchPosts(ctx, sub)
	if err != nil {
		return err
	}
	log.Printf("[INFO] processing %d posts in r/%s", len(posts), sub)

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Journal.Replied(post.ID) {
			log.Printf("[DEBUG] already replied to %s, skip", post.ID)
			continue
		}
		if post.Empty() {
			continue
		}
		if imageRelated(post) {
			log.Printf("[INFO] skip image post %s %q", post.ID, post.Title)
			r.stats.Skipped++
			r.record(domain.Interaction{Action: domain.ActionSkip, Subreddit: sub, PostID: post.ID,
				Content: "Skipped image-related post"})
			continue
		}
		if r.stats.Replies >= r.Bot.MaxReplies {
			log.Printf("[INFO] reply cap %d reached", r.Bot.MaxReplies)
			break
		}

		replied, err := r.reply(ctx, sub, post)
		if err != nil {
			return err
		}
		if err := r.upvote(ctx, sub, post); err != nil {
			return err
		}
		if !replied {
			if err := r.pause(ctx, r.Config.ActionDelay); err != nil {
				return err
			}
		}
	}
	return nil
}

// fetchPosts lists rising posts, falls back to new. In dry run a failed or empty listing
// gives synthetic posts.
func (r *Runner) fetchPosts(ctx context.Context, sub string) ([]domain.Post, error) {
	limit := r.PostLimit
	if limit <= 0 {
		limit = r.Config.PostsPerSubreddit
		if r.DryRun {
			limit = r.Config.DryRunPosts
		}
	}

	posts, err := r.Reddit.Posts(ctx, sub, "rising", limit)
	if err != nil || len(posts) == 0 {
		if err != nil {
			log.Printf("[WARN] can't get rising posts of r/%s: %v", sub, err)
		}
		posts, err = r.Reddit.Posts(ctx, sub, "new", limit)
	}
	if err != nil || len(posts) == 0 {
		if r.DryRun {
			log.Printf("[INFO] no posts in r/%s, using synthetic posts", sub)
			return syntheticPosts(sub, limit), nil
		}
		if err != nil {
			return nil, fmt.Errorf("get posts: %w", err)
		}
		return []domain.Post{}, nil
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// reply generates and posts a reply, returns true if a reply was made or simulated
func (r *Runner) reply(ctx context.Context, sub string, post domain.Post) (bool, error) {
	gen, err := r.Generator.Generate(ctx, llm.Request{Title: post.Title, Body: post.Body,
		Prompt: r.Bot.Prompt, StyleTag: r.Bot.StyleTag})
	if err != nil {
		return false, err
	}
	if gen.Skipped {
		r.stats.Skipped++
		r.record(domain.Interaction{Action: domain.ActionSkip, Subreddit: sub, PostID: post.ID,
			Content: "Model declined to reply"})
		return false, nil
	}

	rec := domain.Interaction{Action: domain.ActionReply, Subreddit: sub, PostID: post.ID, Content: gen.Text}
	if !r.live(post) {
		log.Printf("[INFO] [simulated] reply to %s %q: %s", post.ID, post.Title, gen.Text)
		r.stats.Replies++
		r.record(rec)
		return true, nil
	}

	commentID, err := r.Reddit.Reply(ctx, post.Fullname, gen.Text)
	if err != nil {
		if reddit.IsRateLimit(err) {
			log.Printf("[WARN] rate limited on reply to %s, waiting %v: %v", post.ID, r.Config.RateLimitDelay, err)
			return false, r.pause(ctx, r.Config.RateLimitDelay)
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		log.Printf("[ERROR] failed to reply to %s: %v", post.ID, err)
		return false, nil
	}

	log.Printf("[INFO] replied to %s %q: %s", post.ID, post.Title, gen.Text)
	r.stats.Replies++
	rec.CommentID = commentID
	r.record(rec)
	return true, r.pause(ctx, r.jitter(r.Config.ReplyDelayMin, r.Config.ReplyDelayMax))
}

// upvote votes for the post and its top comments while under the upvote cap
func (r *Runner) upvote(ctx context.Context, sub string, post domain.Post) error {
	if r.stats.Upvotes >= r.Bot.MaxUpvotes {
		return nil
	}
	if err := r.vote(ctx, post, post.Fullname, domain.Interaction{Action: domain.ActionUpvote,
		Subreddit: sub, PostID: post.ID}); err != nil {
		return err
	}

	if r.stats.Upvotes >= r.Bot.MaxUpvotes || r.Config.CommentsToUpvote <= 0 {
		return nil
	}
	comments, err := r.comments(ctx, post)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("[WARN] can't get comments of %s: %v", post.ID, err)
		return nil
	}
	for _, c := range comments {
		if r.stats.Upvotes >= r.Bot.MaxUpvotes {
			break
		}
		if err := r.vote(ctx, post, c.Fullname, domain.Interaction{Action: domain.ActionUpvote,
			Subreddit: sub, PostID: post.ID, CommentID: c.ID}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) comments(ctx context.Context, post domain.Post) ([]domain.Comment, error) {
	if post.Synthetic() {
		return syntheticComments(post, r.Config.CommentsToUpvote), nil
	}
	comments, err := r.Reddit.Comments(ctx, post.ID, r.Config.CommentsToUpvote)
	if err != nil {
		return nil, err
	}
	if len(comments) > r.Config.CommentsToUpvote {
		comments = comments[:r.Config.CommentsToUpvote]
	}
	return comments, nil
}

// vote upvotes a thing, simulated when the post is not live. Only context errors are returned.
func (r *Runner) vote(ctx context.Context, post domain.Post, fullname string, rec domain.Interaction) error {
	if r.live(post) {
		if err := r.Reddit.Vote(ctx, fullname, 1); err != nil {
			if reddit.IsRateLimit(err) {
				log.Printf("[WARN] rate limited on vote for %s, waiting %v", fullname, r.Config.RateLimitDelay)
				return r.pause(ctx, r.Config.RateLimitDelay)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[WARN] failed to upvote %s: %v", fullname, err)
			return nil
		}
		log.Printf("[DEBUG] upvoted %s", fullname)
	} else {
		log.Printf("[DEBUG] [simulated] upvote %s", fullname)
	}
	r.stats.Upvotes++
	r.record(rec)
	return nil
}

func (r *Runner) record(rec domain.Interaction) {
	if err := r.Journal.Record(rec); err != nil {
		log.Printf("[WARN] can't record %s interaction: %v", rec.Action, err)
	}
}

func (r *Runner) pause(ctx context.Context, d time.Duration) error {
	if r.NoDelay || d <= 0 {
		return ctx.Err()
	}
	return r.Sleep(ctx, d)
}

// jitter returns a random duration in [minD, maxD]
func (r *Runner) jitter(minD, maxD time.Duration) time.Duration {
	if maxD <= minD {
		return minD
	}
	return minD + rand.N(maxD-minD+1)
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
