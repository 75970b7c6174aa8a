package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/redditbot/pkg/bot/mocks"
	"github.com/umputun/redditbot/pkg/config"
	"github.com/umputun/redditbot/pkg/domain"
	"github.com/umputun/redditbot/pkg/llm"
	"github.com/umputun/redditbot/pkg/reddit"
)

func runnerConfig() config.RunnerConfig {
	return config.RunnerConfig{
		PostsPerSubreddit: 5,
		DryRunPosts:       2,
		CommentsToUpvote:  3,
		ActionDelay:       5 * time.Second,
		SubredditDelay:    10 * time.Second,
		ReplyDelayMin:     60 * time.Second,
		ReplyDelayMax:     180 * time.Second,
		RateLimitDelay:    60 * time.Second,
	}
}

func livePosts(sub string, n int) []domain.Post {
	res := make([]domain.Post, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s%d", sub, i)
		res = append(res, domain.Post{ID: id, Fullname: "t3_" + id, Title: "Post " + id,
			Body: "made something nice", Subreddit: sub})
	}
	return res
}

func newJournal(replied ...string) *mocks.JournalMock {
	done := map[string]bool{}
	for _, id := range replied {
		done[id] = true
	}
	return &mocks.JournalMock{
		RepliedFunc: func(postID string) bool { return done[postID] },
		RecordFunc:  func(rec domain.Interaction) error { return nil },
	}
}

func actions(j *mocks.JournalMock, action domain.Action) []domain.Interaction {
	res := []domain.Interaction{}
	for _, c := range j.RecordCalls() {
		if c.Rec.Action == action {
			res = append(res, c.Rec)
		}
	}
	return res
}

func okGenerator() *mocks.ReplyGeneratorMock {
	return &mocks.ReplyGeneratorMock{
		GenerateFunc: func(ctx context.Context, req llm.Request) (llm.Reply, error) {
			return llm.Reply{Text: "This is lovely, great work!"}, nil
		},
	}
}

func liveReddit(postsPerSub int) *mocks.RedditMock {
	return &mocks.RedditMock{
		PostsFunc: func(ctx context.Context, subreddit, sort string, limit int) ([]domain.Post, error) {
			return livePosts(subreddit, postsPerSub), nil
		},
		CommentsFunc: func(ctx context.Context, postID string, limit int) ([]domain.Comment, error) {
			return []domain.Comment{
				{ID: postID + "c1", Fullname: "t1_" + postID + "c1"},
				{ID: postID + "c2", Fullname: "t1_" + postID + "c2"},
				{ID: postID + "c3", Fullname: "t1_" + postID + "c3"},
				{ID: postID + "c4", Fullname: "t1_" + postID + "c4"},
			}, nil
		},
		ReplyFunc: func(ctx context.Context, parentFullname, text string) (string, error) {
			return "reply_" + parentFullname, nil
		},
		VoteFunc: func(ctx context.Context, fullname string, dir int) error { return nil },
	}
}

func selectorOf(subs ...string) *mocks.SubredditSelectorMock {
	return &mocks.SubredditSelectorMock{
		SelectFunc: func(ctx context.Context, bot domain.BotConfig) []string { return subs },
	}
}

type sleeps struct {
	mu sync.Mutex
	d  []time.Duration
}

func (s *sleeps) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d = append(s.d, d)
	return ctx.Err()
}

func TestRunner_Live(t *testing.T) {
	rd := liveReddit(2)
	j := newJournal()
	hist := &mocks.HistoryMock{TouchFunc: func(ctx context.Context, botID, subreddit string, at time.Time) error { return nil }}
	sl := &sleeps{}

	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 2, MaxReplies: 10, MaxUpvotes: 20}.WithDefaults(),
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("slime", "crafts"),
		History:   hist,
		Journal:   j,
		Config:    runnerConfig(),
		Sleep:     sl.sleep,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Subreddits: 2, Replies: 4, Upvotes: 16}, stats) // 4 posts + 3 comments each
	require.Len(t, rd.ReplyCalls(), 4)
	assert.Equal(t, "t3_slime0", rd.ReplyCalls()[0].ParentFullname)
	assert.Len(t, rd.VoteCalls(), 16)
	assert.Equal(t, 1, rd.VoteCalls()[0].Dir)

	replies := actions(j, domain.ActionReply)
	require.Len(t, replies, 4)
	assert.Equal(t, "reply_t3_slime0", replies[0].CommentID)
	assert.Equal(t, "This is lovely, great work!", replies[0].Content)
	assert.Len(t, actions(j, domain.ActionUpvote), 16)

	require.Len(t, hist.TouchCalls(), 2)
	assert.Equal(t, "crafts", hist.TouchCalls()[1].Subreddit)

	// rising listing first, limit from config
	assert.Equal(t, "rising", rd.PostsCalls()[0].Sort)
	assert.Equal(t, 5, rd.PostsCalls()[0].Limit)

	// one pause between subreddits, one after each reply within 60-180s
	require.Len(t, sl.d, 5)
	assert.Equal(t, 10*time.Second, sl.d[2])
	for _, i := range []int{0, 1, 3, 4} {
		assert.GreaterOrEqual(t, sl.d[i], 60*time.Second)
		assert.LessOrEqual(t, sl.d[i], 180*time.Second)
	}
}

func TestRunner_ReplyCap(t *testing.T) {
	rd := liveReddit(5)
	j := newJournal()
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 3, MaxReplies: 3, MaxUpvotes: 100},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("a", "b", "c"),
		Journal:   j,
		Config:    runnerConfig(),
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Replies)
	assert.Len(t, rd.ReplyCalls(), 3, "no replies after cap even with posts remaining")
	assert.Equal(t, 1, stats.Subreddits, "loop halts before next subreddit once replies cap reached")
}

func TestRunner_UpvoteCap(t *testing.T) {
	rd := liveReddit(3)
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 3, MaxReplies: 10, MaxUpvotes: 6},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("a", "b"),
		Journal:   newJournal(),
		Config:    runnerConfig(),
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Upvotes)
	assert.Len(t, rd.VoteCalls(), 6)
	assert.Equal(t, 1, stats.Subreddits)
}

func TestRunner_SkipsRepliedEmptyAndImagePosts(t *testing.T) {
	rd := liveReddit(0)
	rd.PostsFunc = func(ctx context.Context, subreddit, sort string, limit int) ([]domain.Post, error) {
		return []domain.Post{
			{ID: "p1", Fullname: "t3_p1", Title: "done already", Body: "text"},
			{ID: "p2", Fullname: "t3_p2"},
			{ID: "p3", Fullname: "t3_p3", Title: "Look at this photo of my slime"},
			{ID: "p4", Fullname: "t3_p4", Title: "gallery", IsImage: true},
			{ID: "p5", Fullname: "t3_p5", Title: "my slime recipe", Body: "glue and borax"},
		}, nil
	}
	rd.CommentsFunc = func(ctx context.Context, postID string, limit int) ([]domain.Comment, error) {
		return nil, nil
	}
	j := newJournal("p1")
	gen := okGenerator()
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 1, MaxReplies: 10, MaxUpvotes: 20},
		Reddit:    rd,
		Generator: gen,
		Selector:  selectorOf("slime"),
		Journal:   j,
		Config:    runnerConfig(),
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, gen.GenerateCalls(), 1)
	assert.Equal(t, "my slime recipe", gen.GenerateCalls()[0].Req.Title)
	assert.Equal(t, 2, stats.Skipped)
	skips := actions(j, domain.ActionSkip)
	require.Len(t, skips, 2)
	assert.Equal(t, "p3", skips[0].PostID)
	assert.Equal(t, "Skipped image-related post", skips[0].Content)
}

func TestRunner_RateLimit(t *testing.T) {
	rd := liveReddit(2)
	calls := 0
	rd.ReplyFunc = func(ctx context.Context, parentFullname, text string) (string, error) {
		calls++
		if calls == 1 {
			return "", &reddit.RateLimitError{Message: "RATELIMIT: try again in 1 minute", SecondsUntilReset: 60}
		}
		return "c2", nil
	}
	sl := &sleeps{}
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 1, MaxReplies: 10, MaxUpvotes: 20},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("slime"),
		Journal:   newJournal(),
		Config:    runnerConfig(),
		Sleep:     sl.sleep,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Replies)
	assert.Len(t, rd.ReplyCalls(), 2, "continues after rate limit")
	require.NotEmpty(t, sl.d)
	assert.Equal(t, 60*time.Second, sl.d[0])
	assert.Equal(t, 5*time.Second, sl.d[1], "action delay after post without reply")
}

func TestRunner_ReplyErrorLogged(t *testing.T) {
	rd := liveReddit(2)
	rd.ReplyFunc = func(ctx context.Context, parentFullname, text string) (string, error) {
		return "", &reddit.APIError{StatusCode: 403, Body: "forbidden"}
	}
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 1, MaxReplies: 10, MaxUpvotes: 20},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("slime"),
		Journal:   newJournal(),
		Config:    runnerConfig(),
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Replies)
	assert.Equal(t, 8, stats.Upvotes, "votes continue after reply failure")
}

func TestRunner_ModelSkip(t *testing.T) {
	rd := liveReddit(1)
	j := newJournal()
	gen := &mocks.ReplyGeneratorMock{
		GenerateFunc: func(ctx context.Context, req llm.Request) (llm.Reply, error) {
			return llm.Reply{Skipped: true}, nil
		},
	}
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 1, MaxReplies: 10, MaxUpvotes: 20, Prompt: "custom", StyleTag: "warm"},
		Reddit:    rd,
		Generator: gen,
		Selector:  selectorOf("slime"),
		Journal:   j,
		Config:    runnerConfig(),
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Replies)
	assert.Equal(t, 1, stats.Skipped)
	assert.Empty(t, rd.ReplyCalls())
	assert.Equal(t, "custom", gen.GenerateCalls()[0].Req.Prompt)
	assert.Equal(t, "warm", gen.GenerateCalls()[0].Req.StyleTag)
	assert.Len(t, actions(j, domain.ActionSkip), 1)
}

func TestRunner_DryRunSynthetic(t *testing.T) {
	rd := &mocks.RedditMock{
		PostsFunc: func(ctx context.Context, subreddit, sort string, limit int) ([]domain.Post, error) {
			return nil, errors.New("forbidden")
		},
	}
	j := newJournal()
	hist := &mocks.HistoryMock{}
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 1, MaxReplies: 10, MaxUpvotes: 20},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("slime"),
		History:   hist,
		Journal:   j,
		Config:    runnerConfig(),
		DryRun:    true,
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Subreddits: 1, Replies: 2, Upvotes: 8}, stats)
	require.Len(t, rd.PostsCalls(), 2)
	assert.Equal(t, "new", rd.PostsCalls()[1].Sort)
	assert.Equal(t, 2, rd.PostsCalls()[0].Limit, "dry run post limit")

	replies := actions(j, domain.ActionReply)
	require.Len(t, replies, 2)
	assert.Equal(t, "mock1", replies[0].PostID)
	upvotes := actions(j, domain.ActionUpvote)
	assert.Equal(t, "mockcommentmock1_0", upvotes[1].CommentID)
	assert.Empty(t, hist.TouchCalls(), "no history in dry run")
}

func TestRunner_ReadOnlySimulates(t *testing.T) {
	rd := liveReddit(1)
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 1, MaxReplies: 10, MaxUpvotes: 20},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("slime"),
		Journal:   newJournal(),
		Config:    runnerConfig(),
		ReadOnly:  true,
		PostLimit: 1,
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Replies)
	assert.Equal(t, 4, stats.Upvotes)
	assert.Empty(t, rd.ReplyCalls())
	assert.Empty(t, rd.VoteCalls())
	assert.Len(t, rd.CommentsCalls(), 1, "comments are still read")
	assert.Equal(t, 1, rd.PostsCalls()[0].Limit)
}

func TestRunner_SingleSubreddit(t *testing.T) {
	rd := liveReddit(1)
	sel := &mocks.SubredditSelectorMock{}
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 3, MaxReplies: 10, MaxUpvotes: 20},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  sel,
		Journal:   newJournal(),
		Config:    runnerConfig(),
		Subreddit: "diy",
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Subreddits)
	assert.Empty(t, sel.SelectCalls())
	assert.Equal(t, "diy", rd.PostsCalls()[0].Subreddit)
}

func TestRunner_SubredditFailureIsolated(t *testing.T) {
	rd := liveReddit(1)
	rd.PostsFunc = func(ctx context.Context, subreddit, sort string, limit int) ([]domain.Post, error) {
		if subreddit == "private" {
			return nil, &reddit.APIError{StatusCode: 403}
		}
		return livePosts(subreddit, 1), nil
	}
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 2, MaxReplies: 10, MaxUpvotes: 20},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("private", "slime"),
		Journal:   newJournal(),
		Config:    runnerConfig(),
		NoDelay:   true,
	})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Subreddits)
	assert.Equal(t, 1, stats.Replies)
}

func TestRunner_NoSubreddits(t *testing.T) {
	r := New(Params{Bot: domain.BotConfig{ID: "b1", MaxSubs: 2}, Selector: selectorOf(), Journal: newJournal()})
	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rd := liveReddit(3)
	rd.ReplyFunc = func(ctx context.Context, parentFullname, text string) (string, error) {
		cancel()
		return "c1", nil
	}
	r := New(Params{
		Bot:       domain.BotConfig{ID: "b1", MaxSubs: 2, MaxReplies: 10, MaxUpvotes: 20},
		Reddit:    rd,
		Generator: okGenerator(),
		Selector:  selectorOf("a", "b"),
		Journal:   newJournal(),
		Config:    runnerConfig(),
	})
	stats, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stats.Replies)
	assert.Len(t, rd.ReplyCalls(), 1)
}

func TestSleep(t *testing.T) {
	require.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}

func TestStats_String(t *testing.T) {
	assert.Equal(t, "subreddits:1, replies:2, upvotes:3, skipped:4", Stats{1, 2, 3, 4}.String())
}
