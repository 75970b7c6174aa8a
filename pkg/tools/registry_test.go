package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Call(t *testing.T) {
	r := NewRegistry(
		Tool{Name: "json", Handler: func(ctx context.Context, a Args) (any, error) {
			return map[string]any{"name": a.String("name", "none")}, nil
		}},
		Tool{Name: "text", Handler: func(ctx context.Context, a Args) (any, error) { return Text("No saved content found."), nil }},
		Tool{Name: "user", Handler: func(ctx context.Context, a Args) (any, error) { return nil, errorf("Title is required for posting.") }},
		Tool{Name: "fail", Handler: func(ctx context.Context, a Args) (any, error) { return nil, errors.New("boom") }},
	)

	res := r.Call(context.Background(), "json", Args{"name": "slime"})
	assert.False(t, res.IsError)
	assert.Equal(t, "{\n  \"name\": \"slime\"\n}", res.Text)

	res = r.Call(context.Background(), "json", nil)
	assert.JSONEq(t, `{"name":"none"}`, res.Text)

	res = r.Call(context.Background(), "text", nil)
	assert.Equal(t, Result{Text: "No saved content found."}, res)

	res = r.Call(context.Background(), "user", nil)
	assert.Equal(t, Result{Text: "Error: Title is required for posting.", IsError: true}, res)

	res = r.Call(context.Background(), "fail", nil)
	assert.Equal(t, Result{Text: "Error executing tool 'fail': boom", IsError: true}, res)

	res = r.Call(context.Background(), "nope", nil)
	assert.Equal(t, Result{Text: "Error: Unknown tool 'nope'.", IsError: true}, res)
}

func TestRegistry_Tools(t *testing.T) {
	r := NewRegistry(Tool{Name: "vote"}, Tool{Name: "browse_subreddit"})
	r.Add(Tool{Name: "get_post"})
	names := []string{}
	for _, tl := range r.Tools() {
		names = append(names, tl.Name)
	}
	assert.Equal(t, []string{"browse_subreddit", "get_post", "vote"}, names)

	_, ok := r.Get("vote")
	assert.True(t, ok)
	_, ok = r.Get("unknown")
	assert.False(t, ok)
}

func TestArgs(t *testing.T) {
	a := Args{
		"s": "  text ", "empty": "", "n": float64(7), "ns": "12", "jn": json.Number("30"),
		"neg": -5, "bad": "abc", "list": []any{"t1_a", " ", "t1_b"}, "one": "t3_x", "typed": []string{"a", ""},
	}

	assert.Equal(t, "text", a.String("s", "def"))
	assert.Equal(t, "def", a.String("empty", "def"))
	assert.Equal(t, "def", a.String("missing", "def"))

	assert.Equal(t, 7, a.Int("n", 0))
	assert.Equal(t, 12, a.Int("ns", 0))
	assert.Equal(t, 30, a.Int("jn", 0))
	assert.Equal(t, 3, a.Int("bad", 3))

	assert.Equal(t, 7, a.Limit("n", 10, 25))
	assert.Equal(t, 25, a.Limit("jn", 10, 25))
	assert.Equal(t, 1, a.Limit("neg", 10, 25))
	assert.Equal(t, 10, a.Limit("missing", 10, 25))

	assert.Equal(t, []string{"t1_a", "t1_b"}, a.Strings("list"))
	assert.Equal(t, []string{"t3_x"}, a.Strings("one"))
	assert.Equal(t, []string{"a"}, a.Strings("typed"))
	assert.Empty(t, a.Strings("missing"))
}

func TestTools_AllRegistered(t *testing.T) {
	r := New(NewSession(nil, SessionParams{}), "")
	want := []string{
		"browse_subreddit", "delete_content", "edit_content", "edit_user_profile", "get_interaction_log",
		"get_notifications", "get_post", "get_request_stats", "get_saved_content", "get_subreddit_info",
		"get_subreddit_moderators", "get_subreddit_rules", "get_subscribed_subreddits", "get_trending_subreddits",
		"get_user_profile", "get_user_trophies", "mark_notifications_read", "report_content", "save_content",
		"search_reddit", "send_private_message", "submit_comment", "submit_post", "subscribe_to_subreddit",
		"unsave_content", "unsubscribe_from_subreddit", "vote",
	}
	names := []string{}
	for _, tl := range r.Tools() {
		names = append(names, tl.Name)
		assert.NotEmpty(t, tl.Description, tl.Name)
		require.NotNil(t, tl.Handler, tl.Name)
	}
	assert.Equal(t, want, names)
}
