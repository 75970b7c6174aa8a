package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/redditbot/pkg/config"
	"github.com/umputun/redditbot/pkg/filter"
)

type acceptFunc func(string) bool

func (f acceptFunc) Accept(s string) bool { return f(s) }

// completionServer replies with the given contents in order, repeating the last one
func completionServer(t *testing.T, contents []string, check func(req openai.ChatCompletionRequest)) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		n := int(atomic.AddInt32(&calls, 1)) - 1

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if check != nil {
			check(req)
		}

		if n >= len(contents) {
			n = len(contents) - 1
		}
		if contents[n] == "!error" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: contents[n]}},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func testConfig(url string) config.LLMConfig {
	return config.LLMConfig{Endpoint: url + "/v1", APIKey: "test-key", Model: "llama3-8b-8192",
		Temperature: 0.7, MaxTokens: 300, Attempts: 3}
}

func TestGenerator_Generate(t *testing.T) {
	t.Run("accepted on first attempt", func(t *testing.T) {
		ts, calls := completionServer(t, []string{`"What a lovely slime, great colors!"`}, func(req openai.ChatCompletionRequest) {
			assert.Equal(t, "llama3-8b-8192", req.Model)
			assert.Equal(t, 300, req.MaxTokens)
			require.Len(t, req.Messages, 2)
			assert.True(t, strings.HasPrefix(req.Messages[0].Content, "Be cheerful."+noQuotesRule))
			assert.Contains(t, req.Messages[0].Content, "SKIP")
			assert.Equal(t, "Post Title: My slime\n\nPost Content: so fluffy\n\n"+
				"Please write a brief, friendly, and supportive reply to this Reddit post. "+
				"Keep it under 25 words. DO NOT use quotation marks in your response.\nStyle: playful", req.Messages[1].Content)
		})
		g := NewGenerator(testConfig(ts.URL), filter.New())
		reply, err := g.Generate(context.Background(), Request{Title: "My slime", Body: "so fluffy",
			Prompt: "Be cheerful.", StyleTag: "playful"})
		require.NoError(t, err)
		assert.Equal(t, Reply{Text: "What a lovely slime, great colors!"}, reply)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("rejected then accepted", func(t *testing.T) {
		ts, calls := completionServer(t, []string{"That is a bad idea", "Such a wonderful idea, love it!"}, nil)
		g := NewGenerator(testConfig(ts.URL), filter.New())
		reply, err := g.Generate(context.Background(), Request{Title: "t", Body: "b"})
		require.NoError(t, err)
		assert.Equal(t, "Such a wonderful idea, love it!", reply.Text)
		assert.False(t, reply.Fallback)
		assert.Equal(t, int32(2), atomic.LoadInt32(calls))
	})

	t.Run("denylisted contraction rejected", func(t *testing.T) {
		ts, calls := completionServer(t, []string{
			"I don't know much but this looks great and amazing!",
			`"Honestly I can't stand how adorable this lovely pup is"`,
			"I don’t understand it but this looks wonderful and amazing",
		}, nil)
		g := NewGenerator(testConfig(ts.URL), filter.New())
		g.pick = func(int) int { return 0 }
		reply, err := g.Generate(context.Background(), Request{Title: "t", Body: "b"})
		require.NoError(t, err)
		assert.Equal(t, Reply{Text: "This looks great! Thanks for sharing your work!", Fallback: true}, reply)
		assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	})

	t.Run("accepted reply loses internal quotes", func(t *testing.T) {
		ts, _ := completionServer(t, []string{`'It's such a "wonderful" idea, love it!'`}, nil)
		g := NewGenerator(testConfig(ts.URL), filter.New())
		reply, err := g.Generate(context.Background(), Request{Title: "t", Body: "b"})
		require.NoError(t, err)
		assert.Equal(t, Reply{Text: "Its such a wonderful idea, love it!"}, reply)
	})

	t.Run("skip sentinel", func(t *testing.T) {
		ts, calls := completionServer(t, []string{"SKIP."}, nil)
		g := NewGenerator(testConfig(ts.URL), filter.New())
		reply, err := g.Generate(context.Background(), Request{Title: "t"})
		require.NoError(t, err)
		assert.True(t, reply.Skipped)
		assert.Empty(t, reply.Text)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("fallback after errors", func(t *testing.T) {
		ts, calls := completionServer(t, []string{"!error"}, nil)
		g := NewGenerator(testConfig(ts.URL), filter.New())
		g.pick = func(int) int { return 0 }
		reply, err := g.Generate(context.Background(), Request{Title: "t"})
		require.NoError(t, err)
		assert.Equal(t, Reply{Text: "This looks great! Thanks for sharing your work!", Fallback: true}, reply)
		assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	})

	t.Run("fallback after rejections", func(t *testing.T) {
		ts, calls := completionServer(t, []string{"ok", "", "meh"}, nil)
		g := NewGenerator(testConfig(ts.URL), acceptFunc(func(string) bool { return false }))
		reply, err := g.Generate(context.Background(), Request{Title: "t"})
		require.NoError(t, err)
		assert.True(t, reply.Fallback)
		assert.Contains(t, fallbackReplies, reply.Text)
		assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	})

	t.Run("canceled context", func(t *testing.T) {
		ts, _ := completionServer(t, []string{"whatever"}, nil)
		g := NewGenerator(testConfig(ts.URL), filter.New())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := g.Generate(ctx, Request{Title: "t"})
		require.Error(t, err)
	})
}

func TestGenerator_SystemPrompt(t *testing.T) {
	g := NewGenerator(config.LLMConfig{}, nil)
	assert.Equal(t, defaultSystemPrompt+skipRule, g.systemPrompt(""))
	assert.Equal(t, "custom"+noQuotesRule+skipRule, g.systemPrompt("custom"))

	g = NewGenerator(config.LLMConfig{SystemPrompt: "from config"}, nil)
	assert.Equal(t, "from config"+noQuotesRule+skipRule, g.systemPrompt(""))
	assert.Equal(t, 3, g.config.Attempts)
}

func TestGenerator_BuildPrompt(t *testing.T) {
	g := NewGenerator(config.LLMConfig{}, nil)
	prompt := g.buildPrompt(Request{Title: "Title", Body: "<p>hello <b>world</b> &amp; more</p><script>x()</script>"})
	assert.Contains(t, prompt, "Post Content: hello world & more\n\n")
	assert.NotContains(t, prompt, "Style:")
	assert.NotContains(t, prompt, "script")

	long := strings.Repeat("a", maxBodyLen+100)
	prompt = g.buildPrompt(Request{Title: "t", Body: long})
	assert.Contains(t, prompt, strings.Repeat("a", maxBodyLen)+"...")
	assert.NotContains(t, prompt, strings.Repeat("a", maxBodyLen+1))
}

func TestStripQuotes(t *testing.T) {
	tests := map[string]string{
		`"Nice work!"`:            "Nice work!",
		`'Nice work!'`:            "Nice work!",
		`  “Nice” work  `:         "Nice work",
		`I "really" love it's look`: "I really love its look",
		"plain":                   "plain",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripQuotes(in), in)
	}
	assert.Equal(t, "I don't know", trimQuotes(`  "I don't know" `))
	assert.True(t, isSkip("skip"))
	assert.True(t, isSkip("SKIP!"))
	assert.False(t, isSkip("skip this one"))
}
