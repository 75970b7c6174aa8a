package reddit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "cid", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%s","token_type":"bearer","expires_in":3600}`, r.PostForm.Get("grant_type"))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestConfig_Mode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want AuthMode
	}{
		{name: "no client id", cfg: Config{RefreshToken: "rt"}, want: AuthAnonymous},
		{name: "read only forced", cfg: Config{ClientID: "id", RefreshToken: "rt", ReadOnly: true}, want: AuthAppOnly},
		{name: "refresh token", cfg: Config{ClientID: "id", RefreshToken: "rt", Username: "u", Password: "p"}, want: AuthRefreshToken},
		{name: "password", cfg: Config{ClientID: "id", Username: "u", Password: "p"}, want: AuthPassword},
		{name: "username only", cfg: Config{ClientID: "id", Username: "u"}, want: AuthAppOnly},
		{name: "client only", cfg: Config{ClientID: "id", ClientSecret: "s"}, want: AuthAppOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Mode())
		})
	}
	assert.Equal(t, "refresh-token", AuthRefreshToken.String())
	assert.Equal(t, "anonymous", AuthAnonymous.String())
}

func TestClient_AnonymousUsesPublicJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/slime/new.json", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "1", r.URL.Query().Get("raw_json"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"kind":"Listing","data":{"children":[
			{"kind":"t3","data":{"id":"abc","name":"t3_abc","title":"my slime","selftext":"fluffy","subreddit":"slime",
			 "permalink":"/r/slime/comments/abc/","post_hint":"image","num_comments":4,"created_utc":1700000000}},
			{"kind":"t1","data":{"id":"skip"}}]}}`)
	}))
	defer ts.Close()

	c := New(context.Background(), Config{UserAgent: "test-agent", PublicURL: ts.URL})
	assert.Equal(t, AuthAnonymous, c.Mode())
	assert.True(t, c.ReadOnly())

	posts, err := c.Posts(context.Background(), "slime", "new", 5)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "abc", posts[0].ID)
	assert.Equal(t, "t3_abc", posts[0].Fullname)
	assert.Equal(t, "fluffy", posts[0].Body)
	assert.True(t, posts[0].IsImage)
	assert.False(t, posts[0].Synthetic())
	assert.Equal(t, "https://www.reddit.com/r/slime/comments/abc/", posts[0].Permalink)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), posts[0].Created)

	_, err = c.Posts(context.Background(), "slime", "best", 5)
	require.Error(t, err)
}

func TestClient_RefreshTokenAuth(t *testing.T) {
	var tokenCalls int32
	tks := tokenServer(t, &tokenCalls)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-refresh_token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/v1/me":
			fmt.Fprint(w, `{"name":"bot_user"}`)
		case "/api/comment":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "t3_abc", r.PostForm.Get("thing_id"))
			assert.Equal(t, "nice work", r.PostForm.Get("text"))
			fmt.Fprint(w, `{"json":{"errors":[],"data":{"things":[{"kind":"t1","data":{"id":"c1","name":"t1_c1"}}]}}}`)
		case "/api/vote":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "1", r.PostForm.Get("dir"))
			fmt.Fprint(w, `{}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer api.Close()

	c := New(context.Background(), Config{ClientID: "cid", ClientSecret: "secret", RefreshToken: "rt",
		TokenURL: tks.URL, APIURL: api.URL})
	assert.False(t, c.ReadOnly())

	name, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bot_user", name)

	id, err := c.Reply(context.Background(), "t3_abc", "nice work")
	require.NoError(t, err)
	assert.Equal(t, "c1", id)

	require.NoError(t, c.Vote(context.Background(), "t3_abc", 1))
	require.Error(t, c.Vote(context.Background(), "t3_abc", 2))
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls), "token reused between calls")
}

func TestClient_PasswordAuth(t *testing.T) {
	var tokenCalls int32
	tks := tokenServer(t, &tokenCalls)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-password", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"name":"pw_user"}`)
	}))
	defer api.Close()

	c := New(context.Background(), Config{ClientID: "cid", ClientSecret: "secret", Username: "pw_user", Password: "pw",
		TokenURL: tks.URL, APIURL: api.URL})
	assert.Equal(t, AuthPassword, c.Mode())
	assert.Equal(t, "pw_user", c.Username())
	name, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pw_user", name)
}

func TestClient_AppOnlyIsReadOnly(t *testing.T) {
	var tokenCalls int32
	tks := tokenServer(t, &tokenCalls)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-client_credentials", r.Header.Get("Authorization"))
		assert.Equal(t, "/subreddits/search", r.URL.Path)
		assert.Equal(t, "crafts", r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"data":{"children":[{"kind":"t5","data":{"display_name":"crafts","name":"t5_1","subscribers":100}},
			{"kind":"t5","data":{"display_name":"nsfwcrafts","name":"t5_2","over18":true}}]}}`)
	}))
	defer api.Close()

	c := New(context.Background(), Config{ClientID: "cid", ClientSecret: "secret", ReadOnly: true,
		TokenURL: tks.URL, APIURL: api.URL})
	subs, err := c.SearchSubreddits(context.Background(), "crafts", 10)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "crafts", subs[0].Name)
	assert.Equal(t, 100, subs[0].Subscribers)
	assert.True(t, subs[1].Over18)

	_, err = c.Reply(context.Background(), "t3_x", "hi")
	require.ErrorIs(t, err, ErrReadOnly)
	_, err = c.Me(context.Background())
	require.ErrorIs(t, err, ErrReadOnly)
}

func TestClient_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/throttled.json":
			w.Header().Set("X-Ratelimit-Reset", "42")
			w.WriteHeader(http.StatusTooManyRequests)
		case "/missing.json":
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		case "/ratelimited.json":
			fmt.Fprint(w, `{"json":{"errors":[["RATELIMIT","you are doing that too much","ratelimit"]]}}`)
		case "/bad.json":
			fmt.Fprint(w, `{"json":{"errors":[["THREAD_LOCKED","locked",""]]}}`)
		}
	}))
	defer ts.Close()
	c := New(context.Background(), Config{PublicURL: ts.URL})

	_, err := c.Raw(context.Background(), http.MethodGet, "/throttled", nil, nil)
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 42, rlErr.SecondsUntilReset)
	assert.True(t, IsRateLimit(err))

	_, err = c.Raw(context.Background(), http.MethodGet, "/missing", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.False(t, IsRateLimit(err))

	_, err = c.Raw(context.Background(), http.MethodGet, "/ratelimited", nil, nil)
	require.ErrorAs(t, err, &rlErr)
	assert.Contains(t, err.Error(), "you are doing that too much")

	_, err = c.Raw(context.Background(), http.MethodGet, "/bad", nil, nil)
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Body, "THREAD_LOCKED")
}

func TestIsRateLimit(t *testing.T) {
	assert.False(t, IsRateLimit(nil))
	assert.True(t, IsRateLimit(errors.New("praw: RATELIMIT: try again in 5 minutes")))
	assert.True(t, IsRateLimit(fmt.Errorf("wrapped: %w", &RateLimitError{Message: "slow down"})))
	assert.False(t, IsRateLimit(errors.New("boom")))
}

func TestClient_Comments(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/abc.json", r.URL.Path)
		fmt.Fprint(w, `[{"data":{"children":[{"kind":"t3","data":{"id":"abc"}}]}},
			{"data":{"children":[
				{"kind":"t1","data":{"id":"c1","name":"t1_c1","author":"a","body":"first","replies":""}},
				{"kind":"t1","data":{"id":"c2","name":"t1_c2","author":"b","body":"second","edited":1700000000.0,
					"replies":{"data":{"children":[{"kind":"t1","data":{"id":"c3"}}]}}}},
				{"kind":"more","data":{"count":10}}]}}]`)
	}))
	defer ts.Close()
	c := New(context.Background(), Config{PublicURL: ts.URL})

	comments, err := c.Comments(context.Background(), "t3_abc", 3)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "t1_c1", comments[0].Fullname)
	assert.Equal(t, "second", comments[1].Body)
}

func TestClient_FormEncoding(t *testing.T) {
	var tokenCalls int32
	tks := tokenServer(t, &tokenCalls)
	var got url.Values
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		got, _ = url.ParseQuery(string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer api.Close()
	c := New(context.Background(), Config{ClientID: "cid", ClientSecret: "secret", RefreshToken: "rt",
		TokenURL: tks.URL, APIURL: api.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodPatch, Path: "api/v1/me/prefs",
		Form: url.Values{"about": {"hello there"}}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.URL, api.URL+"/api/v1/me/prefs?"))
	assert.Equal(t, "hello there", got.Get("about"))
}
