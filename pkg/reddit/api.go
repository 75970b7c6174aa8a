package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/umputun/redditbot/pkg/domain"
)

// sorting orders accepted by Posts
var listingSorts = map[string]bool{"hot": true, "new": true, "rising": true, "top": true, "controversial": true}

// Me returns the name of the authenticated user
func (c *Client) Me(ctx context.Context) (string, error) {
	if c.ReadOnly() {
		return "", fmt.Errorf("me: %w", ErrReadOnly)
	}
	var resp struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, "/api/v1/me", nil, &resp); err != nil {
		return "", fmt.Errorf("me: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("me: empty user name")
	}
	return resp.Name, nil
}

// SearchSubreddits finds communities matching the query
func (c *Client) SearchSubreddits(ctx context.Context, query string, limit int) ([]domain.Subreddit, error) {
	q := url.Values{"q": {query}, "limit": {strconv.Itoa(limit)}}
	body, err := c.Raw(ctx, http.MethodGet, "/subreddits/search", q, nil)
	if err != nil {
		return nil, fmt.Errorf("search subreddits %q: %w", query, err)
	}
	l, err := ParseListing(body)
	if err != nil {
		return nil, err
	}
	subs := l.Subreddits()
	res := make([]domain.Subreddit, 0, len(subs))
	for _, s := range subs {
		res = append(res, s.ToSubreddit())
	}
	return res, nil
}

// Posts returns submissions of a subreddit in the given sort order
func (c *Client) Posts(ctx context.Context, subreddit, sort string, limit int) ([]domain.Post, error) {
	if !listingSorts[sort] {
		return nil, fmt.Errorf("unsupported sort %q", sort)
	}
	path := fmt.Sprintf("/r/%s/%s", url.PathEscape(subreddit), sort)
	body, err := c.Raw(ctx, http.MethodGet, path, url.Values{"limit": {strconv.Itoa(limit)}}, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s posts of r/%s: %w", sort, subreddit, err)
	}
	l, err := ParseListing(body)
	if err != nil {
		return nil, err
	}
	links := l.Links()
	res := make([]domain.Post, 0, len(links))
	for _, lnk := range links {
		res = append(res, lnk.ToPost())
	}
	return res, nil
}

// Comments returns top level comments of a post
func (c *Client) Comments(ctx context.Context, postID string, limit int) ([]domain.Comment, error) {
	path := "/comments/" + url.PathEscape(strings.TrimPrefix(postID, "t3_"))
	body, err := c.Raw(ctx, http.MethodGet, path, url.Values{"limit": {strconv.Itoa(limit)}, "depth": {"1"}}, nil)
	if err != nil {
		return nil, fmt.Errorf("get comments of %s: %w", postID, err)
	}
	var listings []Listing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("decode comments of %s: %w", postID, err)
	}
	if len(listings) < 2 {
		return []domain.Comment{}, nil
	}
	data := listings[1].Comments()
	res := make([]domain.Comment, 0, len(data))
	for _, cd := range data {
		if limit > 0 && len(res) >= limit {
			break
		}
		res = append(res, cd.ToComment())
	}
	return res, nil
}

// Reply posts a comment under the thing with the given fullname and returns the new comment id
func (c *Client) Reply(ctx context.Context, parentFullname, text string) (string, error) {
	form := url.Values{"thing_id": {parentFullname}, "text": {text}, "api_type": {"json"}}
	body, err := c.Raw(ctx, http.MethodPost, "/api/comment", nil, form)
	if err != nil {
		return "", fmt.Errorf("reply to %s: %w", parentFullname, err)
	}
	var resp struct {
		JSON struct {
			Data struct {
				Things []Thing `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.JSON.Data.Things) == 0 {
		return "", nil //nolint:nilerr // reddit accepted the comment, id is unknown
	}
	var cd CommentData
	if err := json.Unmarshal(resp.JSON.Data.Things[0].Data, &cd); err != nil {
		return "", nil //nolint:nilerr // same as above
	}
	return cd.ID, nil
}

// Vote casts a vote on a post or comment, dir is 1, 0 or -1
func (c *Client) Vote(ctx context.Context, fullname string, dir int) error {
	if dir < -1 || dir > 1 {
		return fmt.Errorf("invalid vote direction %d", dir)
	}
	form := url.Values{"id": {fullname}, "dir": {strconv.Itoa(dir)}}
	if _, err := c.Raw(ctx, http.MethodPost, "/api/vote", nil, form); err != nil {
		return fmt.Errorf("vote %d on %s: %w", dir, fullname, err)
	}
	return nil
}
