package tools

import (
	"encoding/json"
	"time"

	"github.com/umputun/redditbot/pkg/reddit"
)

// PostView is a post as returned by tools
type PostView struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Subreddit   string `json:"subreddit"`
	Upvotes     int    `json:"upvotes"`
	URL         string `json:"url"`
	Created     string `json:"created"`
	Selftext    string `json:"selftext"`
	IsVideo     bool   `json:"is_video"`
	IsImage     bool   `json:"is_image"`
	NumComments int    `json:"num_comments"`
	ID          string `json:"id"`
	Fullname    string `json:"fullname"`
	Saved       bool   `json:"saved"`
	Stickied    bool   `json:"stickied"`
	Locked      bool   `json:"locked"`
	Over18      bool   `json:"over_18"`
}

// CommentView is a comment with its reply tree. A "more" stub has only MoreComments set.
type CommentView struct {
	MoreComments bool          `json:"-"`
	ID           string        `json:"id"`
	Fullname     string        `json:"fullname"`
	Author       string        `json:"author"`
	Body         string        `json:"body"`
	BodyHTML     string        `json:"body_html"`
	Upvotes      int           `json:"upvotes"`
	Created      string        `json:"created"`
	Edited       bool          `json:"edited"`
	Permalink    *string       `json:"permalink"`
	Saved        bool          `json:"saved"`
	Stickied     bool          `json:"stickied"`
	Replies      []CommentView `json:"replies"`
}

// MarshalJSON renders a "more" stub as {"more_comments": true}
func (c CommentView) MarshalJSON() ([]byte, error) {
	if c.MoreComments {
		return []byte(`{"more_comments":true}`), nil
	}
	type plain CommentView
	return json.Marshal(plain(c))
}

// SubredditView is a community as returned by tools
type SubredditView struct {
	DisplayName       string `json:"display_name"`
	Title             string `json:"title"`
	PublicDescription string `json:"public_description"`
	Subscribers       int    `json:"subscribers"`
	Created           string `json:"created"`
	URL               string `json:"url"`
	Over18            bool   `json:"over18"`
	Description       string `json:"description"`
	IsDefault         bool   `json:"is_default"`
	UserIsSubscriber  bool   `json:"user_is_subscriber"`
	UserIsBanned      bool   `json:"user_is_banned"`
	UserIsModerator   bool   `json:"user_is_moderator"`
}

// NotificationView is an inbox item
type NotificationView struct {
	ID         string `json:"id"`
	Fullname   string `json:"fullname"`
	Type       string `json:"type"`
	Created    string `json:"created"`
	Context    string `json:"context"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	LinkTitle  string `json:"link_title"`
	Subreddit  string `json:"subreddit"`
	WasComment bool   `json:"was_comment"`
}

// messageData is the t4 (and inbox t1) payload
type messageData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	CreatedUTC float64 `json:"created_utc"`
	Context    string  `json:"context"`
	Subject    string  `json:"subject"`
	Body       string  `json:"body"`
	LinkTitle  string  `json:"link_title"`
	Subreddit  string  `json:"subreddit"`
	WasComment bool    `json:"was_comment"`
}

func formatPost(l reddit.Link) PostView {
	return PostView{
		Title:       l.Title,
		Author:      l.Author,
		Subreddit:   l.SubredditNamePrefixed,
		Upvotes:     l.Ups,
		URL:         reddit.Permalink(l.Permalink),
		Created:     isoTime(l.CreatedUTC),
		Selftext:    l.Selftext,
		IsVideo:     l.IsVideo,
		IsImage:     l.PostHint == "image",
		NumComments: l.NumComments,
		ID:          l.ID,
		Fullname:    l.Name,
		Saved:       l.Saved,
		Stickied:    l.Stickied,
		Locked:      l.Locked,
		Over18:      l.Over18,
	}
}

func formatPosts(l *reddit.Listing) []PostView {
	links := l.Links()
	res := make([]PostView, 0, len(links))
	for _, lnk := range links {
		res = append(res, formatPost(lnk))
	}
	return res
}

func formatComment(c reddit.CommentData) CommentView {
	res := CommentView{
		ID:       c.ID,
		Fullname: c.Name,
		Author:   c.Author,
		Body:     c.Body,
		BodyHTML: c.BodyHTML,
		Upvotes:  c.Ups,
		Created:  isoTime(c.CreatedUTC),
		Edited:   c.IsEdited(),
		Saved:    c.Saved,
		Stickied: c.Stickied,
		Replies:  []CommentView{},
	}
	if c.Permalink != "" {
		p := reddit.Permalink(c.Permalink)
		res.Permalink = &p
	}
	if replies := c.ReplyListing(); replies != nil {
		res.Replies = formatCommentTree(replies)
	}
	return res
}

// formatCommentTree formats t1 children and keeps "more" stubs as markers
func formatCommentTree(l *reddit.Listing) []CommentView {
	res := make([]CommentView, 0, len(l.Data.Children))
	for _, t := range l.Data.Children {
		if t.Kind != "t1" {
			res = append(res, CommentView{MoreComments: true})
			continue
		}
		var c reddit.CommentData
		if err := json.Unmarshal(t.Data, &c); err != nil {
			res = append(res, CommentView{MoreComments: true})
			continue
		}
		res = append(res, formatComment(c))
	}
	return res
}

func formatSubreddit(s reddit.SubredditData) SubredditView {
	return SubredditView{
		DisplayName:       s.DisplayName,
		Title:             s.Title,
		PublicDescription: s.PublicDescription,
		Subscribers:       s.Subscribers,
		Created:           isoTime(s.CreatedUTC),
		URL:               s.URL,
		Over18:            s.Over18,
		Description:       s.Description,
		IsDefault:         s.IsDefault,
		UserIsSubscriber:  s.UserIsSubscriber,
		UserIsBanned:      s.UserIsBanned,
		UserIsModerator:   s.UserIsModerator,
	}
}

func formatNotification(m messageData) NotificationView {
	return NotificationView{
		ID:         m.ID,
		Fullname:   m.Name,
		Type:       m.Type,
		Created:    isoTime(m.CreatedUTC),
		Context:    m.Context,
		Subject:    m.Subject,
		Body:       m.Body,
		LinkTitle:  m.LinkTitle,
		Subreddit:  m.Subreddit,
		WasComment: m.WasComment,
	}
}

// isoTime formats reddit's unix seconds as RFC3339 in UTC
func isoTime(utc float64) string {
	return time.Unix(int64(utc), 0).UTC().Format(time.RFC3339)
}

// optionalTime is isoTime with nil for zero
func optionalTime(utc float64) *string {
	if utc <= 0 {
		return nil
	}
	s := isoTime(utc)
	return &s
}
