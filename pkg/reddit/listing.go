package reddit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/redditbot/pkg/domain"
)

// Listing is the reddit listing envelope
type Listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Before   string  `json:"before"`
		Children []Thing `json:"children"`
	} `json:"data"`
}

// Thing is a single listing element, Data is decoded on demand by kind
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Link is the t3 payload
type Link struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Title                 string  `json:"title"`
	Selftext              string  `json:"selftext"`
	Author                string  `json:"author"`
	Subreddit             string  `json:"subreddit"`
	SubredditNamePrefixed string  `json:"subreddit_name_prefixed"`
	Permalink             string  `json:"permalink"`
	URL                   string  `json:"url"`
	Ups                   int     `json:"ups"`
	Score                 int     `json:"score"`
	NumComments           int     `json:"num_comments"`
	CreatedUTC            float64 `json:"created_utc"`
	Over18                bool    `json:"over_18"`
	IsVideo               bool    `json:"is_video"`
	PostHint              string  `json:"post_hint"`
	Saved                 bool    `json:"saved"`
	Stickied              bool    `json:"stickied"`
	Locked                bool    `json:"locked"`
}

// CommentData is the t1 payload
type CommentData struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Author                string          `json:"author"`
	Body                  string          `json:"body"`
	BodyHTML              string          `json:"body_html"`
	Subreddit             string          `json:"subreddit"`
	SubredditNamePrefixed string          `json:"subreddit_name_prefixed"`
	Permalink             string          `json:"permalink"`
	Ups                   int             `json:"ups"`
	Score                 int             `json:"score"`
	CreatedUTC            float64         `json:"created_utc"`
	Edited                json.RawMessage `json:"edited"` // false or a timestamp
	Saved                 bool            `json:"saved"`
	Stickied              bool            `json:"stickied"`
	Replies               json.RawMessage `json:"replies"` // "" or a listing
}

// SubredditData is the t5 payload
type SubredditData struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	DisplayName       string  `json:"display_name"`
	Title             string  `json:"title"`
	PublicDescription string  `json:"public_description"`
	Description       string  `json:"description"`
	Subscribers       int     `json:"subscribers"`
	CreatedUTC        float64 `json:"created_utc"`
	URL               string  `json:"url"`
	Over18            bool    `json:"over18"`
	IsDefault         bool    `json:"is_default"`
	UserIsSubscriber  bool    `json:"user_is_subscriber"`
	UserIsBanned      bool    `json:"user_is_banned"`
	UserIsModerator   bool    `json:"user_is_moderator"`
}

// Permalink makes an absolute reddit url from a relative permalink
func Permalink(p string) string {
	if p == "" || strings.HasPrefix(p, "http") {
		return p
	}
	return DefaultPublicURL + p
}

// Time converts reddit's float unix seconds
func Time(utc float64) time.Time {
	if utc <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(utc), 0).UTC()
}

// ParseListing decodes a listing body
func ParseListing(body []byte) (*Listing, error) {
	var l Listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &l, nil
}

// Links decodes all t3 children of the listing
func (l *Listing) Links() []Link {
	res := make([]Link, 0, len(l.Data.Children))
	for _, t := range l.Data.Children {
		if t.Kind != "t3" {
			continue
		}
		var lnk Link
		if err := json.Unmarshal(t.Data, &lnk); err != nil {
			continue
		}
		res = append(res, lnk)
	}
	return res
}

// Comments decodes all t1 children of the listing, "more" stubs are dropped
func (l *Listing) Comments() []CommentData {
	res := make([]CommentData, 0, len(l.Data.Children))
	for _, t := range l.Data.Children {
		if t.Kind != "t1" {
			continue
		}
		var c CommentData
		if err := json.Unmarshal(t.Data, &c); err != nil {
			continue
		}
		res = append(res, c)
	}
	return res
}

// Subreddits decodes all t5 children of the listing
func (l *Listing) Subreddits() []SubredditData {
	res := make([]SubredditData, 0, len(l.Data.Children))
	for _, t := range l.Data.Children {
		if t.Kind != "t5" {
			continue
		}
		var s SubredditData
		if err := json.Unmarshal(t.Data, &s); err != nil {
			continue
		}
		res = append(res, s)
	}
	return res
}

// ToPost converts a link to a live domain post
func (l Link) ToPost() domain.Post {
	return domain.Post{
		Kind:        domain.PostLive,
		ID:          l.ID,
		Fullname:    l.Name,
		Title:       l.Title,
		Body:        l.Selftext,
		Subreddit:   l.Subreddit,
		Author:      l.Author,
		Permalink:   Permalink(l.Permalink),
		URL:         l.URL,
		Score:       l.Score,
		NumComments: l.NumComments,
		Over18:      l.Over18,
		IsImage:     l.PostHint == "image",
		Created:     Time(l.CreatedUTC),
	}
}

// ToComment converts comment data to a domain comment
func (c CommentData) ToComment() domain.Comment {
	return domain.Comment{ID: c.ID, Fullname: c.Name, Author: c.Author, Body: c.Body, Score: c.Score}
}

// ToSubreddit converts subreddit data to a domain subreddit
func (s SubredditData) ToSubreddit() domain.Subreddit {
	return domain.Subreddit{Name: s.DisplayName, Fullname: s.Name, Title: s.Title,
		Subscribers: s.Subscribers, Over18: s.Over18}
}

// ReplyListing decodes the nested replies of a comment, nil when there are none
func (c CommentData) ReplyListing() *Listing {
	if len(c.Replies) == 0 || c.Replies[0] != '{' {
		return nil
	}
	var l Listing
	if err := json.Unmarshal(c.Replies, &l); err != nil {
		return nil
	}
	return &l
}

// IsEdited reports whether the comment was edited, reddit sends false or a timestamp
func (c CommentData) IsEdited() bool {
	s := string(c.Edited)
	return s != "" && s != "false" && s != "null"
}
