package domain

import "time"

// PostKind tags where a post came from
type PostKind int

// enum of post kinds
const (
	PostLive      PostKind = iota // fetched from reddit
	PostSynthetic                 // generated locally for dry runs
)

// Post is a reddit submission. Synthetic posts share the same shape as live ones,
// callers check Synthetic() before doing anything that needs reddit to know the post.
type Post struct {
	Kind        PostKind
	ID          string
	Fullname    string // t3_<id>
	Title       string
	Body        string
	Subreddit   string
	Author      string
	Permalink   string
	URL         string
	Score       int
	NumComments int
	Over18      bool
	IsImage     bool
	Created     time.Time
}

// Synthetic reports whether the post was generated locally
func (p Post) Synthetic() bool {
	return p.Kind == PostSynthetic
}

// Empty reports whether the post has neither title nor body
func (p Post) Empty() bool {
	return p.Title == "" && p.Body == ""
}

// Comment is a reddit comment
type Comment struct {
	ID       string
	Fullname string // t1_<id>
	Author   string
	Body     string
	Score    int
}

// Subreddit is a reddit community as returned by search
type Subreddit struct {
	Name        string
	Fullname    string // t5_<id>
	Title       string
	Subscribers int
	Over18      bool
}
