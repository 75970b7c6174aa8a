package domain

import "time"

// Action is the kind of interaction recorded by the bot
type Action string

// enum of recorded actions
const (
	ActionReply  Action = "reply"
	ActionUpvote Action = "upvote"
	ActionSkip   Action = "skip"
)

// Interaction is a single record of the interaction log
type Interaction struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Subreddit string    `json:"subreddit"`
	PostID    string    `json:"post_id,omitempty"`
	CommentID string    `json:"comment_id,omitempty"`
	Content   string    `json:"content,omitempty"`
}
