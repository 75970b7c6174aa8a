package tools

import (
	"context"
	"net/url"

	"github.com/umputun/redditbot/pkg/reddit"
)

func (s *Service) contentTools() []Tool {
	thingID := Param{Name: "thing_id", Type: TypeString, Description: "Full ID of the post or comment (e.g. t3_abc123 or t1_def456)", Required: true}
	return []Tool{
		{
			Name:        "submit_post",
			Description: "Submit a new post to a subreddit",
			Params: []Param{
				{Name: "subreddit", Type: TypeString, Description: "Subreddit to post to (without r/)", Required: true},
				{Name: "title", Type: TypeString, Description: "Title of the post", Required: true},
				{Name: "text", Type: TypeString, Description: "Text content for a self post"},
				{Name: "url", Type: TypeString, Description: "URL for a link post"},
				{Name: "flair_id", Type: TypeString, Description: "Flair template ID (optional)"},
				{Name: "flair_text", Type: TypeString, Description: "Flair text (optional)"},
			},
			Handler: s.submitPost,
		},
		{
			Name:        "submit_comment",
			Description: "Submit a comment on a post or reply to another comment",
			Params: []Param{
				{Name: "thing_id", Type: TypeString, Description: "Full ID of the post or comment to reply to (e.g. t3_abc123 or t1_def456)", Required: true},
				{Name: "text", Type: TypeString, Description: "Comment text (markdown supported)", Required: true},
			},
			Handler: s.submitComment,
		},
		{
			Name:        "vote",
			Description: "Vote on a post or comment",
			Params: []Param{
				thingID,
				{Name: "direction", Type: TypeNumber, Description: "Vote direction: 1 (upvote), 0 (remove vote), -1 (downvote)", Required: true},
			},
			Handler: s.vote,
		},
		{
			Name:        "save_content",
			Description: "Save a post or comment",
			Params:      []Param{thingID},
			Handler:     s.saveContent,
		},
		{
			Name:        "unsave_content",
			Description: "Unsave a previously saved post or comment",
			Params:      []Param{thingID},
			Handler:     s.unsaveContent,
		},
		{
			Name:        "edit_content",
			Description: "Edit a post or comment you authored",
			Params: []Param{
				thingID,
				{Name: "text", Type: TypeString, Description: "New text content", Required: true},
			},
			Handler: s.editContent,
		},
		{
			Name:        "delete_content",
			Description: "Delete a post or comment you authored",
			Params:      []Param{thingID},
			Handler:     s.deleteContent,
		},
		{
			Name:        "report_content",
			Description: "Report a post or comment to the moderators",
			Params: []Param{
				thingID,
				{Name: "reason", Type: TypeString, Description: "Reason for the report", Required: true},
			},
			Handler: s.reportContent,
		},
	}
}

func (s *Service) submitPost(ctx context.Context, a Args) (any, error) {
	sub, title := a.String("subreddit", ""), a.String("title", "")
	if sub == "" {
		return nil, errorf("Subreddit name is required.")
	}
	if title == "" {
		return nil, errorf("Title is required for posting.")
	}

	form := url.Values{"sr": {sub}, "title": {title}, "api_type": {"json"}}
	if link := a.String("url", ""); link != "" {
		form.Set("kind", "link")
		form.Set("url", link)
	} else {
		form.Set("kind", "self")
		form.Set("text", a.String("text", ""))
	}
	for _, k := range []string{"flair_id", "flair_text"} {
		if v := a.String(k, ""); v != "" {
			form.Set(k, v)
		}
	}

	var resp struct {
		JSON struct {
			Data struct {
				URL  string `json:"url"`
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := s.post(ctx, "/api/submit", form, &resp); err != nil {
		return nil, err
	}
	if resp.JSON.Data.URL == "" {
		return success("Post appears to have been submitted, but no confirmation URL was returned."), nil
	}
	return struct {
		Status  string `json:"status"`
		PostURL string `json:"post_url"`
		ID      string `json:"id"`
		Name    string `json:"name"`
	}{Status: "success", PostURL: resp.JSON.Data.URL, ID: resp.JSON.Data.ID, Name: resp.JSON.Data.Name}, nil
}

func (s *Service) submitComment(ctx context.Context, a Args) (any, error) {
	thingID, text := a.String("thing_id", ""), a.String("text", "")
	if thingID == "" || text == "" {
		return nil, errorf("Both thing_id and text are required for commenting.")
	}

	var resp struct {
		JSON struct {
			Data struct {
				Things []struct {
					Data struct {
						ID        string `json:"id"`
						Name      string `json:"name"`
						Permalink string `json:"permalink"`
					} `json:"data"`
				} `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	form := url.Values{"thing_id": {thingID}, "text": {text}, "api_type": {"json"}}
	if err := s.post(ctx, "/api/comment", form, &resp); err != nil {
		return nil, err
	}
	if len(resp.JSON.Data.Things) == 0 {
		return success("Comment appears to have been submitted."), nil
	}

	c := resp.JSON.Data.Things[0].Data
	var permalink *string
	if c.Permalink != "" {
		p := reddit.Permalink(c.Permalink)
		permalink = &p
	}
	return struct {
		Status    string  `json:"status"`
		CommentID string  `json:"comment_id"`
		Permalink *string `json:"permalink"`
	}{Status: "success", CommentID: c.ID, Permalink: permalink}, nil
}

func (s *Service) vote(ctx context.Context, a Args) (any, error) {
	thingID := a.String("thing_id", "")
	dir, ok := a.intValue("direction")
	if thingID == "" || !ok || dir < -1 || dir > 1 {
		return nil, errorf("Both thing_id and a valid direction (1, 0, or -1) are required for voting.")
	}
	if err := s.post(ctx, "/api/vote", url.Values{"id": {thingID}, "dir": {itoa(dir)}}, nil); err != nil {
		return nil, err
	}
	action := map[int]string{1: "up", 0: "removed", -1: "down"}[dir]
	return success("Vote %s on %s", action, thingID), nil
}

func (s *Service) saveContent(ctx context.Context, a Args) (any, error) {
	return s.simpleAction(ctx, a, "/api/save", "saved")
}

func (s *Service) unsaveContent(ctx context.Context, a Args) (any, error) {
	return s.simpleAction(ctx, a, "/api/unsave", "unsaved")
}

func (s *Service) deleteContent(ctx context.Context, a Args) (any, error) {
	return s.simpleAction(ctx, a, "/api/del", "deleted")
}

// simpleAction posts id=thing_id to path and reports "Content with ID x has been <done>."
func (s *Service) simpleAction(ctx context.Context, a Args, path, done string) (any, error) {
	thingID := a.String("thing_id", "")
	if thingID == "" {
		return nil, errorf("thing_id is required.")
	}
	if err := s.post(ctx, path, url.Values{"id": {thingID}}, nil); err != nil {
		return nil, err
	}
	return success("Content with ID %s has been %s.", thingID, done), nil
}

func (s *Service) editContent(ctx context.Context, a Args) (any, error) {
	thingID, text := a.String("thing_id", ""), a.String("text", "")
	if thingID == "" || text == "" {
		return nil, errorf("Both thing_id and text are required for editing.")
	}
	form := url.Values{"thing_id": {thingID}, "text": {text}, "api_type": {"json"}}
	if err := s.post(ctx, "/api/editusertext", form, nil); err != nil {
		return nil, err
	}
	return success("Content with ID %s has been edited.", thingID), nil
}

func (s *Service) reportContent(ctx context.Context, a Args) (any, error) {
	thingID, reason := a.String("thing_id", ""), a.String("reason", "")
	if thingID == "" || reason == "" {
		return nil, errorf("Both thing_id and reason are required for reporting.")
	}
	form := url.Values{"thing_id": {thingID}, "reason": {reason}, "api_type": {"json"}}
	if err := s.post(ctx, "/api/report", form, nil); err != nil {
		return nil, err
	}
	return success("Content with ID %s has been reported.", thingID), nil
}
