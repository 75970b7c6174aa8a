package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/umputun/redditbot/pkg/reddit"
)

// notificationPaths maps notification filters to inbox endpoints
var notificationPaths = map[string]string{
	"all":      "/message/inbox",
	"unread":   "/message/unread",
	"messages": "/message/messages",
	"comments": "/message/comments",
	"posts":    "/message/selfreply",
	"mentions": "/message/mentions",
}

func (s *Service) accountTools() []Tool {
	subreddit := Param{Name: "subreddit", Type: TypeString, Description: "Name of the subreddit (without r/)", Required: true}
	return []Tool{
		{
			Name:        "get_saved_content",
			Description: "Get the posts and comments saved by the current user",
			Params: []Param{
				{Name: "limit", Type: TypeNumber, Description: "Number of items to return (max 100)"},
			},
			Handler: s.getSavedContent,
		},
		{
			Name:        "subscribe_to_subreddit",
			Description: "Subscribe to a subreddit",
			Params:      []Param{subreddit},
			Handler:     s.subscribe,
		},
		{
			Name:        "unsubscribe_from_subreddit",
			Description: "Unsubscribe from a subreddit",
			Params:      []Param{subreddit},
			Handler:     s.unsubscribe,
		},
		{
			Name:        "get_subscribed_subreddits",
			Description: "Get the subreddits the current user is subscribed to",
			Params: []Param{
				{Name: "limit", Type: TypeNumber, Description: "Number of subreddits to return (max 100)"},
			},
			Handler: s.getSubscribedSubreddits,
		},
		{
			Name:        "edit_user_profile",
			Description: "Update the current user's profile settings",
			Params: []Param{
				{Name: "about", Type: TypeString, Description: "New profile description"},
				{Name: "display_name", Type: TypeString, Description: "New display name"},
			},
			Handler: s.editUserProfile,
		},
		{
			Name:        "get_notifications",
			Description: "Get the current user's inbox notifications",
			Params: []Param{
				{Name: "filter", Type: TypeString, Description: "Type of notifications to return",
					Enum: []string{"all", "unread", "messages", "comments", "posts", "mentions"}},
				{Name: "limit", Type: TypeNumber, Description: "Number of notifications to return (max 100)"},
			},
			Handler: s.getNotifications,
		},
		{
			Name:        "mark_notifications_read",
			Description: "Mark notifications as read",
			Params: []Param{
				{Name: "thing_ids", Type: TypeArray, Description: "Full IDs of the notifications to mark as read", Required: true},
			},
			Handler: s.markNotificationsRead,
		},
		{
			Name:        "send_private_message",
			Description: "Send a private message to another user",
			Params: []Param{
				{Name: "to", Type: TypeString, Description: "Recipient username (without u/)", Required: true},
				{Name: "subject", Type: TypeString, Description: "Message subject", Required: true},
				{Name: "text", Type: TypeString, Description: "Message body (markdown supported)", Required: true},
			},
			Handler: s.sendPrivateMessage,
		},
	}
}

func (s *Service) getSavedContent(ctx context.Context, a Args) (any, error) {
	username, err := s.username(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{"limit": {itoa(a.Limit("limit", 25, 100))}}
	l, err := s.listing(ctx, "/user/"+url.PathEscape(username)+"/saved", q)
	if err != nil {
		return nil, err
	}

	items := []any{}
	for _, t := range l.Data.Children {
		switch t.Kind {
		case "t3":
			var lnk reddit.Link
			if err := json.Unmarshal(t.Data, &lnk); err == nil {
				items = append(items, formatPost(lnk))
			}
		case "t1":
			var c reddit.CommentData
			if err := json.Unmarshal(t.Data, &c); err == nil {
				items = append(items, formatComment(c))
			}
		}
	}
	if len(items) == 0 {
		return Text("No saved content found."), nil
	}
	return struct {
		Count int   `json:"count"`
		Items []any `json:"items"`
	}{Count: len(items), Items: items}, nil
}

func (s *Service) subscribe(ctx context.Context, a Args) (any, error) {
	return s.subscription(ctx, a, "sub")
}

func (s *Service) unsubscribe(ctx context.Context, a Args) (any, error) {
	return s.subscription(ctx, a, "unsub")
}

// subscription resolves the subreddit fullname and sends the subscribe action
func (s *Service) subscription(ctx context.Context, a Args, action string) (any, error) {
	sub := a.String("subreddit", "")
	if sub == "" {
		return nil, errorf("Subreddit name is required.")
	}
	data, err := s.about(ctx, sub)
	if err != nil {
		return nil, err
	}
	if data.Name == "" {
		return nil, errorf("Couldn't find subreddit r/%s.", sub)
	}
	if err := s.post(ctx, "/api/subscribe", url.Values{"action": {action}, "sr": {data.Name}}, nil); err != nil {
		return nil, err
	}
	if action == "sub" {
		return success("Successfully subscribed to r/%s", sub), nil
	}
	return success("Successfully unsubscribed from r/%s", sub), nil
}

func (s *Service) getSubscribedSubreddits(ctx context.Context, a Args) (any, error) {
	q := url.Values{"limit": {itoa(a.Limit("limit", 100, 100))}}
	l, err := s.listing(ctx, "/subreddits/mine/subscriber", q)
	if err != nil {
		return nil, err
	}
	subs := l.Subreddits()
	if len(subs) == 0 {
		return Text("No subscribed subreddits found."), nil
	}
	res := make([]SubredditView, 0, len(subs))
	for _, sd := range subs {
		res = append(res, formatSubreddit(sd))
	}
	return struct {
		Count      int             `json:"count"`
		Subreddits []SubredditView `json:"subreddits"`
	}{Count: len(res), Subreddits: res}, nil
}

func (s *Service) editUserProfile(ctx context.Context, a Args) (any, error) {
	form := url.Values{}
	for _, k := range []string{"about", "display_name"} {
		if v := a.String(k, ""); v != "" {
			form.Set(k, v)
		}
	}
	if len(form) == 0 {
		return nil, errorf("At least one field (about or display_name) is required.")
	}
	if _, err := s.session.Patch(ctx, "/api/v1/me/prefs", form); err != nil {
		return nil, err
	}
	return success("User profile has been updated."), nil
}

func (s *Service) getNotifications(ctx context.Context, a Args) (any, error) {
	filter := a.String("filter", "all")
	path, ok := notificationPaths[filter]
	if !ok {
		path = notificationPaths["all"]
	}
	l, err := s.listing(ctx, path, url.Values{"limit": {itoa(a.Limit("limit", 25, 100))}})
	if err != nil {
		return nil, err
	}

	res := []NotificationView{}
	for _, t := range l.Data.Children {
		var m messageData
		if err := json.Unmarshal(t.Data, &m); err != nil {
			continue
		}
		if m.Type == "" {
			m.Type = t.Kind
		}
		res = append(res, formatNotification(m))
	}
	if len(res) == 0 {
		return Text(fmt.Sprintf("No notifications found with filter '%s'.", filter)), nil
	}
	return struct {
		Filter        string             `json:"filter"`
		Count         int                `json:"count"`
		Notifications []NotificationView `json:"notifications"`
	}{Filter: filter, Count: len(res), Notifications: res}, nil
}

func (s *Service) markNotificationsRead(ctx context.Context, a Args) (any, error) {
	ids := a.Strings("thing_ids")
	if len(ids) == 0 {
		return nil, errorf("At least one thing_id is required.")
	}
	if err := s.post(ctx, "/api/read_message", url.Values{"id": {strings.Join(ids, ",")}}, nil); err != nil {
		return nil, err
	}
	return success("Marked %d notifications as read.", len(ids)), nil
}

func (s *Service) sendPrivateMessage(ctx context.Context, a Args) (any, error) {
	to, subject, text := a.String("to", ""), a.String("subject", ""), a.String("text", "")
	if to == "" || subject == "" || text == "" {
		return nil, errorf("'to', 'subject', and 'text' are all required fields.")
	}
	form := url.Values{"to": {to}, "subject": {subject}, "text": {text}, "api_type": {"json"}}
	if err := s.post(ctx, "/api/compose", form, nil); err != nil {
		return nil, err
	}
	return success("Message sent to u/%s", to), nil
}
