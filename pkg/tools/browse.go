package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/umputun/redditbot/pkg/reddit"
)

var (
	postSorts    = []string{"hot", "new", "rising", "top", "controversial"}
	commentSorts = []string{"confidence", "top", "new", "controversial", "old", "qa"}
	searchSorts  = []string{"relevance", "hot", "top", "new", "comments"}
	userSorts    = []string{"new", "hot", "top", "controversial"}
	timeFilters  = []string{"hour", "day", "week", "month", "year", "all"}
)

func (s *Service) browseTools() []Tool {
	return []Tool{
		{
			Name:        "browse_subreddit",
			Description: "Browse posts from a specific subreddit",
			Params: []Param{
				{Name: "subreddit", Type: TypeString, Description: "Name of the subreddit (without r/)", Required: true},
				{Name: "sort", Type: TypeString, Description: "Sort method for posts", Enum: postSorts},
				{Name: "limit", Type: TypeNumber, Description: "Number of posts to return (max 25)"},
				{Name: "time", Type: TypeString, Description: "Time period for 'top' or 'controversial' sorting", Enum: timeFilters},
			},
			Handler: s.browseSubreddit,
		},
		{
			Name:        "get_post",
			Description: "Get a specific Reddit post and its comments",
			Params: []Param{
				{Name: "post_id", Type: TypeString, Description: "Reddit post ID (usually a 6-character alphanumeric string)", Required: true},
				{Name: "subreddit", Type: TypeString, Description: "Subreddit containing the post (without r/)", Required: true},
				{Name: "comment_sort", Type: TypeString, Description: "Sort method for comments", Enum: commentSorts},
				{Name: "comment_limit", Type: TypeNumber, Description: "Number of comments to return (max 25)"},
			},
			Handler: s.getPost,
		},
		{
			Name:        "search_reddit",
			Description: "Search Reddit for posts matching a query",
			Params: []Param{
				{Name: "query", Type: TypeString, Description: "Search query", Required: true},
				{Name: "subreddit", Type: TypeString, Description: "Limit search to a specific subreddit (optional, without r/)"},
				{Name: "sort", Type: TypeString, Description: "Sort method for search results", Enum: searchSorts},
				{Name: "time", Type: TypeString, Description: "Time period for results", Enum: timeFilters},
				{Name: "limit", Type: TypeNumber, Description: "Number of results to return (max 25)"},
			},
			Handler: s.searchReddit,
		},
		{
			Name:        "get_user_profile",
			Description: "Get information about a Reddit user and their recent posts/comments",
			Params: []Param{
				{Name: "username", Type: TypeString, Description: "Reddit username (without u/)", Required: true},
				{Name: "sort", Type: TypeString, Description: "Sort method for user's posts/comments", Enum: userSorts},
				{Name: "limit", Type: TypeNumber, Description: "Number of posts/comments to return (max 25)"},
			},
			Handler: s.getUserProfile,
		},
		{
			Name:        "get_subreddit_rules",
			Description: "Get the rules for a subreddit",
			Params: []Param{
				{Name: "subreddit", Type: TypeString, Description: "Name of the subreddit (without r/)", Required: true},
			},
			Handler: s.getSubredditRules,
		},
		{
			Name:        "get_subreddit_info",
			Description: "Get detailed information about a subreddit",
			Params: []Param{
				{Name: "subreddit", Type: TypeString, Description: "Name of the subreddit (without r/)", Required: true},
			},
			Handler: s.getSubredditInfo,
		},
		{
			Name:        "get_trending_subreddits",
			Description: "Get a list of currently trending subreddits",
			Handler:     s.getTrendingSubreddits,
		},
		{
			Name:        "get_subreddit_moderators",
			Description: "Get the list of moderators for a subreddit",
			Params: []Param{
				{Name: "subreddit", Type: TypeString, Description: "Name of the subreddit (without r/)", Required: true},
			},
			Handler: s.getSubredditModerators,
		},
		{
			Name:        "get_user_trophies",
			Description: "Get trophies for a Reddit user",
			Params: []Param{
				{Name: "username", Type: TypeString, Description: "Reddit username (without u/)", Required: true},
			},
			Handler: s.getUserTrophies,
		},
	}
}

func (s *Service) browseSubreddit(ctx context.Context, a Args) (any, error) {
	sub := a.String("subreddit", "")
	if sub == "" {
		return nil, errorf("Subreddit name is required.")
	}
	sort := a.String("sort", "hot")
	if !oneOf(sort, postSorts...) {
		return nil, errorf("Unsupported sort '%s'.", sort)
	}

	q := url.Values{"limit": {itoa(a.Limit("limit", 10, 25))}}
	if sort == "top" || sort == "controversial" {
		q.Set("t", a.String("time", "day"))
	}
	l, err := s.listing(ctx, subPath(sub, sort), q)
	if err != nil {
		return nil, err
	}
	posts := formatPosts(l)
	if len(posts) == 0 {
		return nil, errorf("Couldn't find subreddit r/%s or it has no posts.", sub)
	}

	return struct {
		Subreddit string     `json:"subreddit"`
		Sort      string     `json:"sort"`
		Posts     []PostView `json:"posts"`
	}{Subreddit: "r/" + sub, Sort: sort, Posts: posts}, nil
}

func (s *Service) getPost(ctx context.Context, a Args) (any, error) {
	postID, sub := a.String("post_id", ""), a.String("subreddit", "")
	if postID == "" || sub == "" {
		return nil, errorf("Both post_id and subreddit are required.")
	}
	q := url.Values{
		"sort":  {a.String("comment_sort", "confidence")},
		"limit": {itoa(a.Limit("comment_limit", 10, 25))},
	}

	var listings []reddit.Listing
	if err := s.getJSON(ctx, subPath(sub, "comments", postID), q, &listings); err != nil {
		return nil, err
	}
	if len(listings) == 0 || len(listings[0].Links()) == 0 {
		return nil, errorf("Couldn't find post with ID %s in r/%s.", postID, sub)
	}

	comments := []CommentView{}
	if len(listings) > 1 {
		comments = formatCommentTree(&listings[1])
	}
	return struct {
		Post     PostView      `json:"post"`
		Comments []CommentView `json:"comments"`
	}{Post: formatPost(listings[0].Links()[0]), Comments: comments}, nil
}

func (s *Service) searchReddit(ctx context.Context, a Args) (any, error) {
	query := a.String("query", "")
	if query == "" {
		return nil, errorf("Search query is required.")
	}
	sub := a.String("subreddit", "")
	sort, period := a.String("sort", "relevance"), a.String("time", "all")

	q := url.Values{"q": {query}, "sort": {sort}, "t": {period}, "limit": {itoa(a.Limit("limit", 10, 25))}}
	path, scope := "/search", "all of Reddit"
	if sub != "" {
		path, scope = subPath(sub, "search"), "r/"+sub
		q.Set("restrict_sr", "1")
	}

	l, err := s.listing(ctx, path, q)
	if err != nil {
		return nil, err
	}
	results := formatPosts(l)
	if len(results) == 0 {
		return nil, errorf("Search failed or returned no results.")
	}
	return struct {
		Query     string     `json:"query"`
		Subreddit string     `json:"subreddit"`
		Sort      string     `json:"sort"`
		Time      string     `json:"time"`
		Results   []PostView `json:"results"`
	}{Query: query, Subreddit: scope, Sort: sort, Time: period, Results: results}, nil
}

type userContent struct {
	Type      string `json:"type"`
	Subreddit string `json:"subreddit"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body,omitempty"`
	URL       string `json:"url"`
	Created   string `json:"created"`
	Upvotes   int    `json:"upvotes"`
}

func (s *Service) getUserProfile(ctx context.Context, a Args) (any, error) {
	username := a.String("username", "")
	if username == "" {
		return nil, errorf("Username is required.")
	}

	var about struct {
		Data struct {
			Name             string  `json:"name"`
			LinkKarma        int     `json:"link_karma"`
			CommentKarma     int     `json:"comment_karma"`
			TotalKarma       int     `json:"total_karma"`
			CreatedUTC       float64 `json:"created_utc"`
			IsMod            bool    `json:"is_mod"`
			HasVerifiedEmail bool    `json:"has_verified_email"`
		} `json:"data"`
	}
	userPath := "/user/" + url.PathEscape(username)
	if err := s.getJSON(ctx, userPath+"/about", nil, &about); err != nil {
		return nil, err
	}
	if about.Data.Name == "" {
		return nil, errorf("Couldn't find user u/%s.", username)
	}

	q := url.Values{"sort": {a.String("sort", "new")}, "limit": {itoa(a.Limit("limit", 10, 25))}}
	l, err := s.listing(ctx, userPath+"/overview", q)
	if err != nil {
		return nil, err
	}
	content := []userContent{}
	for _, t := range l.Data.Children {
		var d struct {
			Title                 string  `json:"title"`
			Body                  string  `json:"body"`
			SubredditNamePrefixed string  `json:"subreddit_name_prefixed"`
			Permalink             string  `json:"permalink"`
			CreatedUTC            float64 `json:"created_utc"`
			Ups                   int     `json:"ups"`
		}
		if err := json.Unmarshal(t.Data, &d); err != nil {
			continue
		}
		item := userContent{Type: "comment", Subreddit: d.SubredditNamePrefixed, Body: d.Body,
			URL: reddit.Permalink(d.Permalink), Created: isoTime(d.CreatedUTC), Upvotes: d.Ups}
		if d.Title != "" {
			item.Type, item.Title, item.Body = "post", d.Title, ""
		}
		content = append(content, item)
	}

	type karma struct {
		Post    int `json:"post"`
		Comment int `json:"comment"`
		Total   int `json:"total"`
	}
	return struct {
		Username         string        `json:"username"`
		Karma            karma         `json:"karma"`
		Created          string        `json:"created"`
		IsMod            bool          `json:"is_mod"`
		HasVerifiedEmail bool          `json:"has_verified_email"`
		Content          []userContent `json:"content"`
	}{
		Username:         about.Data.Name,
		Karma:            karma{Post: about.Data.LinkKarma, Comment: about.Data.CommentKarma, Total: about.Data.TotalKarma},
		Created:          isoTime(about.Data.CreatedUTC),
		IsMod:            about.Data.IsMod,
		HasVerifiedEmail: about.Data.HasVerifiedEmail,
		Content:          content,
	}, nil
}

type rule struct {
	Priority        int    `json:"priority"`
	ShortName       string `json:"short_name"`
	Description     string `json:"description"`
	ViolationReason string `json:"violation_reason"`
}

func (s *Service) getSubredditRules(ctx context.Context, a Args) (any, error) {
	sub := a.String("subreddit", "")
	if sub == "" {
		return nil, errorf("Subreddit name is required.")
	}
	var resp struct {
		Rules     []rule   `json:"rules"`
		SiteRules []string `json:"site_rules"`
	}
	if err := s.getJSON(ctx, subPath(sub, "about", "rules"), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Rules) == 0 {
		return nil, errorf("Couldn't fetch rules for r/%s or subreddit does not exist.", sub)
	}
	return struct {
		Subreddit string   `json:"subreddit"`
		Rules     []rule   `json:"rules"`
		SiteRules []string `json:"site_rules,omitempty"`
	}{Subreddit: "r/" + sub, Rules: resp.Rules, SiteRules: resp.SiteRules}, nil
}

// about returns the subreddit's about data, display name is empty if reddit doesn't know it
func (s *Service) about(ctx context.Context, sub string) (reddit.SubredditData, error) {
	var resp struct {
		Data reddit.SubredditData `json:"data"`
	}
	if err := s.getJSON(ctx, subPath(sub, "about"), nil, &resp); err != nil {
		return reddit.SubredditData{}, err
	}
	return resp.Data, nil
}

func (s *Service) getSubredditInfo(ctx context.Context, a Args) (any, error) {
	sub := a.String("subreddit", "")
	if sub == "" {
		return nil, errorf("Subreddit name is required.")
	}
	data, err := s.about(ctx, sub)
	if err != nil {
		return nil, err
	}
	if data.DisplayName == "" {
		return nil, errorf("Couldn't find subreddit r/%s.", sub)
	}
	return formatSubreddit(data), nil
}

func (s *Service) getTrendingSubreddits(ctx context.Context, _ Args) (any, error) {
	var resp struct {
		SubredditNames []string `json:"subreddit_names"`
		Comment        string   `json:"comment"`
	}
	if err := s.getJSON(ctx, "/api/trending_subreddits", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.SubredditNames) == 0 {
		return nil, errorf("Couldn't retrieve trending subreddits.")
	}
	return struct {
		TrendingSubreddits []string `json:"trending_subreddits"`
		TrendingTimestamp  string   `json:"trending_timestamp"`
	}{TrendingSubreddits: resp.SubredditNames, TrendingTimestamp: resp.Comment}, nil
}

type moderator struct {
	Name            string   `json:"name"`
	AuthorFlairText string   `json:"author_flair_text"`
	ModPermissions  []string `json:"mod_permissions"`
	Date            *string  `json:"date"`
}

func (s *Service) getSubredditModerators(ctx context.Context, a Args) (any, error) {
	sub := a.String("subreddit", "")
	if sub == "" {
		return nil, errorf("Subreddit name is required.")
	}
	var resp struct {
		Data struct {
			Children []struct {
				Name            string   `json:"name"`
				AuthorFlairText string   `json:"author_flair_text"`
				ModPermissions  []string `json:"mod_permissions"`
				Date            float64  `json:"date"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := s.getJSON(ctx, subPath(sub, "about", "moderators"), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data.Children) == 0 {
		return nil, errorf("Couldn't retrieve moderators for r/%s.", sub)
	}

	mods := make([]moderator, 0, len(resp.Data.Children))
	for _, m := range resp.Data.Children {
		perms := m.ModPermissions
		if perms == nil {
			perms = []string{}
		}
		mods = append(mods, moderator{Name: m.Name, AuthorFlairText: m.AuthorFlairText, ModPermissions: perms,
			Date: optionalTime(m.Date)})
	}
	return struct {
		Subreddit  string      `json:"subreddit"`
		Moderators []moderator `json:"moderators"`
	}{Subreddit: "r/" + sub, Moderators: mods}, nil
}

type trophy struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AwardID     string  `json:"award_id"`
	GrantedAt   *string `json:"granted_at"`
}

func (s *Service) getUserTrophies(ctx context.Context, a Args) (any, error) {
	username := a.String("username", "")
	if username == "" {
		return nil, errorf("Username is required.")
	}
	var resp struct {
		Data struct {
			Trophies []struct {
				Data *struct {
					Name        string  `json:"name"`
					Description string  `json:"description"`
					AwardID     string  `json:"award_id"`
					GrantedAt   float64 `json:"granted_at"`
				} `json:"data"`
			} `json:"trophies"`
		} `json:"data"`
	}
	if err := s.getJSON(ctx, "/api/v1/user/"+url.PathEscape(username)+"/trophies", nil, &resp); err != nil {
		return nil, err
	}

	trophies := []trophy{}
	for _, t := range resp.Data.Trophies {
		if t.Data == nil {
			continue
		}
		trophies = append(trophies, trophy{Name: t.Data.Name, Description: t.Data.Description,
			AwardID: t.Data.AwardID, GrantedAt: optionalTime(t.Data.GrantedAt)})
	}
	if len(trophies) == 0 {
		return Text(fmt.Sprintf("No trophies found for u/%s.", username)), nil
	}
	return struct {
		Username    string   `json:"username"`
		TrophyCount int      `json:"trophy_count"`
		Trophies    []trophy `json:"trophies"`
	}{Username: username, TrophyCount: len(trophies), Trophies: trophies}, nil
}
