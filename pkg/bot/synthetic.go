package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/umputun/redditbot/pkg/domain"
)

// canned posts for dry runs, picked by subreddit name
var syntheticSets = []struct {
	match string
	posts [][3]string // id, title, body
}{
	{"slime", [][3]string{
		{"mock1", "My first slime creation!", "I just made my first slime and it turned out great! Used glue, borax, and food coloring."},
		{"mock2", "Help with slime recipe", "My slime keeps turning out too sticky. What am I doing wrong?"},
	}},
	{"craft", [][3]string{
		{"mock3", "Paper craft ideas for kids", "Looking for simple paper craft ideas for a 5-year-old. Any suggestions?"},
		{"mock4", "My latest knitting project", "Just finished this sweater for my daughter. What do you think?"},
	}},
	{"parent", [][3]string{
		{"mock5", "Activities for rainy days", "What do you do with your kids when you're stuck inside on rainy days?"},
		{"mock6", "Bedtime routine help", "My 3-year-old refuses to go to bed. Any tips for establishing a good bedtime routine?"},
	}},
	{"", [][3]string{
		{"mock7", "Organization tips", "How do you keep your kids' toys organized?"},
		{"mock8", "DIY toy repair", "My kid's favorite toy broke. Any ideas for fixing it?"},
	}},
}

// syntheticPosts returns up to n canned posts matching the subreddit
func syntheticPosts(sub string, n int) []domain.Post {
	name := strings.ToLower(sub)
	for _, set := range syntheticSets {
		if !strings.Contains(name, set.match) {
			continue
		}
		res := make([]domain.Post, 0, len(set.posts))
		for _, p := range set.posts {
			if n > 0 && len(res) >= n {
				break
			}
			res = append(res, domain.Post{
				Kind:      domain.PostSynthetic,
				ID:        p[0],
				Fullname:  "t3_" + p[0],
				Title:     p[1],
				Body:      p[2],
				Subreddit: sub,
				Author:    "mock_user",
				Created:   time.Now().UTC(),
			})
		}
		return res
	}
	return []domain.Post{}
}

// syntheticComments returns n canned comments of a synthetic post
func syntheticComments(post domain.Post, n int) []domain.Comment {
	res := make([]domain.Comment, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("mockcomment%s_%d", post.ID, i)
		res = append(res, domain.Comment{ID: id, Fullname: "t1_" + id, Author: "mock_user", Body: "Great post!"})
	}
	return res
}
