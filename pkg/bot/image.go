package bot

import (
	"strings"

	"github.com/umputun/redditbot/pkg/domain"
)

// phrases marking posts that need the picture to be answered
var imageKeywords = func() []string {
	res := []string{"image", "photo", "picture", "pic", "look at", "see this", "check out this image",
		"look at this photo", "look at this pic", "what do you see"}
	for _, w := range []string{"image", "photo", "picture", "pic"} {
		res = append(res, "what do you think of this "+w, "what's in this "+w)
	}
	return res
}()

// imageRelated reports whether the post is an image post or asks about a picture
func imageRelated(p domain.Post) bool {
	if p.IsImage {
		return true
	}
	text := strings.ToLower(p.Title + " " + p.Body)
	for _, kw := range imageKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
