// Package filter decides whether a generated reply is fit to be posted.
package filter

import (
	"strings"

	log "github.com/go-pkgz/lgr"
)

// Scorer estimates sentiment polarity of a text in [-1, 1]
type Scorer interface {
	Polarity(text string) float64
}

// defaultDenylist rejects replies containing any of these, matched as case-insensitive substrings
var defaultDenylist = []string{
	"no idea", "don't know", "not sure", "can't help", "sorry", "don't understand",
	"what are you talking about", "confused", "negative", "bad", "terrible", "awful",
	"hate", "dislike", "stupid", "dumb", "idiot", "fool", "wrong", "incorrect",
	"waste", "boring", "lame", "weird", "strange", "odd", "not good", "not great",
	"not worth", "wouldn't", "shouldn't", "can't stand", "annoying", "irritating",
	"frustrating", "wtf", "what the", "huh?", "eh?", "um", "uh",
}

// questions are allowed only when they carry one of these
var defaultQuestionMarkers = []string{"cool", "awesome", "nice", "love", "great"}

// Filter accepts or rejects replies. The zero value is not usable, use New.
type Filter struct {
	Scorer          Scorer
	MinPolarity     float64
	MinWords        int
	Denylist        []string
	QuestionMarkers []string
}

// New makes a filter with the VADER scorer and default rules
func New() *Filter {
	return &Filter{
		Scorer:          NewVaderScorer(),
		MinPolarity:     0.1,
		MinWords:        3,
		Denylist:        append([]string(nil), defaultDenylist...),
		QuestionMarkers: append([]string(nil), defaultQuestionMarkers...),
	}
}

// Verdict is the filter decision with the rejection reason, empty for accepted replies
type Verdict struct {
	Accepted bool
	Reason   string
}

// Check runs the rules in order: polarity, denylist, word count, question phrasing
func (f *Filter) Check(reply string) Verdict {
	if polarity := f.Scorer.Polarity(reply); polarity < f.MinPolarity {
		return Verdict{Reason: "polarity too low"}
	}

	lower := strings.ToLower(apostrophes.Replace(reply))
	for _, phrase := range f.Denylist {
		if strings.Contains(lower, phrase) {
			return Verdict{Reason: "contains " + phrase}
		}
	}

	if len(strings.Fields(reply)) < f.MinWords {
		return Verdict{Reason: "too short"}
	}

	if strings.Contains(reply, "?") && !containsAny(lower, f.QuestionMarkers) {
		return Verdict{Reason: "question without positive marker"}
	}

	return Verdict{Accepted: true}
}

// Accept reports whether the reply passes the filter, rejections are logged with the reason
func (f *Filter) Accept(reply string) bool {
	v := f.Check(reply)
	if !v.Accepted {
		log.Printf("[INFO] reply rejected, %s: %q", v.Reason, reply)
	}
	return v.Accepted
}

// typographic apostrophes are matched as plain ones
var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
