package filter

import (
	"github.com/jonreiter/govader"
)

// VaderScorer scores polarity with the VADER compound score, already normalised to [-1, 1]
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer makes a scorer with the embedded VADER lexicon
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns sentiment of text in [-1, 1]
func (s *VaderScorer) Polarity(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
