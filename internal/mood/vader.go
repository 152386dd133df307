package mood

import (
	"sync"

	"github.com/jonreiter/govader"
)

var (
	analyzerOnce sync.Once
	analyzer     *govader.SentimentIntensityAnalyzer
)

// sharedAnalyzer loads the VADER lexicon once; the analyzer is read-only
// after construction and safe for concurrent use.
func sharedAnalyzer() *govader.SentimentIntensityAnalyzer {
	analyzerOnce.Do(func() {
		analyzer = govader.NewSentimentIntensityAnalyzer()
	})
	return analyzer
}

// VaderScorer returns the VADER compound score.
type VaderScorer struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{sia: sharedAnalyzer()}
}

func (s *VaderScorer) Score(text string) (float64, error) {
	return s.sia.PolarityScores(text).Compound, nil
}
