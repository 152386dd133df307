package mood

import (
	"fmt"

	"dotpi/internal/logger"
)

const (
	PositiveThreshold = 0.3
	NegativeThreshold = -0.3
)

// Scorer returns a compound polarity score in [-1, 1].
type Scorer interface {
	Score(text string) (float64, error)
}

type Classifier struct {
	scorer Scorer
	log    *logger.Logger
}

// NewClassifier uses the VADER scorer when scorer is nil.
func NewClassifier(scorer Scorer, log *logger.Logger) *Classifier {
	if scorer == nil {
		scorer = NewVaderScorer()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Classifier{scorer: scorer, log: log}
}

// Detect never fails: scoring errors and panics map to Neutral.
func (c *Classifier) Detect(text string) Mood {
	score, err := c.safeScore(text)
	if err != nil {
		c.log.Debug("sentiment scoring failed", "error", err)
		return Neutral
	}
	c.log.Debug("sentiment scored", "compound", score)
	return FromScore(score)
}

// FromScore applies the fixed thresholds to a compound score.
func FromScore(score float64) Mood {
	switch {
	case score >= PositiveThreshold:
		return Positive
	case score <= NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

func (c *Classifier) safeScore(text string) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scorer panic: %v", r)
		}
	}()
	return c.scorer.Score(text)
}
