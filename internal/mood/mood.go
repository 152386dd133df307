// Package mood classifies free text into a coarse mood bucket.
package mood

import "strings"

type Mood string

const (
	Positive Mood = "positive"
	Negative Mood = "negative"
	Neutral  Mood = "neutral"
)

// All lists the known moods in their canonical order.
var All = []Mood{Positive, Negative, Neutral}

// Normalize folds legacy aliases into the canonical moods.
// ok is false for empty or unrecognized input.
func Normalize(s string) (Mood, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "happy", "happy-ish":
		return Positive, true
	case "negative", "sad":
		return Negative, true
	case "neutral":
		return Neutral, true
	default:
		return "", false
	}
}

// Bucket maps any mood label onto one of the three template buckets.
// Unknown labels land in Neutral.
func Bucket(s string) Mood {
	if m, ok := Normalize(s); ok {
		return m
	}
	return Neutral
}

func (m Mood) Valid() bool {
	return m == Positive || m == Negative || m == Neutral
}
