package feedback

import (
	"errors"
	"strings"
	"time"

	"dotpi/internal/mood"
	"dotpi/internal/tone"
)

type Kind string

const (
	Like    Kind = "like"
	Dislike Kind = "dislike"
)

var (
	ErrMissingKind = errors.New("feedback type is required")
	ErrUnknownKind = errors.New("unknown feedback type")
)

// ParseKind accepts the canonical kinds plus the web UI's thumbs values.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", ErrMissingKind
	case "like", "positive", "up", "thumbs_up":
		return Like, nil
	case "dislike", "negative", "down", "thumbs_down":
		return Dislike, nil
	default:
		return "", ErrUnknownKind
	}
}

// Entry is one rating of an assistant reply. Entries are never modified
// after they are written.
type Entry struct {
	ID           string    `json:"id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	UserMessage  string    `json:"user_message"`
	AIResponse   string    `json:"ai_response"`
	Feedback     Kind      `json:"feedback"`
	DetectedMood mood.Mood `json:"detected_mood,omitempty"`
	ToneUsed     tone.Tone `json:"tone_used,omitempty"`
}

// rawEntry is the loosely typed on-disk shape, including legacy files.
type rawEntry struct {
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	UserMessage  string `json:"user_message"`
	AIResponse   string `json:"ai_response"`
	Feedback     string `json:"feedback"`
	DetectedMood string `json:"detected_mood"`
	ToneUsed     string `json:"tone_used"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// normalize validates a raw record. Unknown moods and tones are dropped,
// an unknown feedback kind rejects the record.
func (r rawEntry) normalize() (Entry, error) {
	kind, err := ParseKind(r.Feedback)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		ID:          r.ID,
		UserMessage: r.UserMessage,
		AIResponse:  r.AIResponse,
		Feedback:    kind,
	}
	if m, ok := mood.Normalize(r.DetectedMood); ok {
		e.DetectedMood = m
	}
	if t, ok := tone.Parse(r.ToneUsed); ok {
		e.ToneUsed = t
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, r.Timestamp, time.Local); err == nil {
			e.Timestamp = ts
			break
		}
	}
	return e, nil
}
