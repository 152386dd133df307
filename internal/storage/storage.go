package storage

import "time"

type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Interaction is one handled chat exchange.
// Interactions are appended in chronological order.
type Interaction struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	UserMessage  string    `json:"user_message"`
	AIResponse   string    `json:"ai_response"`
	DetectedMood string    `json:"detected_mood"`
	ToneUsed     string    `json:"tone_used"`
	Source       Source    `json:"source"`
	Fallback     bool      `json:"fallback,omitempty"`
}

// Recorder abstracts persistence of interactions.
// LoadInteractions returns them in chronological order.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendInteraction(in Interaction) error
	LoadInteractions() ([]Interaction, error)
}
