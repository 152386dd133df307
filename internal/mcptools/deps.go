package mcptools

import (
	"context"

	"dotpi/internal/engine"
	"dotpi/internal/feedback"
	"dotpi/internal/mood"
	"dotpi/internal/preference"
	"dotpi/internal/tone"
)

type ChatEngine interface {
	Generate(ctx context.Context, message string, callerTone tone.Tone, m *mood.Mood) engine.Reply
}

type FeedbackService interface {
	Save(userMessage, aiResponse, kind, detectedMood, toneUsed string) (feedback.Entry, error)
}

type Preferences interface {
	Snapshot() preference.Snapshot
}
