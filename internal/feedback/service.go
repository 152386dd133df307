package feedback

import (
	"time"

	"github.com/google/uuid"

	"dotpi/internal/logger"
	"dotpi/internal/mood"
	"dotpi/internal/tone"
)

// Service validates and stamps feedback before it reaches the repository.
type Service struct {
	repo Repository
	log  *logger.Logger
	now  func() time.Time
	// OnSaved runs after every successful save.
	OnSaved func(Entry)
}

func NewService(repo Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// Save records one rating. kind is required; unknown mood or tone labels are
// stored empty rather than rejected.
func (s *Service) Save(userMessage, aiResponse, kind, detectedMood, toneUsed string) (Entry, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		ID:          uuid.NewString(),
		Timestamp:   s.now(),
		UserMessage: userMessage,
		AIResponse:  aiResponse,
		Feedback:    k,
	}
	if m, ok := mood.Normalize(detectedMood); ok {
		e.DetectedMood = m
	}
	if t, ok := tone.Parse(toneUsed); ok {
		e.ToneUsed = t
	}
	if err := s.repo.Append(e); err != nil {
		s.log.Error("failed to save feedback", "error", err)
		return Entry{}, err
	}

	icon := "👍"
	if k == Dislike {
		icon = "👎"
	}
	s.log.Info("feedback saved", "kind", k, "icon", icon, "mood", e.DetectedMood, "tone", e.ToneUsed, "message", userMessage)
	if s.OnSaved != nil {
		s.OnSaved(e)
	}
	return e, nil
}

// All returns every stored entry in insertion order.
func (s *Service) All() ([]Entry, error) {
	return s.repo.LoadAll()
}
