// Package api exposes the chat engine and feedback store over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"dotpi/internal/analytics"
	"dotpi/internal/config"
	"dotpi/internal/engine"
	"dotpi/internal/feedback"
	"dotpi/internal/logger"
	"dotpi/internal/mood"
	"dotpi/internal/preference"
	"dotpi/internal/storage"
	"dotpi/internal/tone"
)

const maxBodyBytes = 1 << 20

// ChatEngine produces replies.
type ChatEngine interface {
	Generate(ctx context.Context, message string, callerTone tone.Tone, m *mood.Mood) engine.Reply
	Mode() config.EngineMode
}

// FeedbackService stores and lists ratings.
type FeedbackService interface {
	Save(userMessage, aiResponse, kind, detectedMood, toneUsed string) (feedback.Entry, error)
	All() ([]feedback.Entry, error)
}

// Preferences yields the current preference snapshot.
type Preferences interface {
	Snapshot() preference.Snapshot
}

// InteractionSource lists recorded exchanges.
type InteractionSource interface {
	LoadInteractions() ([]storage.Interaction, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	engine       ChatEngine
	feedback     FeedbackService
	preferences  Preferences
	interactions InteractionSource
	log          *logger.Logger
	now          func() time.Time
}

// NewHandlers creates a new Handlers instance. interactions may be nil, in
// which case /stats reports an empty day.
func NewHandlers(eng ChatEngine, fb FeedbackService, prefs Preferences, interactions InteractionSource, log *logger.Logger) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{
		engine:       eng,
		feedback:     fb,
		preferences:  prefs,
		interactions: interactions,
		log:          log,
		now:          time.Now,
	}
}

type chatRequest struct {
	Message string `json:"message"`
	Tone    string `json:"tone,omitempty"`
	Mood    string `json:"mood,omitempty"`
}

type chatResponse struct {
	ID           string         `json:"id"`
	Response     string         `json:"response"`
	DetectedMood mood.Mood      `json:"detected_mood"`
	ToneUsed     tone.Tone      `json:"tone_used"`
	Source       storage.Source `json:"source"`
	Fallback     bool           `json:"fallback"`
}

// Chat handles POST /chat.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	var override *mood.Mood
	if req.Mood != "" {
		m := mood.Mood(req.Mood)
		override = &m
	}
	callerTone, _ := tone.Parse(req.Tone)

	reply := h.engine.Generate(r.Context(), message, callerTone, override)
	h.log.Info("chat handled",
		"request_id", middleware.GetReqID(r.Context()),
		"message_id", reply.ID,
		"mood", reply.Mood,
		"tone", reply.Tone,
		"source", reply.Source,
		"fallback", reply.Fallback,
	)

	respondJSON(w, http.StatusOK, chatResponse{
		ID:           reply.ID,
		Response:     reply.Text,
		DetectedMood: reply.Mood,
		ToneUsed:     reply.Tone,
		Source:       reply.Source,
		Fallback:     reply.Fallback,
	})
}

type feedbackRequest struct {
	Message  string `json:"message"`
	Response string `json:"response"`
	Feedback string `json:"feedback"`
	Mood     string `json:"mood"`
	Tone     string `json:"tone"`
	ToneUsed string `json:"tone_used"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SubmitFeedback handles POST /feedback.
func (h *Handlers) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondStatus(w, http.StatusBadRequest, "Could not read request body")
		return
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		respondStatus(w, http.StatusBadRequest, "No data provided")
		return
	}
	var req feedbackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondStatus(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req == (feedbackRequest{}) {
		respondStatus(w, http.StatusBadRequest, "No data provided")
		return
	}

	toneUsed := req.Tone
	if toneUsed == "" {
		toneUsed = req.ToneUsed
	}

	_, err = h.feedback.Save(req.Message, req.Response, req.Feedback, req.Mood, toneUsed)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, statusResponse{Status: "success"})
	case errors.Is(err, feedback.ErrMissingKind):
		respondStatus(w, http.StatusBadRequest, "Feedback type is required")
	case errors.Is(err, feedback.ErrUnknownKind):
		respondStatus(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("feedback not saved", "request_id", middleware.GetReqID(r.Context()), "error", err)
		respondStatus(w, http.StatusInternalServerError, "Failed to save feedback")
	}
}

// ListFeedback handles GET /feedback.
func (h *Handlers) ListFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := h.feedback.All()
	if err != nil {
		h.log.Error("failed to load feedback", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}
	if entries == nil {
		entries = []feedback.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Preferences handles GET /preferences.
func (h *Handlers) Preferences(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, preference.Analyze(h.preferences.Snapshot()))
}

// Stats handles GET /stats?date=YYYY-MM-DD; the default is today.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	day := h.now()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, day.Location())
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	var items []storage.Interaction
	if h.interactions != nil {
		var err error
		items, err = h.interactions.LoadInteractions()
		if err != nil {
			h.log.Error("failed to load interactions", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load interactions")
			return
		}
	}
	respondJSON(w, http.StatusOK, analytics.AnalyzeDailyLogs(items, day))
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"mode":      h.engine.Mode(),
		"timestamp": h.now().UTC(),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStatus writes the {status, message} error shape used by /feedback.
func respondStatus(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, statusResponse{Status: "error", Message: message})
}
