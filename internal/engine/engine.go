package engine

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"dotpi/internal/config"
	"dotpi/internal/history"
	"dotpi/internal/llm"
	"dotpi/internal/logger"
	"dotpi/internal/mood"
	"dotpi/internal/preference"
	"dotpi/internal/storage"
	"dotpi/internal/tone"
)

const (
	// ContextTurns is how many stored turns go into the remote prompt.
	ContextTurns = 5

	baseWeight      = 1
	detectedBoost   = 3
	preferenceBoost = 10
)

// Preferences yields the current preference snapshot.
type Preferences interface {
	Snapshot() preference.Snapshot
}

type Deps struct {
	Classifier  *mood.Classifier
	Preferences Preferences
	Catalog     *Catalog
	// Client may be nil; the engine then runs locally.
	Client   llm.Client
	History  *history.Manager
	Recorder storage.Recorder
	Rand     Rand
	Log      *logger.Logger
}

type Options struct {
	Mode        config.EngineMode
	Model       string
	Temperature float32
	Timeout     time.Duration
	Persona     Persona
}

// Reply is the outcome of one Generate call.
type Reply struct {
	ID       string
	Text     string
	Mood     mood.Mood
	Tone     tone.Tone
	Source   storage.Source
	Fallback bool
	// Err is the remote failure that caused a fallback, if any.
	Err error
}

type staticPreferences struct{ snap preference.Snapshot }

func (s staticPreferences) Snapshot() preference.Snapshot { return s.snap }

type Engine struct {
	classifier *mood.Classifier
	prefs      Preferences
	catalog    *Catalog
	client     llm.Client
	history    *history.Manager
	recorder   storage.Recorder
	opts       Options
	log        *logger.Logger

	rngMu sync.Mutex
	rng   Rand
}

func New(d Deps, opts Options) *Engine {
	e := &Engine{
		classifier: d.Classifier,
		prefs:      d.Preferences,
		catalog:    d.Catalog,
		client:     d.Client,
		history:    d.History,
		recorder:   d.Recorder,
		opts:       opts,
		log:        d.Log,
		rng:        d.Rand,
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	if e.prefs == nil {
		e.prefs = staticPreferences{snap: preference.NewSnapshot()}
	}
	if e.classifier == nil {
		e.classifier = mood.NewClassifier(nil, e.log)
	}
	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.opts.Mode == "" {
		e.opts.Mode = config.ModeAPI
	}
	if e.opts.Mode == config.ModeAPI && (e.client == nil || e.history == nil) {
		e.log.Warn("no language model configured, running in local mode")
		e.opts.Mode = config.ModeLocal
	}
	e.log.Info("response engine initialized", "mode", e.opts.Mode)
	return e
}

func (e *Engine) Mode() config.EngineMode { return e.opts.Mode }

// EffectiveTone picks the learned tone when there is one, then the caller's
// tone, then tone.Default.
func EffectiveTone(snap preference.Snapshot, callerTone tone.Tone) tone.Tone {
	if learned, ok := preference.Learned(snap); ok {
		return learned
	}
	if callerTone.Valid() {
		return callerTone
	}
	return tone.Default
}

// Generate never fails: remote problems fall back to a local reply.
// A nil m means the mood is detected from message.
func (e *Engine) Generate(ctx context.Context, message string, callerTone tone.Tone, m *mood.Mood) Reply {
	reply := Reply{ID: uuid.NewString()}
	log := e.log.With("message_id", reply.ID)

	if m != nil && *m != "" {
		reply.Mood = mood.Bucket(string(*m))
	} else {
		reply.Mood = e.classifier.Detect(message)
	}
	log.Debug("state", "state", "MoodDetected", "mood", reply.Mood)

	snap := e.prefs.Snapshot()
	reply.Tone = EffectiveTone(snap, callerTone)
	log.Debug("state", "state", "ToneResolved", "tone", reply.Tone, "caller_tone", callerTone)

	if e.opts.Mode == config.ModeAPI {
		log.Debug("state", "state", "ReplyRequested")
		text, err := e.generateRemote(ctx, message, reply.Mood, reply.Tone)
		if err == nil {
			reply.Text = text
			reply.Source = storage.SourceRemote
			e.remember(log, message, text)
			log.Debug("state", "state", "MemoryUpdated")
			e.record(log, message, reply)
			log.Debug("state", "state", "Done", "source", reply.Source)
			return reply
		}
		log.Warn("remote generation failed, falling back to local reply", "error", err)
		reply.Fallback = true
		reply.Err = err
	}

	reply.Text = e.generateLocal(snap, reply.Mood, reply.Tone)
	reply.Source = storage.SourceLocal
	log.Debug("state", "state", "ReplySelected")
	e.record(log, message, reply)
	log.Debug("state", "state", "Done", "source", reply.Source, "fallback", reply.Fallback)
	return reply
}

// LocalWeights builds the bucket weights for the local path, in the fixed
// order positive, negative, neutral.
func LocalWeights(snap preference.Snapshot, m mood.Mood, t tone.Tone) []Weighted[mood.Mood] {
	base := mood.Bucket(string(m))
	weights := make(map[mood.Mood]float64, len(mood.All))
	for _, b := range mood.All {
		weights[b] = baseWeight
	}
	weights[base] += detectedBoost
	for _, b := range mood.All {
		if snap.LikedMoods[b] > 0 {
			weights[b] += preferenceBoost
		}
	}
	if snap.LikedTones[t] > 0 {
		weights[base] += preferenceBoost
	}

	out := make([]Weighted[mood.Mood], 0, len(mood.All))
	for _, b := range mood.All {
		out = append(out, Weighted[mood.Mood]{Key: b, Weight: weights[b]})
	}
	return out
}

func (e *Engine) generateLocal(snap preference.Snapshot, m mood.Mood, t tone.Tone) string {
	weights := LocalWeights(snap, m, t)

	e.rngMu.Lock()
	bucket := WeightedChoice(e.rng, weights)
	templates := e.catalog.Templates(bucket)
	choice := templates[e.rng.Intn(len(templates))]
	e.rngMu.Unlock()

	return e.catalog.Prefix(t) + choice
}

func (e *Engine) generateRemote(ctx context.Context, message string, m mood.Mood, t tone.Tone) (string, error) {
	if e.client == nil {
		return "", &GenerationError{Stage: "request", Err: ErrNoClient}
	}
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	system := e.opts.Persona.SystemPrompt(e.history.Recent(ContextTurns), m, t)
	resp, err := e.client.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: message},
		},
		Model:       e.opts.Model,
		Temperature: e.opts.Temperature,
	})
	if err != nil {
		return "", &GenerationError{Stage: "request", Err: err}
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", &GenerationError{Stage: "response", Err: ErrEmptyCompletion}
	}
	e.log.Debug("llm response", "model", resp.Model, "prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens, "total_tokens", resp.TotalTokens)
	return text, nil
}

// remember stores the exchange. A failed save is logged; the reply stands.
func (e *Engine) remember(log *logger.Logger, message, text string) {
	if err := e.history.Append(history.Turn{User: message, AI: text}); err != nil {
		log.Error("failed to persist conversation", "error", err)
	}
}

func (e *Engine) record(log *logger.Logger, message string, r Reply) {
	if e.recorder == nil {
		return
	}
	err := e.recorder.AppendInteraction(storage.Interaction{
		ID:           r.ID,
		Timestamp:    time.Now(),
		UserMessage:  message,
		AIResponse:   r.Text,
		DetectedMood: string(r.Mood),
		ToneUsed:     string(r.Tone),
		Source:       r.Source,
		Fallback:     r.Fallback,
	})
	if err != nil {
		log.Warn("failed to record interaction", "error", err)
	}
}
