package feedback

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"dotpi/internal/mood"
	"dotpi/internal/tone"
)

func TestService_RoundTripPreservesOrderAndFields(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data", "feedback.json")
	svc := NewService(NewFileRepository(p, nil), nil)

	type in struct{ msg, resp, kind, mood, tone string }
	inputs := []in{
		{"hi", "hello", "like", "positive", "Empathetic"},
		{"ugh", "sorry", "dislike", "sad", "Blunt"},
		{"meh", "ok", "positive", "", ""},
		{"yay", "great", "up", "happy", "balanced"},
	}
	var saved []Entry
	for _, x := range inputs {
		e, err := svc.Save(x.msg, x.resp, x.kind, x.mood, x.tone)
		if err != nil {
			t.Fatalf("save %q: %v", x.msg, err)
		}
		saved = append(saved, e)
	}

	got, err := svc.All()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(saved) {
		t.Fatalf("want %d entries, got %d", len(saved), len(got))
	}
	for i := range saved {
		w, g := saved[i], got[i]
		if g.ID != w.ID || g.UserMessage != w.UserMessage || g.AIResponse != w.AIResponse ||
			g.Feedback != w.Feedback || g.DetectedMood != w.DetectedMood || g.ToneUsed != w.ToneUsed ||
			!g.Timestamp.Equal(w.Timestamp) {
			t.Fatalf("entry %d mismatch:\nwant %+v\ngot  %+v", i, w, g)
		}
	}
	if got[1].DetectedMood != mood.Negative || got[3].ToneUsed != tone.Balanced || got[2].Feedback != Like {
		t.Fatalf("normalization not applied: %+v", got)
	}
}

func TestService_RejectsMissingAndUnknownKind(t *testing.T) {
	svc := NewService(NewFileRepository(filepath.Join(t.TempDir(), "f.json"), nil), nil)
	if _, err := svc.Save("a", "b", "", "", ""); !errors.Is(err, ErrMissingKind) {
		t.Fatalf("want ErrMissingKind, got %v", err)
	}
	if _, err := svc.Save("a", "b", "meh", "", ""); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("want ErrUnknownKind, got %v", err)
	}
}

func TestFileRepository_LegacyAndMalformedEntries(t *testing.T) {
	p := filepath.Join(t.TempDir(), "feedback.json")
	legacy := `[
  {"timestamp": "2025-03-01T10:00:00.123456", "user_message": "a", "ai_response": "b", "feedback": "positive", "detected_mood": "happy"},
  {"timestamp": "2025-03-01T10:01:00", "feedback": "like", "tone_used": "Blunt", "detected_mood": "angry"},
  {"feedback": 42},
  "not an object",
  {"feedback": "shrug"},
  {"feedback": "dislike", "detected_mood": "sad", "tone_used": "Empathetic"}
]`
	if err := os.WriteFile(p, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	repo := NewFileRepository(p, nil)
	got, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 valid entries, got %d: %+v", len(got), got)
	}
	if got[0].Feedback != Like || got[0].DetectedMood != mood.Positive || got[0].Timestamp.IsZero() {
		t.Fatalf("legacy entry not normalized: %+v", got[0])
	}
	if got[1].DetectedMood != "" || got[1].ToneUsed != tone.Blunt {
		t.Fatalf("unknown mood should be dropped: %+v", got[1])
	}
	if got[2].Feedback != Dislike || got[2].DetectedMood != mood.Negative {
		t.Fatalf("unexpected third entry: %+v", got[2])
	}

	// appending keeps unparseable records on disk
	if err := repo.Append(Entry{Feedback: Like}); err != nil {
		t.Fatalf("append: %v", err)
	}
	b, _ := os.ReadFile(p)
	if !strings.Contains(string(b), "not an object") || !strings.Contains(string(b), "shrug") {
		t.Fatalf("append dropped existing records: %s", b)
	}
}

func TestFileRepository_SingleObjectAndEmpty(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.json")
	_ = os.WriteFile(single, []byte(`{"feedback":"like","detected_mood":"neutral"}`), 0o644)
	got, err := NewFileRepository(single, nil).LoadAll()
	if err != nil || len(got) != 1 {
		t.Fatalf("single object: %v %+v", err, got)
	}

	empty := filepath.Join(dir, "empty.json")
	_ = os.WriteFile(empty, nil, 0o644)
	got, err = NewFileRepository(empty, nil).LoadAll()
	if err != nil || len(got) != 0 {
		t.Fatalf("empty file: %v %+v", err, got)
	}

	got, err = NewFileRepository(filepath.Join(dir, "missing.json"), nil).LoadAll()
	if err != nil || len(got) != 0 {
		t.Fatalf("missing file: %v %+v", err, got)
	}
}

func TestFileRepository_CorruptFileIsNotOverwritten(t *testing.T) {
	p := filepath.Join(t.TempDir(), "feedback.json")
	_ = os.WriteFile(p, []byte(`[{"feedback":"like"`), 0o644)
	repo := NewFileRepository(p, nil)
	if _, err := repo.LoadAll(); err == nil {
		t.Fatalf("corrupt file should fail to load")
	}
	if err := repo.Append(Entry{Feedback: Like}); err == nil {
		t.Fatalf("append over corrupt file should fail")
	}
	b, _ := os.ReadFile(p)
	if string(b) != `[{"feedback":"like"` {
		t.Fatalf("corrupt file was modified: %s", b)
	}
}

func TestService_ConcurrentSavesAreAllKept(t *testing.T) {
	p := filepath.Join(t.TempDir(), "feedback.json")
	svc := NewService(NewFileRepository(p, nil), nil)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := "like"
			if i%2 == 1 {
				kind = "dislike"
			}
			if _, err := svc.Save(fmt.Sprintf("m%d", i), "r", kind, "neutral", "Balanced"); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("save: %v", err)
	}

	got, err := NewFileRepository(p, nil).LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != n {
		t.Fatalf("want %d entries, got %d", n, len(got))
	}
	seen := make(map[string]bool, n)
	for _, e := range got {
		seen[e.UserMessage] = true
	}
	if len(seen) != n {
		t.Fatalf("entries lost or duplicated: %d distinct of %d", len(seen), n)
	}
}
