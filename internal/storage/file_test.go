package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "logs", "interactions.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	in1 := Interaction{ID: "a", Timestamp: time.Unix(1, 0).UTC(), UserMessage: "hi", AIResponse: "hello", Source: SourceLocal}
	in2 := Interaction{ID: "b", Timestamp: time.Unix(2, 0).UTC(), UserMessage: "foo", AIResponse: "bar", Source: SourceRemote, Fallback: true}
	if err := rec.AppendInteraction(in1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.AppendInteraction(in2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	// garbage lines are skipped
	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, _ = f.WriteString("{not json\n\n")
	_ = f.Close()

	got, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" || !got[1].Fallback {
		t.Fatalf("order mismatch: %+v", got)
	}
}

func TestWriteJSONAtomic(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "data.json")
	if err := WriteJSONAtomic(p, []string{"a", "<b>"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "[\n  \"a\",\n  \"<b>\"\n]\n"
	if string(b) != want {
		t.Fatalf("unexpected content %q", b)
	}
	entries, _ := os.ReadDir(filepath.Dir(p))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestReadFile_Missing(t *testing.T) {
	b, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil || b != nil {
		t.Fatalf("missing file should be nil,nil: %v %v", b, err)
	}
}
