package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dotpi/internal/config"
	"dotpi/internal/preference"
	"dotpi/internal/scheduler"
	"dotpi/internal/tone"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		EngineMode:           config.ModeAPI,
		AssistantName:        "DotPi",
		UserName:             "Taiba",
		LLMProvider:          config.ProviderOpenAI,
		FeedbackFilePath:     filepath.Join(dir, "data", "feedback_data.json"),
		ConversationFilePath: filepath.Join(dir, "data", "recent_messages.json"),
		InteractionLogPath:   filepath.Join(dir, "logs", "interactions.jsonl"),
		PreferenceRefresh:    "@every 5m",
		ReportSchedule:       "0 21 * * *",
	}
}

func TestNew_DegradesToLocalWithoutKey(t *testing.T) {
	a, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Engine.Mode() != config.ModeLocal {
		t.Fatalf("mode = %s", a.Engine.Mode())
	}
	if a.Recorder == nil {
		t.Fatalf("interaction log should be enabled")
	}
}

func TestNew_APIModeWithKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIAPIKey = "sk-test"
	cfg.OpenAIModel = "gpt-4o-mini"
	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Engine.Mode() != config.ModeAPI {
		t.Fatalf("mode = %s", a.Engine.Mode())
	}
}

func TestNew_BadTemplatesFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.TemplatesPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for missing templates file")
	}
}

func TestNew_CorruptConversationIsLeftAlone(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(filepath.Dir(cfg.ConversationFilePath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.ConversationFilePath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(a.History.All()) != 0 {
		t.Fatalf("history should start empty")
	}
	b, _ := os.ReadFile(cfg.ConversationFilePath)
	if string(b) != "not json" {
		t.Fatalf("conversation file was modified")
	}
}

func TestFeedbackRefreshesPreferencesAndFlowsIntoChat(t *testing.T) {
	a, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := a.Feedback.Save("I failed", "I understand how you feel.", "like", "negative", "Empathetic"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := preference.RecommendTone(a.Preferences.Snapshot()); got != tone.Empathetic {
		t.Fatalf("recommendation = %s", got)
	}

	r := a.Engine.Generate(context.Background(), "I failed my exam and feel awful", tone.Blunt, nil)
	if r.Tone != tone.Empathetic {
		t.Fatalf("learned tone should win, got %s", r.Tone)
	}

	stats, err := a.DailyReport(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if stats.TotalMessages != 1 || stats.ByTone["Empathetic"] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSchedule(t *testing.T) {
	a, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s := scheduler.New(nil, nil)
	if err := a.Schedule(s); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	s.Start()
	defer s.Stop()
	if !s.IsRunning() {
		t.Fatalf("scheduler should be running")
	}

	a.Config.ReportSchedule = "every day please"
	if err := a.Schedule(scheduler.New(nil, nil)); err == nil {
		t.Fatalf("invalid schedule should fail")
	}
}
