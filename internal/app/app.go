// Package app wires the stores, caches and engine from config.
package app

import (
	"context"
	"fmt"
	"time"

	"dotpi/internal/analytics"
	"dotpi/internal/config"
	"dotpi/internal/engine"
	"dotpi/internal/feedback"
	"dotpi/internal/history"
	"dotpi/internal/llm"
	"dotpi/internal/logger"
	"dotpi/internal/preference"
	"dotpi/internal/scheduler"
	"dotpi/internal/storage"
)

type App struct {
	Config      *config.Config
	Log         *logger.Logger
	Feedback    *feedback.Service
	Preferences *preference.Cache
	History     *history.Manager
	// Recorder is nil when the interaction log is disabled.
	Recorder storage.Recorder
	Engine   *engine.Engine

	now func() time.Time
}

func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{Config: cfg, Log: log, now: time.Now}

	repo := feedback.NewFileRepository(cfg.FeedbackFilePath, log.With("component", "feedback"))
	a.Feedback = feedback.NewService(repo, log.With("component", "feedback"))
	a.Preferences = preference.NewCache(repo, log.With("component", "preferences"))
	if err := a.Preferences.Refresh(); err != nil {
		log.Warn("starting without feedback history", "path", cfg.FeedbackFilePath, "error", err)
	}
	a.Feedback.OnSaved = func(feedback.Entry) { _ = a.Preferences.Refresh() }

	hist, err := history.NewManager(history.NewFileStore(cfg.ConversationFilePath), history.MaxTurns)
	if err != nil {
		// keep the unreadable file untouched and run with memory only
		log.Error("conversation file unreadable, memory will not persist", "path", cfg.ConversationFilePath, "error", err)
		hist, _ = history.NewManager(nil, history.MaxTurns)
	}
	a.History = hist

	if cfg.InteractionLogPath != "" {
		rec, err := storage.NewFileRecorder(cfg.InteractionLogPath)
		if err != nil {
			log.Warn("failed to init interaction log", "path", cfg.InteractionLogPath, "error", err)
		} else {
			a.Recorder = rec
		}
	}

	catalog, err := engine.LoadCatalog(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	var client llm.Client
	if cfg.EngineMode == config.ModeAPI && cfg.LLMConfigured() {
		client, err = llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
		if err != nil {
			return nil, fmt.Errorf("create llm client: %w", err)
		}
	}

	a.Engine = engine.New(engine.Deps{
		Preferences: a.Preferences,
		Catalog:     catalog,
		Client:      client,
		History:     a.History,
		Recorder:    a.Recorder,
		Log:         log.With("component", "engine"),
	}, engine.Options{
		Mode:        cfg.EngineMode,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
		Persona:     engine.Persona{Assistant: cfg.AssistantName, User: cfg.UserName},
	})
	return a, nil
}

// Schedule registers the preference refresh and daily report jobs.
func (a *App) Schedule(s *scheduler.Scheduler) error {
	if err := s.AddJob("preference-refresh", a.Config.PreferenceRefresh, func(context.Context) error {
		return a.Preferences.Refresh()
	}); err != nil {
		return err
	}
	return s.AddJob("daily-report", a.Config.ReportSchedule, func(ctx context.Context) error {
		_, err := a.DailyReport(ctx)
		return err
	})
}

// DailyReport summarizes today's interactions and logs the summary.
func (a *App) DailyReport(ctx context.Context) (*analytics.DailyStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var items []storage.Interaction
	if a.Recorder != nil {
		var err error
		items, err = a.Recorder.LoadInteractions()
		if err != nil {
			return nil, fmt.Errorf("load interactions: %w", err)
		}
	}
	stats := analytics.AnalyzeDailyLogs(items, a.now())
	a.Log.Info("daily report", "date", stats.Date, "messages", stats.TotalMessages, "fallbacks", stats.Fallbacks)
	a.Log.Debug(stats.GenerateReportSummary())
	return stats, nil
}
