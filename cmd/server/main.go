package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dotpi/internal/api"
	"dotpi/internal/app"
	"dotpi/internal/config"
	"dotpi/internal/logger"
	"dotpi/internal/scheduler"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	a, err := app.New(cfg, lg)
	if err != nil {
		lg.Fatal("failed to init app", "error", err)
	}

	sched := scheduler.New(lg.With("component", "scheduler"), time.UTC)
	if err := a.Schedule(sched); err != nil {
		lg.Fatal("failed to schedule jobs", "error", err)
	}
	sched.Start()
	defer sched.Stop()

	handlers := api.NewHandlers(a.Engine, a.Feedback, a.Preferences, a.Recorder, lg.With("component", "api"))
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.SetupRoutes(handlers, cfg.CORSOrigins, cfg.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		lg.Info("http server listening", "addr", cfg.HTTPAddr, "mode", a.Engine.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("graceful shutdown failed", "error", err)
	}
}
