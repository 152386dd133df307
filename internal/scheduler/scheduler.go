// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"dotpi/internal/logger"
)

// Scheduler runs named jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	log    *logger.Logger

	mu      sync.Mutex
	jobs    []string
	started bool
}

// New creates a scheduler that evaluates schedules in loc (UTC when nil).
func New(log *logger.Logger, loc *time.Location) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// AddJob registers fn under a standard cron spec or a descriptor such as
// "@every 5m". An empty spec disables the job.
func (s *Scheduler) AddJob(name, spec string, fn func(ctx context.Context) error) error {
	if spec == "" {
		s.log.Warn("job disabled, no schedule", "job", name)
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() { s.run(name, fn) })
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, name)
	s.mu.Unlock()
	s.log.Info("job scheduled", "job", name, "schedule", spec)
	return nil
}

func (s *Scheduler) run(name string, fn func(ctx context.Context) error) {
	start := time.Now()
	s.log.Debug("job triggered", "job", name)
	if err := fn(s.ctx); err != nil {
		s.log.Error("job failed", "job", name, "error", err)
		return
	}
	s.log.Debug("job finished", "job", name, "took", time.Since(start))
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.jobs) == 0 {
		s.log.Warn("no jobs registered, scheduler idle")
		return
	}
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
	s.log.Info("scheduler started", "jobs", s.jobs)
}

// Stop waits for running jobs and cancels their context.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && len(s.cron.Entries()) > 0
}
