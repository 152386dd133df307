package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAddJob_InvalidSpec(t *testing.T) {
	s := New(nil, nil)
	if err := s.AddJob("report", "not a schedule", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
	if err := s.AddJob("report", "", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("empty spec should disable the job: %v", err)
	}
	s.Start()
	if s.IsRunning() {
		t.Fatalf("scheduler without jobs should stay idle")
	}
	s.Stop()
}

func TestScheduler_RunsJob(t *testing.T) {
	s := New(nil, time.UTC)
	fired := make(chan struct{}, 4)
	if err := s.AddJob("refresh", "@every 1s", func(ctx context.Context) error {
		fired <- struct{}{}
		return errors.New("logged, not fatal")
	}); err != nil {
		t.Fatalf("add job: %v", err)
	}
	s.Start()
	defer s.Stop()
	if !s.IsRunning() {
		t.Fatalf("scheduler should be running")
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatalf("job did not fire")
	}
}

func TestStop_CancelsJobContext(t *testing.T) {
	s := New(nil, nil)
	s.Stop()
	if s.ctx.Err() == nil {
		t.Fatalf("job context should be cancelled after Stop")
	}
}
