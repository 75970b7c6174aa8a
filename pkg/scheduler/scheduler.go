// Package scheduler runs bot passes on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
)

// Job is a single scheduled pass
type Job func(ctx context.Context) error

// Scheduler runs the job once on start and then on every cron tick.
// A tick is skipped while the previous run is still in progress.
type Scheduler struct {
	spec   string
	job    Job
	cron   *cron.Cron
	wg     sync.WaitGroup
	runCtx context.Context
	cancel context.CancelFunc
	busy   sync.Mutex
}

// New makes a scheduler for a standard 5-field cron spec or a descriptor like "@every 8h"
func New(spec string, job Job) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{spec: spec, job: job, cron: c}
	if _, err := c.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.runCtx = ctx

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runJob(ctx)
	}()
	s.cron.Start()
	lgr.Printf("[INFO] scheduler started with %q", s.spec)
}

// Stop cancels the running job and waits for it to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Run starts the scheduler and blocks until ctx is canceled
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start(ctx)
	<-ctx.Done()
	s.Stop()
	return ctx.Err()
}

func (s *Scheduler) tick() {
	s.wg.Add(1)
	defer s.wg.Done()
	s.runJob(s.runCtx)
}

func (s *Scheduler) runJob(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !s.busy.TryLock() {
		lgr.Printf("[WARN] previous run is still in progress, tick skipped")
		return
	}
	defer s.busy.Unlock()

	if err := s.job(ctx); err != nil {
		lgr.Printf("[WARN] scheduled run failed: %v", err)
		return
	}
	if next := s.cron.Entries(); len(next) > 0 {
		lgr.Printf("[INFO] scheduled run completed, next at %s", next[0].Next.Format("2006-01-02 15:04:05"))
	}
}
