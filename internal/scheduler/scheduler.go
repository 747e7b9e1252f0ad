// Package scheduler runs the scrape and clean cycle on a cron spec.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec runs one cycle a day.
const DefaultSpec = "@every 24h"

// Job is one cycle. An error is logged and the schedule continues.
type Job func(ctx context.Context) error

// Scheduler wraps robfig/cron. Overlapping cycles are skipped, not queued.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	job    Job
	logger *zap.Logger
	wg     sync.WaitGroup
}

// New creates a Scheduler that runs job on spec.
func New(spec string, job Job, logger *zap.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		spec:   spec,
		job:    job,
		logger: logger,
	}
}

// Spec returns the cron spec.
func (s *Scheduler) Spec() string {
	return s.spec
}

// Start registers the job and starts the scheduler. One cycle runs immediately so the
// tables are fresh without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runCycle(ctx, "tick") }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.spec))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runCycle(ctx, "startup")
	}()
	return nil
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop shuts the scheduler down and waits for running cycles to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runCycle(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}
	s.logger.Info("cycle started", zap.String("trigger", trigger))
	if err := s.job(ctx); err != nil {
		s.logger.Error("cycle failed", zap.String("trigger", trigger), zap.Error(err))
		return
	}
	s.logger.Info("cycle complete", zap.String("trigger", trigger))
}
