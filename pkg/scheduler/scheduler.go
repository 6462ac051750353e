// Package scheduler runs the ingestion and classification passes on fixed
// intervals, for long-running deployments that don't use external cron.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/job.go -pkg mocks -skip-ensure -fmt goimports . Job

// Job is a single batch pass, ingestion or classification
type Job interface {
	Run(ctx context.Context) error
}

// Config holds scheduler intervals
type Config struct {
	IngestInterval   time.Duration
	ClassifyInterval time.Duration
}

// Scheduler manages periodic ingestion and classification. Each job runs on
// its own ticker; a failed pass is logged and the next tick tries again.
type Scheduler struct {
	ingest           Job
	classify         Job
	ingestInterval   time.Duration
	classifyInterval time.Duration
	wg               sync.WaitGroup
	cancel           context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(ingest, classify Job, cfg Config) *Scheduler {
	if cfg.IngestInterval == 0 {
		cfg.IngestInterval = 30 * time.Minute
	}
	if cfg.ClassifyInterval == 0 {
		cfg.ClassifyInterval = 10 * time.Minute
	}
	return &Scheduler{
		ingest:           ingest,
		classify:         classify,
		ingestInterval:   cfg.IngestInterval,
		classifyInterval: cfg.ClassifyInterval,
	}
}

// Start begins both workers, each runs its job immediately and then on every
// tick. Classification is started only when a classifier job is provided.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.worker(ctx, "ingest", s.ingest, s.ingestInterval)

	if s.classify != nil {
		s.wg.Add(1)
		go s.worker(ctx, "classify", s.classify, s.classifyInterval)
	}

	lgr.Printf("[INFO] scheduler started, ingest every %v, classify every %v", s.ingestInterval, s.classifyInterval)
}

// Stop gracefully stops the scheduler, waiting for in-flight passes
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) worker(ctx context.Context, name string, job Job, interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.runJob(ctx, name, job) // run immediately on start

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, name, job)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, name string, job Job) {
	if ctx.Err() != nil {
		return
	}
	lgr.Printf("[DEBUG] %s pass started", name)
	if err := job.Run(ctx); err != nil {
		lgr.Printf("[ERROR] %s pass failed: %v", name, err)
		return
	}
	lgr.Printf("[DEBUG] %s pass completed", name)
}
