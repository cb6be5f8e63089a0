// Package scheduler re-runs the crawl pipeline on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shopscan/pkg/config"
	"shopscan/pkg/logger"
)

// Job statuses
const (
	JobStatusScheduled = "scheduled"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Error variables
var (
	ErrAlreadyRunning = errors.New("scheduler: crawl already running")
	ErrNotStarted     = errors.New("scheduler: not started")
)

// RunFunc executes one crawl
type RunFunc func(ctx context.Context) error

// JobState is a snapshot of the crawl job
type JobState struct {
	Cron      string    `json:"cron"`
	Status    string    `json:"status"`
	NextRun   time.Time `json:"next_run"`
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
	Runs      int       `json:"runs"`
	Skipped   int       `json:"skipped"`
}

// CrawlScheduler triggers RunFunc on a cron expression, never overlapping runs
type CrawlScheduler struct {
	cron    *cron.Cron
	cfg     *config.ScheduleConfig
	run     RunFunc
	entryID cron.EntryID

	running sync.Mutex // held for the duration of one crawl

	mu    sync.RWMutex
	state JobState
	ctx   context.Context
}

// New creates a scheduler for cfg.Cron. The expression uses the standard five fields.
func New(cfg *config.ScheduleConfig, run RunFunc) (*CrawlScheduler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil schedule config", config.ErrScheduleConfig)
	}
	if _, err := cron.ParseStandard(cfg.Cron); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", config.ErrInvalidCron, cfg.Cron, err)
	}

	s := &CrawlScheduler{
		cron:  cron.New(cron.WithChain(cron.Recover(cronLogger{}))),
		cfg:   cfg,
		run:   run,
		state: JobState{Cron: cfg.Cron, Status: JobStatusScheduled},
	}

	entryID, err := s.cron.AddFunc(cfg.Cron, s.trigger)
	if err != nil {
		return nil, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.entryID = entryID
	return s, nil
}

// Start runs the scheduler until ctx is cancelled, then waits for an in-flight crawl.
func (s *CrawlScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	logger.Info("Starting crawl scheduler", zap.String("cron", s.cfg.Cron))
	s.cron.Start()
	s.refreshNextRun()
	logger.Info("Next crawl scheduled", zap.Time("next_run", s.State().NextRun))

	if s.cfg.RunOnStart {
		s.trigger()
	}

	<-ctx.Done()
	logger.Info("Crawl scheduler context cancelled")

	stopped := s.cron.Stop()
	<-stopped.Done()
	logger.Info("Crawl scheduler stopped")
	return nil
}

// RunNow executes one crawl immediately on the caller's goroutine.
func (s *CrawlScheduler) RunNow(ctx context.Context) error {
	return s.execute(ctx)
}

// State returns a copy of the job state
func (s *CrawlScheduler) State() JobState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *CrawlScheduler) trigger() {
	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()
	if ctx == nil {
		logger.Warn("Crawl triggered before scheduler start", zap.Error(ErrNotStarted))
		return
	}

	if err := s.execute(ctx); err != nil && !errors.Is(err, ErrAlreadyRunning) {
		logger.Error("Scheduled crawl failed", zap.Error(err))
	}
}

func (s *CrawlScheduler) execute(ctx context.Context) error {
	if !s.running.TryLock() {
		s.mu.Lock()
		s.state.Skipped++
		s.mu.Unlock()
		logger.Warn("Skipping crawl, previous run still in progress")
		return ErrAlreadyRunning
	}
	defer s.running.Unlock()

	start := time.Now()
	s.mu.Lock()
	s.state.Status = JobStatusRunning
	s.state.LastRun = start
	s.state.Runs++
	s.mu.Unlock()

	logger.Info("Executing scheduled crawl")
	err := s.run(ctx)

	s.mu.Lock()
	if err != nil {
		s.state.Status = JobStatusFailed
		s.state.LastError = err.Error()
	} else {
		s.state.Status = JobStatusCompleted
		s.state.LastError = ""
	}
	s.mu.Unlock()
	s.refreshNextRun()

	if err == nil {
		logger.Info("Scheduled crawl completed", zap.Duration("duration", time.Since(start)))
	}
	return err
}

func (s *CrawlScheduler) refreshNextRun() {
	entry := s.cron.Entry(s.entryID)
	s.mu.Lock()
	s.state.NextRun = entry.Next
	s.mu.Unlock()
}

// cronLogger routes cron's internal messages through zap
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Sugar.Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
