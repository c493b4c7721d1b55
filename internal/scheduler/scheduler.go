package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AI2HU/geodash/internal/logger"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 10 * time.Minute

// Job is a unit of scheduled work
type Job func(ctx context.Context) error

// Scheduler runs named jobs on cron expressions. A job never overlaps itself;
// a tick that fires while the previous run is still going is skipped.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	log     *logger.Logger
	running bool
	entries map[string]cron.EntryID
	mu      sync.RWMutex
}

// New creates a new scheduler
func New(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	return &Scheduler{
		cron:    cron.New(),
		timeout: timeout,
		log:     logger.Named("scheduler"),
		entries: make(map[string]cron.EntryID),
	}
}

// AddJob registers job under name on the given cron expression
func (s *Scheduler) AddJob(name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		s.run(name, job)
	}))

	id, err := s.cron.AddJob(spec, wrapped)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.entries[name] = id

	s.log.Info("Registered job %s with cron expression: %s", name, spec)
	return nil
}

// RunNow executes the named job immediately, outside the cron schedule
func (s *Scheduler) RunNow(ctx context.Context, name string, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		return fmt.Errorf("job %s failed: %w", name, err)
	}
	s.log.Info("Job %s completed in %v", name, time.Since(start).Round(time.Millisecond))
	return nil
}

// Next returns the next activation of the named job
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.entries[name]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	s.cron.Start()
	s.running = true

	s.log.Info("Scheduler started with %d jobs", len(s.entries))
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false

	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) run(name string, job Job) {
	s.log.Info("Executing job: %s", name)
	if err := s.RunNow(context.Background(), name, job); err != nil {
		s.log.Error("%v", err)
	}
}
