package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/sportbot/internal/common/logger"
	"github.com/KirkDiggler/sportbot/internal/common/metrics"
)

// Job is one fixed-interval background task
type Job struct {
	Name     string
	Interval time.Duration

	// RunOnStart ticks once immediately instead of waiting a full interval
	RunOnStart bool

	Run func(ctx context.Context) error
}

// Config holds the scheduler configuration
type Config struct {
	// Optional
	Logger logger.Logger
}

// Scheduler runs each job on its own goroutine. A job never overlaps
// itself: the next tick is only taken once the current one has returned.
type Scheduler struct {
	log logger.Logger

	mu      sync.Mutex
	jobs    []*Job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New creates a new scheduler
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Scheduler{
		log: log.WithFields(map[string]interface{}{"component": "scheduler"}),
	}, nil
}

// Add registers a job. Jobs must be added before Start.
func (s *Scheduler) Add(job *Job) error {
	if job == nil || job.Run == nil {
		return ErrNilRun
	}
	if job.Name == "" {
		return ErrEmptyJobName
	}
	if job.Interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	for _, existing := range s.jobs {
		if existing.Name == job.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name)
		}
	}
	s.jobs = append(s.jobs, job)

	return nil
}

// Start launches every registered job. The jobs stop when ctx is done or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}

	s.log.Info("Scheduler started", map[string]interface{}{"jobs": len(s.jobs)})

	return nil
}

// Stop cancels the jobs and waits for running ticks to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()

	s.log.Info("Scheduler stopped", nil)
}

func (s *Scheduler) loop(ctx context.Context, job *Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	if job.RunOnStart {
		s.tick(ctx, job)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, job)
		}
	}
}

// tick runs the job once. Errors and panics are logged and counted; they
// never stop the loop.
func (s *Scheduler) tick(ctx context.Context, job *Job) {
	if ctx.Err() != nil {
		return
	}

	err := run(ctx, job)
	if err != nil {
		metrics.JobTicks.WithLabelValues(job.Name, "error").Inc()
		s.log.Error("Job tick failed", map[string]interface{}{
			"job":   job.Name,
			"error": err.Error(),
		})
		return
	}

	metrics.JobTicks.WithLabelValues(job.Name, "ok").Inc()
}

func run(ctx context.Context, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, r)
		}
	}()

	return job.Run(ctx)
}
