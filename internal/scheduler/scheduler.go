package scheduler

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// JobFunc is one run of a periodic job. A returned error is logged and the
// job keeps its schedule.
type JobFunc func(ctx context.Context) error

type Scheduler struct {
	jobs   map[string]*job // job name -> job
	mu     sync.RWMutex
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

type job struct {
	name     string
	interval time.Duration
	run      JobFunc
	ticker   *time.Ticker
	cancel   context.CancelFunc
	runs     int
	failures int
	lastErr  error
}

// JobStatus is a snapshot of one job's run history.
type JobStatus struct {
	Name      string        `json:"name"`
	Interval  time.Duration `json:"interval"`
	Runs      int           `json:"runs"`
	Failures  int           `json:"failures"`
	LastError string        `json:"last_error,omitempty"`
}

func NewScheduler(parent context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(parent)

	return &Scheduler{
		jobs:   make(map[string]*job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob runs fn immediately and then every interval until the job is
// removed or the scheduler stops. Adding a name twice replaces the job.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		log.Warnf("Scheduler stopped, not adding job %s", name)
		return
	}

	if existing, exists := s.jobs[name]; exists {
		existing.ticker.Stop()
		existing.cancel()
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)

	j := &job{
		name:     name,
		interval: interval,
		run:      fn,
		ticker:   time.NewTicker(interval),
		cancel:   jobCancel,
	}

	s.jobs[name] = j
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.execute(jobCtx, j)
		s.runJob(jobCtx, j)
	}()

	log.Debugf("Added job %s every %v", name, interval)
}

func (s *Scheduler) RemoveJob(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, exists := s.jobs[name]; exists {
		j.ticker.Stop()
		j.cancel()
		delete(s.jobs, name)
		log.Debugf("Removed job %s", name)
	}
}

// Stop cancels every job and waits for running executions to return.
func (s *Scheduler) Stop() {
	s.cancel()

	s.mu.Lock()
	for _, j := range s.jobs {
		j.ticker.Stop()
		j.cancel()
	}
	s.jobs = make(map[string]*job)
	s.mu.Unlock()

	s.wg.Wait()
	log.Info("Scheduler stopped")
}

func (s *Scheduler) runJob(ctx context.Context, j *job) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-j.ticker.C:
			s.execute(ctx, j)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, j *job) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	err := j.run(ctx)

	s.mu.Lock()
	j.runs++
	j.lastErr = err
	if err != nil {
		j.failures++
	}
	s.mu.Unlock()

	if err != nil {
		log.WithError(err).WithField("job", j.name).Warn("Scheduled job failed")
		return
	}

	log.WithFields(log.Fields{
		"job":      j.name,
		"duration": time.Since(start),
	}).Debug("Scheduled job succeeded")
}

// Status returns the jobs currently scheduled.
func (s *Scheduler) Status() []JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := make([]JobStatus, 0, len(s.jobs))

	for _, j := range s.jobs {
		status := JobStatus{
			Name:     j.name,
			Interval: j.interval,
			Runs:     j.runs,
			Failures: j.failures,
		}

		if j.lastErr != nil {
			status.LastError = j.lastErr.Error()
		}

		statuses = append(statuses, status)
	}

	return statuses
}
