// Package jobs runs background work for the console on a single worker:
// scheduled jobs are enqueued by tickers and executed one at a time.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const historySize = 32

// Run records one finished job.
type Run struct {
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Details     any       `json:"details,omitempty"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
}

type Service struct {
	queue chan job

	mu      sync.Mutex
	history []Run
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New() *Service {
	return &Service{queue: make(chan job, 128)}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

// Every enqueues run each interval until ctx is done.
func (s *Service) Every(ctx context.Context, jobType string, interval time.Duration, run func(context.Context) (any, error)) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// History returns the most recent runs, oldest first.
func (s *Service) History() []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Run{}, s.history...)
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	run := Run{Type: j.Type, StartedAt: time.Now()}
	details, err := j.Run(ctx)
	run.CompletedAt = time.Now()
	run.Details = details
	run.Status = "completed"
	if err != nil {
		run.Status = "failed"
		run.Error = err.Error()
	}

	s.mu.Lock()
	s.history = append(s.history, run)
	if len(s.history) > historySize {
		s.history = s.history[len(s.history)-historySize:]
	}
	s.mu.Unlock()
	return details, err
}
