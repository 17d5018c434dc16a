package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/service"
)

// Job is a unit of background work.
type Job func(ctx context.Context)

// Runner executes submitted jobs on a fixed set of goroutines.
type Runner struct {
	jobs   chan Job
	wg     sync.WaitGroup
	logger *zap.Logger

	// mu guards closed and orders sends against close(jobs).
	mu     sync.RWMutex
	closed bool
}

// NewRunner starts workers goroutines draining a queue of the given size.
// They stop once ctx is cancelled or Shutdown is called.
func NewRunner(ctx context.Context, workers, queueSize int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	r := &Runner{jobs: make(chan Job, queueSize), logger: logger}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.loop(ctx)
	}
	return r
}

func (r *Runner) loop(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-r.jobs:
			if !ok {
				return
			}
			job(ctx)
		}
	}
}

// Submit queues a job. It reports false without blocking when the queue is
// full or the runner has been shut down.
func (r *Runner) Submit(job Job) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.logger.Warn("worker stopped, job dropped")
		return false
	}
	select {
	case r.jobs <- job:
		return true
	default:
		r.logger.Warn("worker queue full")
		return false
	}
}

// Shutdown stops accepting jobs and waits for queued ones to finish.
func (r *Runner) Shutdown() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.jobs)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// StartNotificationWorker registers notification handlers with deliveries
// running on a background runner.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, logger *zap.Logger) *Runner {
	if notificationService == nil {
		return nil
	}
	runner := NewRunner(ctx, 2, 256, logger)
	notificationService.SetDeliverer(func(job func(context.Context)) bool {
		return runner.Submit(job)
	})
	notificationService.RegisterHandlers()
	return runner
}
