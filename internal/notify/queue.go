package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"portfolio-server/internal/logger"
)

// ErrQueueFull is returned when a MemoryQueue cannot take more jobs.
var ErrQueueFull = errors.New("notification queue is full")

// ErrQueueClosed is returned by Enqueue after Close.
var ErrQueueClosed = errors.New("notification queue is closed")

const defaultSendTimeout = 30 * time.Second

// Worker renders jobs and hands them to a Mailer. Delivery failures are
// logged and dropped.
type Worker struct {
	mailer  Mailer
	timeout time.Duration
}

// NewWorker creates a Worker that sends through mailer.
func NewWorker(mailer Mailer) *Worker {
	return &Worker{mailer: mailer, timeout: defaultSendTimeout}
}

// Handle delivers one job.
func (w *Worker) Handle(ctx context.Context, job Job) {
	l := logger.FromContext(ctx).With().
		Str("kind", string(job.Kind)).
		Str("appointment_id", job.AppointmentID).
		Logger()

	msg, err := Render(job)
	if err != nil {
		l.Error().Err(err).Msg("cannot render notification")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.mailer.Send(sendCtx, msg); err != nil {
		l.Error().Err(err).Str("to", msg.To).Msg("notification delivery failed")
		return
	}
	l.Info().Str("to", msg.To).Msg("notification sent")
}

// MemoryQueue is an in-process queue drained by worker goroutines.
type MemoryQueue struct {
	worker *Worker
	jobs   chan Job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewMemoryQueue creates a queue holding up to size pending jobs.
func NewMemoryQueue(worker *Worker, size int) *MemoryQueue {
	return &MemoryQueue{
		worker: worker,
		jobs:   make(chan Job, size),
	}
}

// Start launches n workers. They stop once Close has drained the queue.
func (q *MemoryQueue) Start(n int) {
	for i := 0; i < n; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for job := range q.jobs {
				q.worker.Handle(context.Background(), job)
			}
		}()
	}
}

// Enqueue never blocks: a full queue rejects the job.
func (q *MemoryQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting jobs and waits for pending ones to be delivered.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.wg.Wait()
}
