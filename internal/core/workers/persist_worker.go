package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

var (
	ErrQueueFull     = errors.New("persist queue is full")
	ErrWorkerStopped = errors.New("persist worker stopped")
)

type JobKind string

const (
	JobSaveHabits       JobKind = "save_habits"
	JobSaveHistoryEntry JobKind = "save_history_entry"
)

// PersistJob is one durable write. Exactly one of Habits/Entry is used,
// depending on Kind.
type PersistJob struct {
	Kind    JobKind
	UserID  string
	DateKey string
	Habits  []domain.Habit
	Entry   *domain.HistoryEntry

	// OnFailure is called when the write fails or the job is rejected. It
	// never runs on the caller of Enqueue, so callers may hold their own
	// locks while enqueueing.
	OnFailure func(err error)

	receipt *PersistReceipt
}

// PersistReceipt resolves once the write behind it has completed.
type PersistReceipt struct {
	done chan struct{}
	err  error
}

func newReceipt() *PersistReceipt {
	return &PersistReceipt{done: make(chan struct{})}
}

func (r *PersistReceipt) resolve(err error) {
	r.err = err
	close(r.done)
}

// Done is closed when the write has completed.
func (r *PersistReceipt) Done() <-chan struct{} {
	return r.done
}

// Err is only meaningful after Done is closed.
func (r *PersistReceipt) Err() error {
	return r.err
}

// Wait blocks until the write completes or ctx ends.
func (r *PersistReceipt) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PersistWorker drains writes on a single goroutine, so writes for a user
// reach the store in the order they were enqueued.
type PersistWorker struct {
	store  domain.TrackerStore
	logger *zap.Logger
	jobs   chan PersistJob

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewPersistWorker(store domain.TrackerStore, queueSize int, logger *zap.Logger) *PersistWorker {
	if queueSize < 1 {
		queueSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersistWorker{
		store:  store,
		logger: logger,
		jobs:   make(chan PersistJob, queueSize),
	}
}

// Start runs the worker until ctx is cancelled. Queued jobs are drained
// before it returns. ctx only signals shutdown: writes run on a context
// that keeps its values but is never cancelled with it.
func (w *PersistWorker) Start(ctx context.Context) {
	writeCtx := context.WithoutCancel(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.logger.Info("persist worker started", zap.Int("queue_size", cap(w.jobs)))
		for {
			select {
			case job := <-w.jobs:
				w.processJob(writeCtx, job)
			case <-ctx.Done():
				w.shutdown(writeCtx)
				return
			}
		}
	}()
}

func (w *PersistWorker) shutdown(ctx context.Context) {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	// Writes already accepted still get a chance to land.
	for {
		select {
		case job := <-w.jobs:
			w.processJob(ctx, job)
		default:
			w.logger.Info("persist worker shutting down")
			return
		}
	}
}

// Wait blocks until Start's goroutine has exited.
func (w *PersistWorker) Wait() {
	w.wg.Wait()
}

// Enqueue hands a job to the worker without blocking. A full queue or a
// stopped worker resolves the receipt immediately with an error.
func (w *PersistWorker) Enqueue(job PersistJob) *PersistReceipt {
	job.receipt = newReceipt()

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		w.reject(job, ErrWorkerStopped)
		return job.receipt
	}

	select {
	case w.jobs <- job:
	default:
		w.logger.Warn("persist queue full, dropping job",
			zap.String("user_id", job.UserID),
			zap.String("kind", string(job.Kind)))
		w.reject(job, ErrQueueFull)
	}
	return job.receipt
}

func (w *PersistWorker) reject(job PersistJob, err error) {
	if job.OnFailure != nil {
		go job.OnFailure(err)
	}
	job.receipt.resolve(err)
}

func (w *PersistWorker) processJob(ctx context.Context, job PersistJob) {
	var err error
	switch job.Kind {
	case JobSaveHabits:
		err = w.store.SaveHabits(ctx, job.UserID, job.Habits)
	case JobSaveHistoryEntry:
		err = w.store.SaveHistoryEntry(ctx, job.UserID, job.DateKey, job.Entry)
	default:
		err = fmt.Errorf("unknown persist job kind %q", job.Kind)
	}

	if err != nil {
		w.logger.Error("persist job failed",
			zap.String("user_id", job.UserID),
			zap.String("kind", string(job.Kind)),
			zap.String("date_key", job.DateKey),
			zap.Error(err))
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		job.receipt.resolve(err)
		return
	}

	w.logger.Debug("persist job done",
		zap.String("user_id", job.UserID),
		zap.String("kind", string(job.Kind)))
	job.receipt.resolve(nil)
}
