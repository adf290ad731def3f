// Package queue provides a completion-order queue for asynchronously
// running tasks, the scheduling primitive the Layout reconciler uses to
// drive concurrent element renders.
package queue

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Task is anything a FutureQueue can run to completion: a function taking
// a context (cancelled on FutureQueue.Cancel) and returning a result or an
// error.
type Task[T any] func(ctx context.Context) (T, error)

// result pairs a task's outcome with the id it was put under. Get returns
// only the value and error; the id is not exposed to callers.
type result[T any] struct {
	id    string
	value T
	err   error
}

// FutureQueue delivers the results of asynchronously running tasks in the
// order they complete, not the order they were enqueued: Put starts a task
// and returns immediately; Get suspends until any task finishes and
// returns its result, re-raising the task's own failure.
//
// Put, Get, Cancel, and Len are all safe to call concurrently from multiple
// goroutines.
type FutureQueue[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc

	done chan result[T]

	mu      sync.Mutex
	pending map[string]context.CancelFunc
	wg      sync.WaitGroup

	closed bool
}

// New creates a FutureQueue ready to accept tasks.
func New[T any]() *FutureQueue[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &FutureQueue[T]{
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan result[T]),
		pending: make(map[string]context.CancelFunc),
	}
}

// Put registers a task for execution. The result becomes available to a
// future Get call once the task finishes, however long that takes, and
// regardless of what else was Put before or after it.
//
// Put must not be called after Cancel.
func (q *FutureQueue[T]) Put(task Task[T]) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		panic("queue: Put called after Cancel")
	}
	taskCtx, taskCancel := context.WithCancel(q.ctx)
	id := uuid.New().String()
	q.pending[id] = taskCancel
	q.wg.Add(1)
	q.mu.Unlock()

	go func() {
		defer q.wg.Done()
		value, err := task(taskCtx)

		q.mu.Lock()
		delete(q.pending, id)
		closed := q.closed
		q.mu.Unlock()
		taskCancel()

		if closed {
			// Cancel() has already stopped listening on done; drop the result.
			return
		}
		select {
		case q.done <- result[T]{id: id, value: value, err: err}:
		case <-q.ctx.Done():
		}
	}()
}

// Get suspends until any previously Put task completes, then returns its
// result. If the task failed, Get returns that failure verbatim. Exactly
// one completion is consumed per call.
func (q *FutureQueue[T]) Get(ctx context.Context) (T, error) {
	select {
	case r := <-q.done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Len returns the number of tasks currently in flight (Put and not yet
// finished); a finished task whose result is still waiting for Get is not
// counted. Backs the layout_futurequeue_pending metric.
func (q *FutureQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Cancel requests cancellation of every still-pending task and blocks
// until they have all settled, in whatever terminal state they reach.
// After Cancel returns, Put must not be called again.
func (q *FutureQueue[T]) Cancel() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
}
