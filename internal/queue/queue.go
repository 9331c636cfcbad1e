package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrQueueClosed = errors.New("queue is closed")

// Task is one product page to extract.
type Task struct {
	ID         string
	URL        string
	MaxReviews int
	CreatedAt  time.Time
}

func NewTask(url string, maxReviews int) *Task {
	return &Task{
		ID:         uuid.NewString(),
		URL:        url,
		MaxReviews: maxReviews,
		CreatedAt:  time.Now(),
	}
}

// InMemoryQueue is a FIFO task queue feeding the sequential scrape loop.
// Waiters block on channels rather than a condition variable so that a
// cancelled Pop returns without ever touching the lock from another
// goroutine.
type InMemoryQueue struct {
	mu     sync.Mutex
	tasks  []*Task
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		tasks: make([]*Task, 0),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

func (q *InMemoryQueue) Push(task *Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.tasks = append(q.tasks, task)
	q.nudge()

	return nil
}

// nudge wakes at most one waiter. Callers must hold q.mu.
func (q *InMemoryQueue) nudge() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pop blocks until a task is available, the queue is closed, or the context
// is cancelled. Tasks pushed before Close are still drained after it.
func (q *InMemoryQueue) Pop(ctx context.Context) (*Task, error) {
	for {
		q.mu.Lock()
		if len(q.tasks) > 0 {
			task := q.tasks[0]
			q.tasks = q.tasks[1:]
			if len(q.tasks) > 0 {
				// More work remains; pass the wakeup on to the next waiter.
				q.nudge()
			}
			q.mu.Unlock()
			return task, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.done:
		case <-q.wake:
		}
	}
}

func (q *InMemoryQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.done)
	}

	return nil
}
