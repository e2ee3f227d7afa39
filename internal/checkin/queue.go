package checkin

import (
	"context"
	"sync"
	"vcheck/internal/models"
)

// compactThreshold bounds the dead prefix kept in the backing slice.
const compactThreshold = 256

// Queue is an unbounded FIFO of checkin records. Enqueue never blocks and is
// safe for any number of producers; Dequeue is meant for a single consumer.
type Queue struct {
	mu     sync.Mutex
	items  []models.CheckinRecord
	head   int
	notify chan struct{}
}

func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

func (q *Queue) Enqueue(record models.CheckinRecord) {
	q.mu.Lock()
	q.items = append(q.items, record)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// TryDequeue pops the head without waiting.
func (q *Queue) TryDequeue() (models.CheckinRecord, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return models.CheckinRecord{}, false
	}
	record := q.items[q.head]
	q.items[q.head] = models.CheckinRecord{}
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return record, true
}

// Dequeue blocks until a record is available or ctx is done.
func (q *Queue) Dequeue(ctx context.Context) (models.CheckinRecord, error) {
	for {
		if record, ok := q.TryDequeue(); ok {
			return record, nil
		}
		select {
		case <-q.notify:
		case <-ctx.Done():
			return models.CheckinRecord{}, ctx.Err()
		}
	}
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
