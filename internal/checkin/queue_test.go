package checkin

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"
	"vcheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(fields ...string) models.CheckinRecord {
	return models.NewCheckinRecord(fields...)
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 1000; i++ {
		q.Enqueue(rec(strconv.Itoa(i)))
	}
	assert.Equal(t, 1000, q.Len())

	for i := 0; i < 1000; i++ {
		r, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, strconv.Itoa(i), r.Fields()[0])
	}
	_, ok := q.TryDequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_InterleavedKeepsOrder(t *testing.T) {
	q := NewQueue()
	next := 0
	expected := 0
	for round := 0; round < 50; round++ {
		for i := 0; i < 20; i++ {
			q.Enqueue(rec(strconv.Itoa(next)))
			next++
		}
		for i := 0; i < 13; i++ {
			r, ok := q.TryDequeue()
			require.True(t, ok)
			require.Equal(t, strconv.Itoa(expected), r.Fields()[0])
			expected++
		}
	}
	for {
		r, ok := q.TryDequeue()
		if !ok {
			break
		}
		require.Equal(t, strconv.Itoa(expected), r.Fields()[0])
		expected++
	}
	assert.Equal(t, next, expected)
}

func TestQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := NewQueue()
	got := make(chan models.CheckinRecord, 1)
	go func() {
		r, err := q.Dequeue(context.Background())
		if err == nil {
			got <- r
		}
	}()

	select {
	case <-got:
		t.Fatal("dequeue returned before anything was enqueued")
	case <-time.After(50 * time.Millisecond):
	}

	q.Enqueue(rec("1.0.0"))
	select {
	case r := <-got:
		assert.Equal(t, []string{"1.0.0"}, r.Fields())
	case <-time.After(2 * time.Second):
		t.Fatal("dequeue did not wake up")
	}
}

func TestQueue_DequeueCancelled(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueue_DequeuePrefersQueuedRecordsOverCancellation(t *testing.T) {
	q := NewQueue()
	q.Enqueue(rec("x"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, r.Fields())
}

// Each producer's records must come out in the order that producer enqueued them,
// and nothing may be lost or duplicated.
func TestQueue_ConcurrentProducersSingleConsumer(t *testing.T) {
	const producers = 8
	const perProducer = 2000

	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(rec(strconv.Itoa(p), strconv.Itoa(i)))
			}
		}(p)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	for n := 0; n < producers*perProducer; n++ {
		r, err := q.Dequeue(ctx)
		require.NoError(t, err)
		f := r.Fields()
		p, _ := strconv.Atoi(f[0])
		i, _ := strconv.Atoi(f[1])
		require.Equal(t, last[p]+1, i, "producer %d out of order", p)
		last[p] = i
	}
	wg.Wait()
	assert.Equal(t, 0, q.Len())
}
