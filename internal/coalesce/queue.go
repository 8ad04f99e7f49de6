package coalesce

import (
	"context"
	"errors"
	"sync"
)

// ErrShutdown is returned by Put after Shutdown, and by Get once the queue
// has been shut down and drained.
var ErrShutdown = errors.New("coalesce: queue is shut down")

type options struct {
	capacity int
}

// Option configures a Queue.
type Option func(*options)

// WithCapacity bounds the number of distinct pending keys. Put blocks while
// the queue is full. Zero or a negative value means unbounded.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// Queue is a coalescing FIFO of key/value pairs. Consumers only ever see
// values.
type Queue[K comparable, V any] struct {
	mu sync.Mutex

	// keys holds pending keys in first-insertion order
	keys []K

	// items holds the latest value for every pending key
	items map[K]V

	notEmpty *sync.Cond
	notFull  *sync.Cond

	capacity     int
	shuttingDown bool
}

// New creates an empty queue.
func New[K comparable, V any](opts ...Option) *Queue[K, V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	q := &Queue[K, V]{
		keys:     make([]K, 0),
		items:    make(map[K]V),
		capacity: o.capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Put stores value for key. A key that is already pending keeps its position
// and only its value is replaced; a new key goes to the back. On a bounded
// queue Put blocks until there is room, the context ends, or the queue is
// shut down. Replacing the value of a pending key never blocks.
func (q *Queue[K, V]) Put(ctx context.Context, key K, value V) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shuttingDown {
		return ErrShutdown
	}

	if _, pending := q.items[key]; pending {
		q.items[key] = value
		return nil
	}

	if q.full() {
		stop := q.wakeOnDone(ctx)
		defer stop()

		for q.full() && !q.shuttingDown && ctx.Err() == nil {
			q.notFull.Wait()
		}

		if q.shuttingDown {
			return ErrShutdown
		}
		if q.full() {
			return ctx.Err()
		}

		// Another producer may have queued the key while we waited.
		if _, pending := q.items[key]; pending {
			q.items[key] = value
			return nil
		}
	}

	q.keys = append(q.keys, key)
	q.items[key] = value
	q.notEmpty.Signal()
	return nil
}

// Get removes and returns the value of the key at the front of the queue,
// blocking while the queue is empty. Concurrent callers each receive a
// different entry.
func (q *Queue[K, V]) Get(ctx context.Context) (V, error) {
	var zero V

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.keys) == 0 && !q.shuttingDown {
		stop := q.wakeOnDone(ctx)
		defer stop()

		for len(q.keys) == 0 && !q.shuttingDown && ctx.Err() == nil {
			q.notEmpty.Wait()
		}
	}

	if len(q.keys) == 0 {
		if q.shuttingDown {
			return zero, ErrShutdown
		}
		return zero, ctx.Err()
	}

	key := q.keys[0]
	var zeroKey K
	q.keys[0] = zeroKey
	q.keys = q.keys[1:]

	value := q.items[key]
	delete(q.items, key)

	q.notFull.Broadcast()
	return value, nil
}

// Len returns the number of distinct pending keys.
func (q *Queue[K, V]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.keys)
}

// Shutdown stops the queue from accepting new keys and wakes every blocked
// caller. Entries already queued can still be drained with Get.
func (q *Queue[K, V]) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shuttingDown = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// full must be called with mu held.
func (q *Queue[K, V]) full() bool {
	return q.capacity > 0 && len(q.keys) >= q.capacity
}

// wakeOnDone wakes all waiters once ctx is done so they can re-check their
// condition. The returned function deregisters the callback.
func (q *Queue[K, V]) wakeOnDone(ctx context.Context) func() bool {
	return context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.notEmpty.Broadcast()
		q.notFull.Broadcast()
		q.mu.Unlock()
	})
}
