package chat

import (
	"context"
	"sync"

	"rpc-lab/domain"
	"rpc-lab/errors"
)

// Queue is the bounded single-producer/single-consumer hand-off between the
// goroutine reading the console and the transport sending on the stream.
//
// The producer owns Send and Close; the receiving side owns Receive and Drop.
// Send must not be called after Close.
type Queue struct {
	items     chan domain.ChatMessage
	dropped   chan struct{}
	closeOnce sync.Once
	dropOnce  sync.Once
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = domain.DefaultQueueCapacity
	}
	return &Queue{
		items:   make(chan domain.ChatMessage, capacity),
		dropped: make(chan struct{}),
	}
}

// Send enqueues msg, blocking while the queue is full.
// It returns ErrQueueClosed once the receiving end has been dropped.
func (q *Queue) Send(ctx context.Context, msg domain.ChatMessage) error {
	// A dropped receiver wins over free capacity: nobody would read the message.
	select {
	case <-q.dropped:
		return errors.ErrQueueClosed
	default:
	}
	select {
	case q.items <- msg:
		return nil
	case <-q.dropped:
		return errors.ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive is the readable end. It is closed once the producer called Close.
func (q *Queue) Receive() <-chan domain.ChatMessage {
	return q.items
}

// Close marks the end of the outbound sequence.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.items) })
}

// Drop tells the producer nobody reads the queue anymore.
func (q *Queue) Drop() {
	q.dropOnce.Do(func() { close(q.dropped) })
}

// Dropped is closed once the receiving end went away.
func (q *Queue) Dropped() <-chan struct{} {
	return q.dropped
}

func (q *Queue) Len() int {
	return len(q.items)
}

func (q *Queue) Cap() int {
	return cap(q.items)
}
