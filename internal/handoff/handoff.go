// Package handoff carries values from background producers to a single
// consumer that must never block on them.
package handoff

import (
	"codeberg.org/mutker/powertray/internal/errors"
)

// DefaultCapacity is plenty for a one-second producer drained every
// 64ms; overflow only happens when the consumer stalls.
const DefaultCapacity = 16

// Channel is a bounded FIFO with a non-blocking Send. When the buffer is
// full the oldest pending value is dropped, so retained values keep their
// send order and the producer never waits on the consumer.
type Channel[T any] struct {
	buf  chan T
	done chan struct{}
}

// New returns a Channel holding at most capacity pending values
func New[T any](capacity int) *Channel[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Channel[T]{
		buf:  make(chan T, capacity),
		done: make(chan struct{}),
	}
}

// Send enqueues v without blocking. It fails with errors.ErrClosed once
// the consumer has closed its end.
func (c *Channel[T]) Send(v T) error {
	for {
		select {
		case <-c.done:
			return errors.New().New(errors.ErrClosed)
		default:
		}

		select {
		case c.buf <- v:
			return nil
		default:
		}

		// Full: drop the oldest value. The consumer may win the race for
		// it, in which case there is room on the next pass anyway.
		select {
		case <-c.buf:
		default:
		}
	}
}

// TryReceive returns the next pending value, or false when there is none
func (c *Channel[T]) TryReceive() (T, bool) {
	select {
	case v := <-c.buf:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Len returns the number of pending values
func (c *Channel[T]) Len() int {
	return len(c.buf)
}

// Close drops the consumer end. Pending values are discarded and later
// sends fail. Close must only be called by the consumer, once.
func (c *Channel[T]) Close() {
	close(c.done)
}

// Closed reports whether the consumer end has been dropped
func (c *Channel[T]) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
