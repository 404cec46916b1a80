package messaging

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Poll when no message arrived within the bound.
// Pollers use it to distinguish an idle queue from a failure.
var ErrTimeout = errors.New("poll timed out")

// Queue represents an abstract message queue for any payload type.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue.
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message, blocking until one is available
	// or the context is done.
	Consume(ctx context.Context) (Message[T], error)

	// Poll retrieves a single message, waiting at most timeout. It returns
	// ErrTimeout when the queue stayed empty for the whole bound.
	Poll(ctx context.Context, timeout time.Duration) (Message[T], error)

	// Size returns the number of messages currently queued.
	Size() int
}

// Message represents a message retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message.
	T() *T

	// Ack acknowledges successful processing of this message.
	Ack() error

	// Nack indicates failure in processing this message.
	Nack(err error) error
}
