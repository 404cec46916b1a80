package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/ursalint/ursa/internal/clock"

	"github.com/ursalint/ursa/service/messaging"
)

// Level ranks log entries.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the canonical name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return "INFO"
}

// Entry is a single log record posted on the message queue by workers and
// bears, and forwarded to a Sink by the logger worker.
type Entry struct {
	Level   Level
	Message string
	Err     string
	Time    time.Time
}

// Sink receives log entries. Implementations must be safe for use from a
// single goroutine at a time; the logger worker serializes delivery.
type Sink interface {
	Log(entry Entry)
}

// Poster publishes log entries onto a message queue without ever blocking
// the caller for longer than its timeout. Failed posts are dropped; losing a
// log line must not stall analysis.
type Poster struct {
	queue   messaging.Queue[Entry]
	timeout time.Duration
}

// NewPoster creates a poster bound to queue. A non-positive timeout defaults
// to 100ms.
func NewPoster(queue messaging.Queue[Entry], timeout time.Duration) *Poster {
	if timeout <= 0 {
		timeout = 100 * time.Millisecond
	}
	return &Poster{queue: queue, timeout: timeout}
}

func (p *Poster) post(level Level, message string) {
	if p == nil || p.queue == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	entry := Entry{Level: level, Message: message, Time: clock.Now()}
	_ = p.queue.Publish(ctx, &entry)
}

// Debugf posts a debug entry.
func (p *Poster) Debugf(format string, args ...interface{}) {
	p.post(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof posts an info entry.
func (p *Poster) Infof(format string, args ...interface{}) {
	p.post(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf posts a warning entry.
func (p *Poster) Warnf(format string, args ...interface{}) {
	p.post(LevelWarning, fmt.Sprintf(format, args...))
}

// Errorf posts an error entry.
func (p *Poster) Errorf(format string, args ...interface{}) {
	p.post(LevelError, fmt.Sprintf(format, args...))
}

// Exception posts an error entry carrying the error text alongside the
// message.
func (p *Poster) Exception(err error, format string, args ...interface{}) {
	if p == nil || p.queue == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	entry := Entry{Level: LevelError, Message: fmt.Sprintf(format, args...), Time: clock.Now()}
	if err != nil {
		entry.Err = err.Error()
	}
	_ = p.queue.Publish(ctx, &entry)
}
