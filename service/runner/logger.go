package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/service/messaging"
)

// loggerWorker drains the message queue and forwards every entry to the log
// sink until told to stop. It counts as one running process in the pool's
// liveness probe, which is why the scheduler's progress conditions compare
// against 1 rather than 0.
type loggerWorker struct {
	queue       messaging.Queue[logging.Entry]
	sink        logging.Sink
	pollTimeout time.Duration
	running     atomic.Bool
	alive       atomic.Bool
}

func newLoggerWorker(queue messaging.Queue[logging.Entry], sink logging.Sink, pollTimeout time.Duration) *loggerWorker {
	l := &loggerWorker{queue: queue, sink: sink, pollTimeout: pollTimeout}
	l.running.Store(true)
	l.alive.Store(true)
	return l
}

func (l *loggerWorker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer l.alive.Store(false)
	defer wg.Done()

	for l.running.Load() {
		msg, err := l.queue.Poll(ctx, l.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		if l.sink != nil {
			l.sink.Log(*msg.T())
		}
		_ = msg.Ack()
	}

	// Entries posted before the stop signal still reach the sink.
	for l.queue.Size() > 0 {
		msg, err := l.queue.Poll(ctx, l.pollTimeout)
		if err != nil {
			return
		}
		if l.sink != nil {
			l.sink.Log(*msg.T())
		}
		_ = msg.Ack()
	}
}

func (l *loggerWorker) stop() {
	l.running.Store(false)
}
