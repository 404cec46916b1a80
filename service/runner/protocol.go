package runner

import (
	"context"
	"time"

	"github.com/ursalint/ursa/model/bear"
	"github.com/ursalint/ursa/model/result"
	"github.com/ursalint/ursa/progress"
	"github.com/ursalint/ursa/service/filter"
	"github.com/ursalint/ursa/service/ignore"
	"github.com/ursalint/ursa/service/messaging"
	"github.com/ursalint/ursa/service/store"
)

// Presenter receives every printed batch together with the file table and
// the accumulated per-file diff state. It is never invoked concurrently.
type Presenter func(results []*result.Result, files bear.FileTable, diffs map[string]string)

// Protocol is the scheduler's state machine over the control queue. It
// drains result announcements in two phases: local results stream out as
// they arrive while global results are buffered, then the buffer is flushed
// and remaining global results stream directly. The phase boundary
// guarantees that no global finding is presented before the local findings
// of phase one.
type Protocol struct {
	Control      messaging.Queue[Element]
	Local        *store.Results[string]
	Global       *store.Results[int]
	Files        bear.FileTable
	IgnoreRanges []result.IgnoreRange
	MinSeverity  result.Severity
	Present      Presenter

	// Running probes how many worker/logger processes are alive. It is the
	// liveness fallback that keeps the protocol terminating when a worker
	// dies without posting a finished element.
	Running func() int

	// Workers is the number of worker processes the pool spawned.
	Workers int

	PollTimeout time.Duration
}

// NewProtocol builds the protocol for a pool, extracting the ignore ranges
// from the pool's file table.
func NewProtocol(pool *Pool, present Presenter) *Protocol {
	return &Protocol{
		Control:      pool.controlQueue,
		Local:        pool.LocalResults,
		Global:       pool.GlobalResults,
		Files:        pool.Files,
		IgnoreRanges: ignore.Extract(pool.Files),
		MinSeverity:  pool.section.MinSeverity(),
		Present:      present,
		Running:      pool.Running,
		Workers:      pool.Workers(),
		PollTimeout:  pool.pollTimeout,
	}
}

// Run drains the control queue until only the logger process remains alive.
// The returned flag reports whether any result ever survived filtering; it
// is sticky across both phases and is the execution's pass/fail signal.
func (p *Protocol) Run(ctx context.Context) bool {
	diffs := make(map[string]string)
	retval := false

	// The logger worker is one of the running processes and never posts
	// control elements, hence the > 1 conditions below.
	running := p.Running()
	localProcesses := p.Workers + 1
	var globalBuffer []int

	for localProcesses > 1 && running > 1 {
		msg, err := p.Control.Poll(ctx, p.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return retval
			}
			// Empty poll: re-probe liveness so a silently dead worker
			// cannot stall phase one.
			running = p.Running()
			continue
		}
		element := *msg.T()
		_ = msg.Ack()

		switch element.Kind {
		case KindLocalFinished:
			localProcesses--
		case KindLocal:
			retval = p.print(ctx, p.Local.Get(element.File), retval, diffs)
		case KindGlobal:
			// Deferred: all local findings flush before any global one.
			globalBuffer = append(globalBuffer, element.Ordinal)
		}
	}

	// Flush the buffered global results in arrival order.
	for _, ordinal := range globalBuffer {
		retval = p.print(ctx, p.Global.Get(ordinal), retval, diffs)
	}

	running = p.Running()
	for running > 1 {
		msg, err := p.Control.Poll(ctx, p.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return retval
			}
			running = p.Running()
			continue
		}
		element := *msg.T()
		_ = msg.Ack()

		switch element.Kind {
		case KindGlobal:
			retval = p.print(ctx, p.Global.Get(element.Ordinal), retval, diffs)
		default:
			running = p.Running()
		}
	}
	return retval
}

// print routes one batch through the result filter and the presenter,
// folding the outcome into the sticky flag.
func (p *Protocol) print(ctx context.Context, batch []*result.Result, retval bool, diffs map[string]string) bool {
	filtered := filter.Results(batch, p.MinSeverity, p.IgnoreRanges)
	if p.Present != nil {
		p.Present(filtered, p.Files, diffs)
	}
	progress.UpdateCtx(ctx, progress.Delta{Presented: len(filtered)})
	return retval || len(filtered) > 0
}
