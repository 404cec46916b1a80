package runner

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/model/result"
	"github.com/ursalint/ursa/progress"
)

// worker drains the filename queue running every local bear per file, then
// drains the global-bear queue, publishing findings into the shared stores
// and announcing each batch on the control queue.
type worker struct {
	id    int
	pool  *Pool
	alive atomic.Bool
}

func newWorker(id int, pool *Pool) *worker {
	w := &worker{id: id, pool: pool}
	w.alive.Store(true)
	return w
}

func (w *worker) run(ctx context.Context) {
	// The alive flag is the liveness signal the scheduler probes; clearing
	// it in a defer keeps the probe truthful even when the worker dies
	// without posting a finished element.
	defer w.alive.Store(false)
	defer w.pool.wg.Done()

	messages := logging.NewPoster(w.pool.messageQueue, w.pool.pollTimeout)

	for {
		msg, err := w.pool.fileQueue.Poll(ctx, w.pool.pollTimeout)
		if err != nil {
			// The queue was filled once before any worker started, so an
			// empty poll means the local work is exhausted.
			break
		}
		filename := *msg.T()
		_ = msg.Ack()
		w.runLocalBears(ctx, messages, filename)
		w.post(ctx, Element{Kind: KindLocal, File: filename})
	}
	w.post(ctx, Element{Kind: KindLocalFinished})

	for {
		msg, err := w.pool.globalQueue.Poll(ctx, w.pool.pollTimeout)
		if err != nil {
			break
		}
		ordinal := *msg.T()
		_ = msg.Ack()
		w.runGlobalBear(ctx, messages, ordinal)
		w.post(ctx, Element{Kind: KindGlobal, Ordinal: ordinal})
	}
	w.post(ctx, Element{Kind: KindGlobalFinished})
}

// runLocalBears executes every local bear against one file and publishes the
// combined findings under the file's key.
func (w *worker) runLocalBears(ctx context.Context, messages *logging.Poster, filename string) {
	lines := w.pool.Files[filename]
	batch := make([]*result.Result, 0)
	for _, instance := range w.pool.localBears {
		results, err := w.analyzeSafely(func() ([]*result.Result, error) {
			return instance.Analyze(ctx, filename, lines)
		})
		if err != nil {
			messages.Exception(err, "Bear %s failed on %s.", instance.Name(), filename)
			progress.UpdateCtx(ctx, progress.Delta{Failures: 1})
			continue
		}
		batch = append(batch, results...)
	}
	w.pool.LocalResults.Append(filename, batch)
	progress.UpdateCtx(ctx, progress.Delta{Files: 1, Findings: len(batch)})
}

// runGlobalBear executes the global bear at the given ordinal and publishes
// its findings under that ordinal.
func (w *worker) runGlobalBear(ctx context.Context, messages *logging.Poster, ordinal int) {
	if ordinal < 0 || ordinal >= len(w.pool.globalBears) {
		return
	}
	instance := w.pool.globalBears[ordinal]
	results, err := w.analyzeSafely(func() ([]*result.Result, error) {
		return instance.Analyze(ctx)
	})
	if err != nil {
		messages.Exception(err, "Bear %s failed.", instance.Name())
		progress.UpdateCtx(ctx, progress.Delta{Failures: 1})
		results = nil
	}
	w.pool.GlobalResults.Append(ordinal, results)
	progress.UpdateCtx(ctx, progress.Delta{Globals: 1, Findings: len(results)})
}

// analyzeSafely runs one bear invocation, converting a panic into an error
// so a misbehaving bear cannot corrupt shared state or kill the worker.
func (w *worker) analyzeSafely(analyze func() ([]*result.Result, error)) (results []*result.Result, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			results = nil
			err = fmt.Errorf("bear panicked: %v", recovered)
		}
	}()
	return analyze()
}

// post publishes a control element. Elements are never dropped while the
// run context is live.
func (w *worker) post(ctx context.Context, element Element) {
	_ = w.pool.controlQueue.Publish(ctx, &element)
}
