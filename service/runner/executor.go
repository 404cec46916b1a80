package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ursalint/ursa/internal/clock"
	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/model/bear"
	"github.com/ursalint/ursa/model/section"
	"github.com/ursalint/ursa/service/deps"
	"github.com/ursalint/ursa/service/store"
	"github.com/ursalint/ursa/tracing"
)

// Output bundles everything a section execution produced. The result stores
// and the file table stay valid until the caller discards them.
type Output struct {
	// HasResults is true when at least one result survived filtering at
	// any point of the run.
	HasResults bool

	LocalResults  *store.Results[string]
	GlobalResults *store.Results[int]
	Files         bear.FileTable
}

// CPUCount returns the host's detected parallelism, never less than 2.
func CPUCount() int {
	if count := runtime.NumCPU(); count > 2 {
		return count
	}
	return 2
}

// ExecuteSection runs every bear of a section across a bounded worker pool
// and streams filtered findings to the presenter.
//
// It resolves the bear dependency order, resolves the effective worker
// count from the section's jobs setting, builds the pool, starts workers
// and the logger and drains the control queue. On every exit path the
// logger is told to stop and every spawned process is awaited, so no
// process leaks regardless of how draining terminates. Only an unresolvable
// dependency set or a collection failure is an error; everything else is
// absorbed and logged.
func ExecuteSection(ctx context.Context, sec *section.Section, localDescriptors, globalDescriptors []*bear.Descriptor, present Presenter, sink logging.Sink, options ...Option) (output *Output, err error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("runner.ExecuteSection %s", sec.Name), "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"section.name": sec.Name})

	if localDescriptors, err = deps.Resolve(localDescriptors); err != nil {
		return nil, err
	}
	if globalDescriptors, err = deps.Resolve(globalDescriptors); err != nil {
		return nil, err
	}

	jobCount := resolveJobCount(sec, sink)
	options = append([]Option{WithJobCount(jobCount), WithSink(sink)}, options...)

	pool, err := NewPool(ctx, sec, localDescriptors, globalDescriptors, options...)
	if err != nil {
		return nil, err
	}

	pool.Start(ctx)
	defer func() {
		pool.StopLogger()
		pool.Wait()
	}()

	hasResults := NewProtocol(pool, present).Run(ctx)
	return &Output{
		HasResults:    hasResults,
		LocalResults:  pool.LocalResults,
		GlobalResults: pool.GlobalResults,
		Files:         pool.Files,
	}, nil
}

// resolveJobCount parses the jobs setting. A non-numeric or non-positive
// value is warned about and replaced by the detected parallelism; an absent
// setting falls back silently the same way.
func resolveJobCount(sec *section.Section, sink logging.Sink) int {
	value, present, err := sec.Int("jobs")
	if err != nil || (present && value <= 0) {
		warnSink(sink, "Unable to convert setting 'jobs' into a number. Falling back to CPU count.")
		return CPUCount()
	}
	if !present {
		return CPUCount()
	}
	return value
}

func warnSink(sink logging.Sink, message string) {
	if sink == nil {
		return
	}
	sink.Log(logging.Entry{Level: logging.LevelWarning, Message: message, Time: clock.Now()})
}
