package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ursalint/ursa/model/bear"
	"github.com/ursalint/ursa/model/result"
	"github.com/ursalint/ursa/service/messaging/memory"
	"github.com/ursalint/ursa/service/store"
)

func newTestProtocol(workers int, running func() int, present Presenter) (*Protocol, *memory.Queue[Element]) {
	control := memory.NewQueue[Element](memory.DefaultConfig())
	return &Protocol{
		Control:     control,
		Local:       store.NewResults[string](),
		Global:      store.NewResults[int](),
		Files:       bear.FileTable{},
		MinSeverity: result.SeverityInfo,
		Present:     present,
		Running:     running,
		Workers:     workers,
		PollTimeout: 10 * time.Millisecond,
	}, control
}

func publish(t *testing.T, control *memory.Queue[Element], elements ...Element) {
	t.Helper()
	for i := range elements {
		assert.NoError(t, control.Publish(context.Background(), &elements[i]))
	}
}

// A worker that dies without posting its finished element must not stall the
// run: the liveness probe notices and the results gathered so far are still
// presented.
func TestProtocol_DeadWorkerTerminates(t *testing.T) {
	recorder := &presenterRecorder{}
	calls := 0
	running := func() int {
		calls++
		if calls > 2 {
			return 1
		}
		return 4
	}
	protocol, control := newTestProtocol(3, running, recorder.present)

	protocol.Local.Append("a.go", []*result.Result{
		result.New("ABear", "first", result.SeverityWarning, result.NewSourceRange("a.go", 1, 1)),
	})
	protocol.Local.Append("b.go", []*result.Result{
		result.New("ABear", "second", result.SeverityWarning, result.NewSourceRange("b.go", 1, 1)),
	})
	publish(t, control,
		Element{Kind: KindLocal, File: "a.go"},
		Element{Kind: KindLocal, File: "b.go"},
	)

	done := make(chan bool, 1)
	go func() { done <- protocol.Run(context.Background()) }()

	select {
	case retval := <-done:
		assert.True(t, retval)
	case <-time.After(5 * time.Second):
		t.Fatal("protocol did not terminate after worker death")
	}
	assert.Len(t, recorder.all(), 2)
}

// Global results announced during phase one are buffered and flushed only
// after every worker finished its local work, and the pass/fail flag stays
// set once any result survived filtering.
func TestProtocol_OrderAndStickyFlag(t *testing.T) {
	recorder := &presenterRecorder{}
	calls := 0
	running := func() int {
		calls++
		if calls > 2 {
			return 1
		}
		return 2
	}
	protocol, control := newTestProtocol(1, running, recorder.present)

	protocol.Local.Append("a.go", []*result.Result{
		result.New("LocalBear", "local", result.SeverityWarning, result.NewSourceRange("a.go", 1, 1)),
	})
	protocol.Global.Append(0, []*result.Result{
		result.New("GlobalBear", "global", result.SeverityWarning, result.NewSourceRange("a.go", 1, 1)),
	})
	protocol.Global.Append(1, nil)

	publish(t, control,
		Element{Kind: KindGlobal, Ordinal: 0},
		Element{Kind: KindLocal, File: "a.go"},
		Element{Kind: KindLocalFinished},
		Element{Kind: KindGlobal, Ordinal: 1},
		Element{Kind: KindGlobalFinished},
	)

	assert.True(t, protocol.Run(context.Background()))

	batches := recorder.all()
	assert.Len(t, batches, 3)
	assert.Equal(t, "LocalBear", batches[0][0].Origin)
	assert.Equal(t, "GlobalBear", batches[1][0].Origin)
	assert.Empty(t, batches[2])
}

func TestProtocol_NoSurvivors(t *testing.T) {
	recorder := &presenterRecorder{}
	running := func() int { return 1 }
	protocol, control := newTestProtocol(1, running, recorder.present)

	protocol.Local.Append("a.go", nil)
	publish(t, control,
		Element{Kind: KindLocal, File: "a.go"},
		Element{Kind: KindLocalFinished},
	)

	// Running probes 1 immediately, so only the pre-termination state
	// matters: nothing survived, nothing sets the flag.
	assert.False(t, protocol.Run(context.Background()))
}

func TestProtocol_ContextCancelled(t *testing.T) {
	protocol, _ := newTestProtocol(2, func() int { return 3 }, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan bool, 1)
	go func() { done <- protocol.Run(ctx) }()

	select {
	case retval := <-done:
		assert.False(t, retval)
	case <-time.After(5 * time.Second):
		t.Fatal("protocol did not honor cancellation")
	}
}
