package runner

// Kind tags a control element posted by a worker.
type Kind int

const (
	// KindLocal announces that local-bear results for one file are
	// available in the local result store.
	KindLocal Kind = iota

	// KindLocalFinished announces that a worker has left its local phase.
	KindLocalFinished

	// KindGlobal announces that results of one global bear are available in
	// the global result store.
	KindGlobal

	// KindGlobalFinished announces that a worker has run out of global work
	// and is about to exit.
	KindGlobalFinished
)

// Element is one control-queue message. File carries the local result key
// for KindLocal; Ordinal carries the global-bear index for KindGlobal.
type Element struct {
	Kind    Kind
	File    string
	Ordinal int
}
