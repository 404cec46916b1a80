package logging

import (
	"strings"
	"sync"
)

// Recorder is a Sink that keeps every entry in memory. It backs assertions
// in tests and dry runs.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Log implements Sink.
func (r *Recorder) Log(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Entries returns a copy of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Contains reports whether any recorded entry at the given level includes
// substr in its message.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, entry := range r.Entries() {
		if entry.Level == level && strings.Contains(entry.Message, substr) {
			return true
		}
	}
	return false
}
