package bear

import (
	"context"
	"time"

	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/model/result"
	"github.com/ursalint/ursa/model/section"
)

// FileTable maps a file path to its content as an ordered sequence of lines.
// It is built once per execution and read-only afterwards.
type FileTable map[string][]string

// Local is a bear that analyses one file at a time.
type Local interface {
	// Name identifies the bear; findings carry it as their origin.
	Name() string

	// Analyze inspects a single file and returns its findings.
	Analyze(ctx context.Context, filename string, lines []string) ([]*result.Result, error)
}

// Global is a bear that analyses the whole file set it was constructed with.
type Global interface {
	Name() string

	// Analyze inspects the file table supplied at construction time.
	Analyze(ctx context.Context) ([]*result.Result, error)
}

// LocalConstructor builds a local bear for one execution. Returning an error
// signals unmet runtime requirements; the bear is then dropped from the pool
// without failing the run.
type LocalConstructor func(sec *section.Section, messages *logging.Poster, timeout time.Duration) (Local, error)

// GlobalConstructor builds a global bear for one execution.
type GlobalConstructor func(files FileTable, sec *section.Section, messages *logging.Poster, timeout time.Duration) (Global, error)

// Descriptor is a constructible unit of work plus its scheduling metadata.
// Exactly one of NewLocal and NewGlobal is set.
type Descriptor struct {
	Name      string
	DependsOn []string

	NewLocal  LocalConstructor
	NewGlobal GlobalConstructor
}

// IsLocal reports whether the descriptor constructs a local bear.
func (d *Descriptor) IsLocal() bool {
	return d.NewLocal != nil
}

// Base carries the construction arguments common to every bear. Concrete
// bears embed it.
type Base struct {
	Section  *section.Section
	Messages *logging.Poster
	Timeout  time.Duration
}

// NewBase creates the shared bear state.
func NewBase(sec *section.Section, messages *logging.Poster, timeout time.Duration) Base {
	return Base{Section: sec, Messages: messages, Timeout: timeout}
}
