package patch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// BackupSuffix is appended to the path of every file a snapshot preserves.
const BackupSuffix = ".orig"

// Snapshot preserves the pre-patch content of every touched file so that a
// failed application can be rolled back and so that the user keeps a .orig
// copy of anything that was modified in place.
type Snapshot struct {
	fs        afs.Service
	originals map[string][]byte
	order     []string
}

func NewSnapshot(fs afs.Service) *Snapshot {
	if fs == nil {
		fs = afs.New()
	}
	return &Snapshot{fs: fs, originals: map[string][]byte{}}
}

// Record captures the current content of path once and writes the .orig
// backup next to it. Recording the same path again is a no-op.
func (s *Snapshot) Record(ctx context.Context, path string) error {
	if _, done := s.originals[path]; done {
		return nil
	}
	data, err := s.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to snapshot %v: %w", path, err)
	}
	if err := s.fs.Upload(ctx, path+BackupSuffix, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write backup for %v: %w", path, err)
	}
	s.originals[path] = data
	s.order = append(s.order, path)
	return nil
}

// Restore writes every recorded original back, undoing all applied patches.
// It keeps going on individual failures and reports the first error.
func (s *Snapshot) Restore(ctx context.Context) error {
	var firstErr error
	for i := len(s.order) - 1; i >= 0; i-- {
		path := s.order[i]
		err := s.fs.Upload(ctx, path, file.DefaultFileOsMode, bytes.NewReader(s.originals[path]))
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to restore %v: %w", path, err)
		}
	}
	return firstErr
}

// Paths returns every recorded path in recording order.
func (s *Snapshot) Paths() []string {
	return append([]string(nil), s.order...)
}
