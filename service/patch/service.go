package patch

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/ursalint/ursa/model/result"
)

// Service applies the fix suggestions attached to results. Every touched
// file is snapshotted first; if any suggestion fails to apply the whole
// batch is rolled back so the tree is never left half-patched.
type Service struct {
	fs afs.Service
}

func New() *Service {
	return &Service{fs: afs.New()}
}

// Outcome reports what one Apply call did.
type Outcome struct {
	Patched  []string // files modified in place, .orig backups written
	Rejected []string // origins whose suggestions failed to parse or apply
}

// Apply applies the diffs carried by the supplied results, one file at a
// time. Suggestions that fail to parse are skipped and reported in the
// outcome; a suggestion that parses but no longer matches the file content
// aborts and rolls back everything applied so far.
func (s *Service) Apply(ctx context.Context, results []*result.Result) (*Outcome, error) {
	outcome := &Outcome{}
	snapshot := NewSnapshot(s.fs)

	for _, res := range results {
		for path, diffText := range res.Diffs {
			diff, err := Parse(diffText)
			if err != nil {
				outcome.Rejected = append(outcome.Rejected, res.Origin)
				continue
			}
			if err := snapshot.Record(ctx, path); err != nil {
				return outcome, err
			}
			if err := s.applyToFile(ctx, path, diff); err != nil {
				restoreErr := snapshot.Restore(ctx)
				if restoreErr != nil {
					return outcome, fmt.Errorf("suggestion by %v failed (%v), rollback also failed: %w", res.Origin, err, restoreErr)
				}
				return outcome, fmt.Errorf("suggestion by %v failed, all changes rolled back: %w", res.Origin, err)
			}
		}
	}
	outcome.Patched = snapshot.Paths()
	return outcome, nil
}

func (s *Service) applyToFile(ctx context.Context, path string, diff *FileDiff) error {
	data, err := s.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return err
	}
	patched, err := applyToContent(string(data), diff)
	if err != nil {
		return err
	}
	return s.fs.Upload(ctx, path, file.DefaultFileOsMode, bytes.NewReader([]byte(patched)))
}

// applyToContent applies every hunk of the diff to the content, verifying
// that context and removed lines still match the file.
func applyToContent(content string, diff *FileDiff) (string, error) {
	trailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	if trailingNewline {
		lines = lines[:len(lines)-1]
	}

	var out []string
	cursor := 0 // next unconsumed 0-based line of the old content
	for _, hunk := range diff.Hunks {
		start := hunk.OldStart - 1
		if hunk.OldLines == 0 {
			// pure insertion: OldStart addresses the line after which to insert
			start = hunk.OldStart
		}
		if start < cursor || start > len(lines) {
			return "", fmt.Errorf("hunk @@ -%d,%d @@ is out of range", hunk.OldStart, hunk.OldLines)
		}
		out = append(out, lines[cursor:start]...)
		cursor = start

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext, LineRemoved:
				if cursor >= len(lines) || lines[cursor] != line.Text {
					return "", fmt.Errorf("hunk @@ -%d,%d @@ does not match file content at line %d", hunk.OldStart, hunk.OldLines, cursor+1)
				}
				if line.Kind == LineContext {
					out = append(out, line.Text)
				}
				cursor++
			case LineAdded:
				out = append(out, line.Text)
			}
		}
	}
	out = append(out, lines[cursor:]...)

	patched := strings.Join(out, "\n")
	if trailingNewline && patched != "" {
		patched += "\n"
	}
	return patched, nil
}
