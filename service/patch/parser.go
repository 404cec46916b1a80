package patch

import (
	"fmt"
	"strconv"
	"strings"
)

// LineKind classifies one line of a hunk body.
type LineKind int

const (
	// LineContext is an unchanged line present in both versions.
	LineContext LineKind = iota
	// LineRemoved is a line present only in the old version.
	LineRemoved
	// LineAdded is a line present only in the new version.
	LineAdded
)

// Line is one body line of a hunk, without its +/-/space prefix.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is one contiguous change block of a unified diff.
type Hunk struct {
	OldStart int // 1-based first line in the old file
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// FileDiff is a parsed unified diff for a single file.
type FileDiff struct {
	OldPath string
	NewPath string
	Hunks   []*Hunk
}

// Parse parses a single-file unified diff, the format fix suggestions are
// attached to results in. The ---/+++ header pair is optional; hunk headers
// carry the usual "@@ -start,count +start,count @@" ranges with counts
// defaulting to 1.
func Parse(text string) (*FileDiff, error) {
	diff := &FileDiff{}
	var hunk *Hunk

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "--- "):
			diff.OldPath = strings.TrimSpace(line[4:])
		case strings.HasPrefix(line, "+++ "):
			diff.NewPath = strings.TrimSpace(line[4:])
		case strings.HasPrefix(line, "@@ "):
			parsed, err := parseHunkHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			hunk = parsed
			diff.Hunks = append(diff.Hunks, hunk)
		case line == "" && i == len(lines)-1:
			// trailing newline of the diff itself
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file"
		default:
			if hunk == nil {
				if strings.TrimSpace(line) == "" {
					continue
				}
				return nil, fmt.Errorf("line %d: content before first hunk header", i+1)
			}
			body, err := parseBodyLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			hunk.Lines = append(hunk.Lines, body)
		}
	}

	for _, h := range diff.Hunks {
		if err := h.validate(); err != nil {
			return nil, err
		}
	}
	return diff, nil
}

func parseBodyLine(line string) (Line, error) {
	switch line[0] {
	case ' ':
		return Line{Kind: LineContext, Text: line[1:]}, nil
	case '-':
		return Line{Kind: LineRemoved, Text: line[1:]}, nil
	case '+':
		return Line{Kind: LineAdded, Text: line[1:]}, nil
	}
	return Line{}, fmt.Errorf("unexpected hunk body prefix %q", line[0])
}

// parseHunkHeader parses "@@ -oldStart[,oldLines] +newStart[,newLines] @@".
func parseHunkHeader(line string) (*Hunk, error) {
	rest := strings.TrimPrefix(line, "@@ ")
	end := strings.Index(rest, " @@")
	if end < 0 {
		return nil, fmt.Errorf("malformed hunk header %q", line)
	}
	fields := strings.Fields(rest[:end])
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "-") || !strings.HasPrefix(fields[1], "+") {
		return nil, fmt.Errorf("malformed hunk header %q", line)
	}

	oldStart, oldLines, err := parseRange(fields[0][1:])
	if err != nil {
		return nil, fmt.Errorf("malformed hunk header %q: %w", line, err)
	}
	newStart, newLines, err := parseRange(fields[1][1:])
	if err != nil {
		return nil, fmt.Errorf("malformed hunk header %q: %w", line, err)
	}
	return &Hunk{OldStart: oldStart, OldLines: oldLines, NewStart: newStart, NewLines: newLines}, nil
}

func parseRange(text string) (start, count int, err error) {
	count = 1
	if comma := strings.Index(text, ","); comma >= 0 {
		if count, err = strconv.Atoi(text[comma+1:]); err != nil {
			return 0, 0, err
		}
		text = text[:comma]
	}
	if start, err = strconv.Atoi(text); err != nil {
		return 0, 0, err
	}
	return start, count, nil
}

// validate cross-checks the declared ranges against the body.
func (h *Hunk) validate() error {
	oldSeen, newSeen := 0, 0
	for _, line := range h.Lines {
		switch line.Kind {
		case LineContext:
			oldSeen++
			newSeen++
		case LineRemoved:
			oldSeen++
		case LineAdded:
			newSeen++
		}
	}
	if oldSeen != h.OldLines || newSeen != h.NewLines {
		return fmt.Errorf("hunk @@ -%d,%d +%d,%d @@ body does not match declared ranges",
			h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	}
	return nil
}
