package result

import "strings"

// SourceRange identifies a span of lines within a single file. EndLine is
// inclusive unless stated otherwise by the producer of the range.
type SourceRange struct {
	File      string `json:"file" yaml:"file"`
	StartLine int    `json:"startLine" yaml:"startLine"`
	EndLine   int    `json:"endLine" yaml:"endLine"`
}

// NewSourceRange creates a range covering [startLine, endLine] of file.
func NewSourceRange(file string, startLine, endLine int) SourceRange {
	return SourceRange{File: file, StartLine: startLine, EndLine: endLine}
}

// Overlaps reports whether both ranges cover at least one common line of the
// same file.
func (r SourceRange) Overlaps(other SourceRange) bool {
	if r.File != other.File {
		return false
	}
	return r.StartLine <= other.EndLine && other.StartLine <= r.EndLine
}

// Result is a single finding produced by a bear.
type Result struct {
	// Origin is the name of the bear that produced this finding.
	Origin string `json:"origin" yaml:"origin"`

	Message  string      `json:"message" yaml:"message"`
	Severity Severity    `json:"severity" yaml:"severity"`
	Affected SourceRange `json:"affected" yaml:"affected"`

	// Diffs optionally maps file names to unified-diff text describing a
	// suggested fix.
	Diffs map[string]string `json:"diffs,omitempty" yaml:"diffs,omitempty"`

	// Metadata carries opaque bear specific payload.
	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// New creates a finding with the supplied origin, message, severity and
// affected range.
func New(origin, message string, severity Severity, affected SourceRange) *Result {
	return &Result{Origin: origin, Message: message, Severity: severity, Affected: affected}
}

// IgnoreRange couples a source range with the bear names it suppresses. An
// empty Bears set suppresses every bear within the range.
type IgnoreRange struct {
	Range SourceRange
	// Bears holds lower-cased bear names; empty means all bears.
	Bears []string
}

// Suppresses reports whether the ignore range applies to a bear of the given
// origin name.
func (i IgnoreRange) Suppresses(origin string) bool {
	if len(i.Bears) == 0 {
		return true
	}
	origin = strings.ToLower(origin)
	for _, name := range i.Bears {
		if name == origin {
			return true
		}
	}
	return false
}

// Ignored reports whether the result's affected code lies within any of the
// supplied ignore ranges naming (or blanket suppressing) its origin.
func (r *Result) Ignored(ranges []IgnoreRange) bool {
	for _, ignore := range ranges {
		if ignore.Suppresses(r.Origin) && r.Affected.Overlaps(ignore.Range) {
			return true
		}
	}
	return false
}
