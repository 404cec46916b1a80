package result

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// GenerateDiff produces a GNU unified diff between the old and new content of
// path, suitable for the Diffs payload of a Result. Identical inputs yield an
// empty string.
func GenerateDiff(old, new []byte, path string, contextLines int) (string, error) {
	if contextLines <= 0 {
		contextLines = 3
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		B:        difflib.SplitLines(string(new)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("diff generation: %w", err)
	}
	return patch, nil
}
