// Package ignore extracts suppression regions from inline source
// directives. The grammar, matched case-insensitively anywhere in a line:
//
//	start ignoring <scope>
//	stop ignoring
//	ignore <scope>
//
// where <scope> is `all` or a comma/whitespace separated bear-name list.
package ignore

import (
	"strings"

	"github.com/viant/parsly"

	"github.com/ursalint/ursa/model/bear"
	"github.com/ursalint/ursa/model/result"
)

const (
	keywordStart = "start ignoring "
	keywordStop  = "stop ignoring"
	keywordLine  = "ignore "
)

// Extract scans every file of the table and returns the ignore ranges its
// directives declare. Order of the returned ranges is not significant.
func Extract(files bear.FileTable) []result.IgnoreRange {
	var ranges []result.IgnoreRange
	for filename, lines := range files {
		start := 0
		var bears []string
		for i, line := range lines {
			lineNumber := i + 1
			line = strings.ToLower(line)
			switch {
			case strings.Contains(line, keywordStart):
				start = lineNumber
				bears = Scope(line, keywordStart)
			case strings.Contains(line, keywordStop):
				if start != 0 {
					ranges = append(ranges, result.IgnoreRange{
						Range: result.NewSourceRange(filename, start, lineNumber),
						Bears: bears,
					})
					start = 0
				}
			case strings.Contains(line, keywordLine):
				// A single-shot directive covers its own line and the one
				// after it, independent of any open start/stop range.
				ranges = append(ranges, result.IgnoreRange{
					Range: result.NewSourceRange(filename, lineNumber, lineNumber+1),
					Bears: Scope(line, keywordLine),
				})
			}
		}
	}
	return ranges
}

// Scope parses the bear names declared after the rightmost occurrence of
// keyword in line. A scope starting with `all` (or an empty scope) yields
// nil, meaning every bear is suppressed.
func Scope(line, keyword string) []string {
	idx := strings.LastIndex(strings.ToLower(line), keyword)
	if idx < 0 {
		return nil
	}
	scope := line[idx+len(keyword):]
	if strings.HasPrefix(strings.TrimLeft(scope, " \t"), "all") {
		return nil
	}

	var bears []string
	cursor := parsly.NewCursor("", []byte(scope), 0)
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAfterOptional(whitespaceToken, bearNameToken)
		if matched.Code != bearNameToken.Code {
			// Skip separators and anything the name matcher rejected.
			if matched = cursor.MatchOne(separatorToken); matched.Code != separatorToken.Code {
				break
			}
			continue
		}
		if name := strings.ToLower(matched.Text(cursor)); name != "" {
			bears = append(bears, name)
		}
	}
	return bears
}
