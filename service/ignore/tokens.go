package ignore

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	bearNameCode
	separatorCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	bearNameToken   = parsly.NewToken(bearNameCode, "BearName", newBearNameMatcher())
	separatorToken  = parsly.NewToken(separatorCode, ",", matcher.NewByte(','))
)

func newBearNameMatcher() parsly.Matcher {
	return &bearNameMatcher{}
}

// bearNameMatcher matches a bear name: any run of characters up to the next
// comma or whitespace.
type bearNameMatcher struct{}

func (m *bearNameMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}

	matched := 0
	for i := pos; i < size; i++ {
		switch input[i] {
		case ',', ' ', '\t', '\r', '\n':
			return matched
		}
		matched++
	}
	return matched
}
