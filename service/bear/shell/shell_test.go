package shell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ursalint/ursa/model/result"
	"github.com/ursalint/ursa/model/section"
)

func TestParseFindings(t *testing.T) {
	output := "3: trailing whitespace\n" +
		"not a finding\n" +
		"0: bad line number\n" +
		"12:\n" +
		"7: tab used for indentation\n"

	results := ParseFindings("a.go", output, result.SeverityWarning)
	assert.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Affected.StartLine)
	assert.Equal(t, "trailing whitespace", results[0].Message)
	assert.Equal(t, 7, results[1].Affected.StartLine)
	for _, res := range results {
		assert.Equal(t, Name, res.Origin)
		assert.Equal(t, result.SeverityWarning, res.Severity)
		assert.Equal(t, "a.go", res.Affected.File)
	}
}

func TestNew_RequiresCommand(t *testing.T) {
	sec := section.New("lint")
	_, err := New(sec, nil, 100*time.Millisecond)
	assert.Error(t, err)
}
