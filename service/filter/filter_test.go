package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ursalint/ursa/model/result"
)

func finding(origin string, severity result.Severity, file string, line int) *result.Result {
	return result.New(origin, "finding", severity, result.NewSourceRange(file, line, line))
}

func TestApply_SeverityThreshold(t *testing.T) {
	batch := []interface{}{
		finding("ABear", result.SeverityDebug, "a.go", 1),
		finding("ABear", result.SeverityInfo, "a.go", 2),
		finding("ABear", result.SeverityWarning, "a.go", 3),
		finding("ABear", result.SeverityError, "a.go", 4),
	}

	filtered := Apply(batch, result.SeverityWarning, nil)
	assert.Len(t, filtered, 2)
	for _, res := range filtered {
		assert.GreaterOrEqual(t, res.Severity, result.SeverityWarning)
	}
}

func TestApply_DropsNonResults(t *testing.T) {
	batch := []interface{}{
		"not a result",
		42,
		nil,
		(*result.Result)(nil),
		finding("ABear", result.SeverityError, "a.go", 1),
	}
	filtered := Apply(batch, result.SeverityDebug, nil)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "ABear", filtered[0].Origin)
}

func TestApply_IgnoreRanges(t *testing.T) {
	ranges := []result.IgnoreRange{
		{Range: result.NewSourceRange("a.go", 3, 10), Bears: []string{"mybear"}},
		{Range: result.NewSourceRange("b.go", 1, 5)}, // all bears
	}

	batch := []interface{}{
		finding("MyBear", result.SeverityError, "a.go", 5),    // named, inside
		finding("OtherBear", result.SeverityError, "a.go", 5), // not named
		finding("MyBear", result.SeverityError, "a.go", 12),   // outside
		finding("AnyBear", result.SeverityError, "b.go", 2),   // blanket
		finding("MyBear", result.SeverityError, "c.go", 5),    // other file
	}

	filtered := Apply(batch, result.SeverityInfo, ranges)
	assert.Len(t, filtered, 3)
	origins := make([]string, 0, len(filtered))
	for _, res := range filtered {
		origins = append(origins, res.Origin+":"+res.Affected.File)
	}
	assert.ElementsMatch(t, []string{"OtherBear:a.go", "MyBear:a.go", "MyBear:c.go"}, origins)
}

func TestApply_Idempotent(t *testing.T) {
	ranges := []result.IgnoreRange{
		{Range: result.NewSourceRange("a.go", 1, 3)},
	}
	batch := []interface{}{
		finding("ABear", result.SeverityInfo, "a.go", 2),
		finding("ABear", result.SeverityWarning, "a.go", 7),
		finding("ABear", result.SeverityDebug, "a.go", 9),
	}

	once := Apply(batch, result.SeverityInfo, ranges)
	again := Results(once, result.SeverityInfo, ranges)
	assert.Equal(t, once, again)
}
