// Package filter reduces a batch of produced values to the findings worth
// presenting: genuine results at or above the severity threshold whose
// affected code is not suppressed by an ignore range.
package filter

import (
	"github.com/ursalint/ursa/model/result"
)

// Apply filters a batch. Values that are not *result.Result are dropped
// silently; the remaining results are kept when their severity meets the
// threshold and no ignore range suppresses their origin over their affected
// code. Apply is pure and idempotent.
func Apply(batch []interface{}, minSeverity result.Severity, ignoreRanges []result.IgnoreRange) []*result.Result {
	filtered := make([]*result.Result, 0, len(batch))
	for _, value := range batch {
		res, ok := value.(*result.Result)
		if !ok || res == nil {
			continue
		}
		if res.Severity < minSeverity {
			continue
		}
		if res.Ignored(ignoreRanges) {
			continue
		}
		filtered = append(filtered, res)
	}
	return filtered
}

// Results filters an already typed batch. It shares Apply's semantics and
// exists for callers that never deal with untyped payloads.
func Results(batch []*result.Result, minSeverity result.Severity, ignoreRanges []result.IgnoreRange) []*result.Result {
	values := make([]interface{}, len(batch))
	for i, res := range batch {
		values[i] = res
	}
	return Apply(values, minSeverity, ignoreRanges)
}
