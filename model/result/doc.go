// Package result defines the finding model shared between bears and the
// execution core: severities, source ranges, findings and the ignore ranges
// that suppress them.
package result
