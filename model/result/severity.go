package result

import "strings"

// Severity ranks how serious a finding is. Values are ordered so that
// thresholds can be compared with plain operators.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = map[Severity]string{
	SeverityDebug:   "DEBUG",
	SeverityInfo:    "INFO",
	SeverityWarning: "WARNING",
	SeverityError:   "ERROR",
}

// String returns the canonical upper-case name of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "INFO"
}

// ParseSeverity converts a severity name into a Severity. Unknown or empty
// names fall back to INFO so that a misconfigured threshold never rejects
// every finding.
func ParseSeverity(name string) Severity {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "WARNING":
		return SeverityWarning
	case "ERROR":
		return SeverityError
	}
	return SeverityInfo
}
