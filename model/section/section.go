package section

import (
	"strconv"
	"strings"
	"sync"

	"github.com/viant/toolbox"

	"github.com/ursalint/ursa/model/result"
)

// Section is a named configuration bag describing one analysis run. It is
// populated before execution starts and treated as read-only afterwards.
type Section struct {
	Name     string
	mux      sync.RWMutex
	settings map[string]string
}

// New creates an empty section with the given name.
func New(name string) *Section {
	return &Section{Name: name, settings: make(map[string]string)}
}

// Set stores a setting, converting the value to its string form.
func (s *Section) Set(key string, value interface{}) *Section {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.settings[strings.ToLower(key)] = toolbox.AsString(value)
	return s
}

// Get returns a raw setting value and whether it was present.
func (s *Section) Get(key string) (string, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	value, ok := s.settings[strings.ToLower(key)]
	return value, ok
}

// Str returns a setting value or defaultValue when absent.
func (s *Section) Str(key, defaultValue string) string {
	if value, ok := s.Get(key); ok {
		return value
	}
	return defaultValue
}

// Int parses a setting as an integer. The second return value distinguishes
// an absent setting from an unparsable one: (0, false, nil) means absent,
// a non-nil error means present but not numeric.
func (s *Section) Int(key string) (int, bool, error) {
	value, ok := s.Get(key)
	if !ok || strings.TrimSpace(value) == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, true, err
	}
	return parsed, true, nil
}

// PathList splits a setting into a list of path patterns. Both commas and
// newlines act as separators; empty elements are dropped.
func (s *Section) PathList(key string) []string {
	value, ok := s.Get(key)
	if !ok {
		return nil
	}
	var paths []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == '\n' }) {
		if part = strings.TrimSpace(part); part != "" {
			paths = append(paths, part)
		}
	}
	return paths
}

// MinSeverity returns the configured result severity threshold, defaulting
// to INFO.
func (s *Section) MinSeverity() result.Severity {
	return result.ParseSeverity(s.Str("min_severity", "INFO"))
}
