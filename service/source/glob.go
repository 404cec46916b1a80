package source

import "strings"

// globBase returns the literal directory prefix of a pattern and whether the
// pattern contains glob metacharacters at all.
func globBase(pattern string) (string, bool) {
	idx := strings.IndexAny(pattern, "*?[")
	if idx < 0 {
		return pattern, false
	}
	base := pattern[:idx]
	if slash := strings.LastIndex(base, "/"); slash >= 0 {
		base = base[:slash]
	} else {
		base = "."
	}
	if base == "" {
		base = "/"
	}
	return base, true
}

// Match reports whether path matches the glob pattern. `*` and `?` do not
// cross path separators; `**` matches any number of path segments.
func Match(pattern, path string) bool {
	return matchSegments(splitSegments(pattern), splitSegments(path))
}

func splitSegments(value string) []string {
	return strings.Split(strings.Trim(value, "/"), "/")
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		for skip := 0; skip <= len(path); skip++ {
			if matchSegments(pattern[1:], path[skip:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	if !matchSegment(pattern[0], path[0]) {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}

// matchSegment matches a single path segment against a pattern segment
// supporting `*` and `?`.
func matchSegment(pattern, segment string) bool {
	p, s := 0, 0
	starP, starS := -1, 0
	for s < len(segment) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == segment[s]):
			p++
			s++
		case p < len(pattern) && pattern[p] == '*':
			starP, starS = p, s
			p++
		case starP >= 0:
			starS++
			p, s = starP+1, starS
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
