package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters spec files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters spec files by name pattern using wildcard matching.
// Supports patterns like "*.test" or "*select*"; a pattern without wildcards
// matches by substring. Input order is preserved.
func (f *Filter) FilterByName(specs []string, pattern string) []string {
	if pattern == "" {
		return specs
	}

	var filtered []string
	for _, spec := range specs {
		name := filepath.Base(spec)

		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, spec)
			continue
		}

		if strings.ContainsAny(pattern, "*?") {
			if matchParts(name, pattern) {
				filtered = append(filtered, spec)
			}
			continue
		}

		if strings.Contains(name, pattern) {
			filtered = append(filtered, spec)
		}
	}

	return filtered
}

// matchParts checks that every literal part of a "*" pattern occurs in name, in order
func matchParts(name, pattern string) bool {
	rest := name
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" || strings.Contains(part, "?") {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		found = true
	}
	return found
}
