package scanner

import (
	"path/filepath"
	"strings"
)

// IgnoreSet is a set of literal substrings. A path is ignored when any of its
// segments contains any of the substrings.
type IgnoreSet []string

// ShouldIgnore reports whether path has a segment containing one of the
// patterns. Matching is case-sensitive.
func (s IgnoreSet) ShouldIgnore(path string) bool {
	if len(s) == 0 {
		return false
	}

	for _, segment := range segments(path) {
		for _, pattern := range s {
			if strings.Contains(segment, pattern) {
				return true
			}
		}
	}

	return false
}

// ShouldIgnore is the function form of IgnoreSet.ShouldIgnore.
func ShouldIgnore(path string, set IgnoreSet) bool {
	return set.ShouldIgnore(path)
}

// segments splits path on both '/' and the OS separator, dropping empty parts.
func segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
}
