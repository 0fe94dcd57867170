package scanner

import (
	"path/filepath"
	"sort"
	"strings"
)

// Extension returns the lower-cased extension of the final segment of path,
// dot included. Leading dots do not start an extension, so ".json" has none
// while ".eslintrc.json" has ".json". A path without an extension yields "".
func Extension(path string) string {
	name := path
	if i := strings.LastIndexAny(name, "/"+string(filepath.Separator)); i >= 0 {
		name = name[i+1:]
	}

	name = strings.TrimLeft(name, ".")
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return ""
	}

	return strings.ToLower(name[dot:])
}

// ExtensionSet is the set of extensions whose files are counted.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from extensions, lower-casing each.
func NewExtensionSet(extensions ...string) ExtensionSet {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

// Contains reports whether ext is in the set. The empty extension never is.
func (s ExtensionSet) Contains(ext string) bool {
	if ext == "" {
		return false
	}
	_, ok := s[ext]
	return ok
}

// Sorted returns the members in ascending order.
func (s ExtensionSet) Sorted() []string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
