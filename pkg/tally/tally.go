/*
Package tally accumulates line statistics per file extension over one walk.

A Tally is created with the full set of recognised extensions, each starting at
zero. The walker records one FileStats per qualifying file; the reporter reads
Rows and GrandTotal once the walk is over.

	t := tally.New(".go", ".md")
	t.Record(".go", tally.FileStats{Total: 3, Code: 2, Blank: 1})
	for _, row := range t.Rows() {
		fmt.Println(row.Extension, row.Files, row.Total)
	}
*/
package tally

import "sort"

// FileStats holds the line counts of a single file, or a sum of them.
type FileStats struct {
	Total   int
	Code    int
	Comment int
	Blank   int
}

// Add sums other into s field by field.
func (s *FileStats) Add(other FileStats) {
	s.Total += other.Total
	s.Code += other.Code
	s.Comment += other.Comment
	s.Blank += other.Blank
}

// Valid reports whether the counts are non-negative and Total == Code + Comment + Blank.
func (s FileStats) Valid() bool {
	if s.Total < 0 || s.Code < 0 || s.Comment < 0 || s.Blank < 0 {
		return false
	}
	return s.Total == s.Code+s.Comment+s.Blank
}

// ExtensionStats is the accumulated FileStats of every file sharing an extension.
type ExtensionStats struct {
	Files int
	FileStats
}

// Row is one reported extension.
type Row struct {
	Extension string
	ExtensionStats
}

// Tally owns the per-extension accumulators. It is not safe for concurrent use;
// a walk is expected to own it exclusively.
type Tally struct {
	stats map[string]*ExtensionStats
}

// New creates a Tally with a zeroed accumulator for every extension.
func New(extensions ...string) *Tally {
	t := &Tally{stats: make(map[string]*ExtensionStats, len(extensions))}
	for _, ext := range extensions {
		t.stats[ext] = &ExtensionStats{}
	}
	return t
}

// Record counts one file of the given extension. It returns false, leaving the
// tally untouched, when the extension was not registered in New.
func (t *Tally) Record(ext string, s FileStats) bool {
	acc, ok := t.stats[ext]
	if !ok {
		return false
	}
	acc.Files++
	acc.Add(s)
	return true
}

// Get returns the accumulated stats of ext.
func (t *Tally) Get(ext string) (ExtensionStats, bool) {
	acc, ok := t.stats[ext]
	if !ok {
		return ExtensionStats{}, false
	}
	return *acc, true
}

// Extensions returns every registered extension in ascending order.
func (t *Tally) Extensions() []string {
	exts := make([]string, 0, len(t.stats))
	for ext := range t.stats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Rows returns the extensions that saw at least one file, sorted ascending.
func (t *Tally) Rows() []Row {
	var rows []Row
	for _, ext := range t.Extensions() {
		acc := t.stats[ext]
		if acc.Files > 0 {
			rows = append(rows, Row{Extension: ext, ExtensionStats: *acc})
		}
	}
	return rows
}

// GrandTotal sums the rows returned by Rows.
func (t *Tally) GrandTotal() ExtensionStats {
	var total ExtensionStats
	for _, row := range t.Rows() {
		total.Files += row.Files
		total.Add(row.FileStats)
	}
	return total
}
