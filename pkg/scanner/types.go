package scanner

import (
	"time"

	"github.com/sonemaro/linecount/pkg/tally"
)

// Result contains the outcome of one walk
type Result struct {
	Tally *tally.Tally
	Stats ScanStats
}

// ScanStats contains statistics about the walk itself
type ScanStats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Directories whose files were examined
	Directories int64
	// Directories skipped, with their subtrees, by the ignore set
	PrunedDirs int64
	// Symlinks to directories, which are never descended
	LinkedDirs int64
	// Files whose extension was recognised and which were read
	FilesCounted int64
	// Files skipped without being opened because of their extension
	FilesSkipped int64
	// Counted files that were not valid UTF-8
	DecodeFailures int64
	BytesRead      int64
}

// Config contains scanner configuration options
type Config struct {
	// Ignore prunes every directory with a segment containing one of its patterns
	Ignore IgnoreSet

	// Extensions selects the files that are counted
	Extensions ExtensionSet

	// RateLimit caps file reads per second (0 for unlimited)
	RateLimit int
}
