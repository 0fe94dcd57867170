package scanner

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sonemaro/linecount/pkg/tally"
	"github.com/spf13/afero"
)

// Outcome tells whether a file could be decoded as text.
type Outcome int

const (
	// Decoded means the content was valid UTF-8 and its lines were counted
	Decoded Outcome = iota
	// DecodeFailed means the content was not valid UTF-8; stats are all zero
	DecodeFailed
)

func (o Outcome) String() string {
	switch o {
	case Decoded:
		return "decoded"
	case DecodeFailed:
		return "decode_failed"
	default:
		return "unknown"
	}
}

// Classification is the result of classifying one file.
type Classification struct {
	Outcome Outcome
	Stats   tally.FileStats
	// Bytes is the size of the content that was classified
	Bytes int64
}

// commentPrefixes are tested in order against each whitespace-trimmed line.
var commentPrefixes = []string{"//", "#", "/*", "*", "*/"}

// Classify buckets the lines of content into blank, comment and code.
func Classify(content []byte) Classification {
	if !utf8.Valid(content) {
		return Classification{Outcome: DecodeFailed, Bytes: int64(len(content))}
	}

	var stats tally.FileStats
	for _, line := range splitLines(string(content)) {
		stats.Total++

		trimmed := strings.TrimFunc(line, isSpace)
		switch {
		case trimmed == "":
			stats.Blank++
		case isComment(trimmed):
			stats.Comment++
		}
	}
	stats.Code = stats.Total - stats.Blank - stats.Comment

	return Classification{Outcome: Decoded, Stats: stats, Bytes: int64(len(content))}
}

// isSpace reports Unicode white space and the file, group, record and unit
// separators (0x1c-0x1f).
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// CountLines reads path from fsys and classifies it. Only undecodable content is
// absorbed into the result; open and read failures are returned.
func CountLines(fsys afero.Fs, path string) (Classification, error) {
	content, err := readFile(fsys, path)
	if err != nil {
		return Classification{}, err
	}
	return Classify(content), nil
}

func isComment(trimmed string) bool {
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// splitLines splits text the way a text-mode "read all lines" does: "\r\n",
// "\r" and "\n" each end a line, and a terminator at the very end does not
// start another one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	return strings.Split(text, "\n")
}

// readFile reads the whole file, closing it on every path.
func readFile(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, wrapFsError(path, "open", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, wrapFsError(path, "read", err)
	}

	return content, nil
}

func wrapFsError(path, op string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return &PermissionError{Path: path, Err: err}
	}
	return &ReadError{Path: path, Op: op, Err: err}
}
