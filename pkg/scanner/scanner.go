/*
Package scanner walks a directory tree and counts the lines of every file whose
extension is recognised.

The walk is top-down and strictly sequential. A directory with a path segment
containing an ignore pattern is pruned together with its subtree. Files whose
extension is not in the configured set are skipped without being opened. Every
other file is read, classified into blank, comment and code lines, and recorded
in a tally.Tally.

Basic usage:

	s := scanner.NewScanner(scanner.Config{
		Ignore:     scanner.IgnoreSet{"node_modules", ".git"},
		Extensions: scanner.NewExtensionSet(".ts", ".py"),
	}, afero.NewOsFs(), log)

	result, err := s.Scan(ctx, "/path/to/project")

Content that is not valid UTF-8 contributes zero lines but still counts as a
file. Any other filesystem error aborts the walk.
*/
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sonemaro/linecount/pkg/logger"
	"github.com/sonemaro/linecount/pkg/tally"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
)

// Scanner defines the interface for line counting walks
type Scanner interface {
	// Scan walks the tree rooted at root and returns the accumulated tally
	Scan(ctx context.Context, root string) (Result, error)
}

// scanner implements the Scanner interface
type scanner struct {
	config  Config
	fs      afero.Fs
	log     logger.Logger
	limiter *rate.Limiter
}

// NewScanner creates a Scanner reading from fs.
func NewScanner(config Config, fs afero.Fs, log logger.Logger) Scanner {
	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &scanner{
		config:  config,
		fs:      fs,
		log:     log,
		limiter: limiter,
	}
}

// Scan performs the walk
func (s *scanner) Scan(ctx context.Context, root string) (Result, error) {
	s.log.WithFields(logger.Fields{
		"root":       root,
		"ignore":     []string(s.config.Ignore),
		"extensions": s.config.Extensions.Sorted(),
		"rateLimit":  s.config.RateLimit,
	}).Info("Starting scan operation")

	info, err := s.fs.Stat(root)
	if err != nil {
		s.log.WithFields(logger.Fields{
			"error": err,
			"path":  root,
		}).Error("Failed to stat root directory")
		return Result{}, fmt.Errorf("failed to stat root directory: %w", wrapFsError(root, "stat", err))
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("root is not a directory: %s", root)
	}

	result := Result{
		Tally: tally.New(s.config.Extensions.Sorted()...),
		Stats: ScanStats{StartTime: time.Now()},
	}

	if err := s.scanDir(ctx, root, &result); err != nil {
		s.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Scan operation failed")
		return Result{}, fmt.Errorf("scan operation failed: %w", err)
	}

	result.Stats.EndTime = time.Now()
	result.Stats.Duration = result.Stats.EndTime.Sub(result.Stats.StartTime)

	s.log.WithFields(logger.Fields{
		"duration":       result.Stats.Duration,
		"directories":    result.Stats.Directories,
		"prunedDirs":     result.Stats.PrunedDirs,
		"filesCounted":   result.Stats.FilesCounted,
		"filesSkipped":   result.Stats.FilesSkipped,
		"decodeFailures": result.Stats.DecodeFailures,
		"bytesRead":      result.Stats.BytesRead,
	}).Info("Scan operation completed")

	return result, nil
}

// scanDir handles the files directly inside dir, then descends into its
// subdirectories in name order.
func (s *scanner) scanDir(ctx context.Context, dir string, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.config.Ignore.ShouldIgnore(dir) {
		s.log.WithFields(logger.Fields{
			"path": dir,
		}).Debug("Pruning ignored directory")
		result.Stats.PrunedDirs++
		return nil
	}

	s.log.WithFields(logger.Fields{
		"path": dir,
	}).Debug("Scanning directory")
	result.Stats.Directories++

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return wrapFsError(dir, "readdir", err)
	}

	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}

		if entry.Mode()&os.ModeSymlink != 0 && s.linksToDir(path) {
			s.log.WithFields(logger.Fields{
				"path": path,
			}).Debug("Not following directory symlink")
			result.Stats.LinkedDirs++
			continue
		}

		if err := s.countFile(ctx, path, result); err != nil {
			return err
		}
	}

	for _, sub := range subdirs {
		if err := s.scanDir(ctx, sub, result); err != nil {
			return err
		}
	}

	return nil
}

// countFile classifies path and records it when its extension is recognised.
func (s *scanner) countFile(ctx context.Context, path string, result *Result) error {
	ext := Extension(path)
	if !s.config.Extensions.Contains(ext) {
		s.log.WithFields(logger.Fields{
			"path": path,
			"ext":  ext,
		}).Trace("Skipping unrecognised extension")
		result.Stats.FilesSkipped++
		return nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	c, err := CountLines(s.fs, path)
	if err != nil {
		s.log.WithFields(logger.Fields{
			"error": err,
			"path":  path,
		}).Error("Failed to read file")
		return err
	}

	if c.Outcome == DecodeFailed {
		s.log.WithFields(logger.Fields{
			"path": path,
		}).Info("File is not valid UTF-8, counting it with zero lines")
		result.Stats.DecodeFailures++
	}

	result.Tally.Record(ext, c.Stats)
	result.Stats.FilesCounted++
	result.Stats.BytesRead += c.Bytes

	s.log.WithFields(logger.Fields{
		"path":    path,
		"outcome": c.Outcome.String(),
		"total":   c.Stats.Total,
		"code":    c.Stats.Code,
		"comment": c.Stats.Comment,
		"blank":   c.Stats.Blank,
	}).Trace("Classified file")

	return nil
}

// linksToDir reports whether the symlink at path resolves to a directory.
// Dangling links resolve to nothing and are handled as files.
func (s *scanner) linksToDir(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.IsDir()
}
