/*
Package logger wraps uber-go/zap behind a small interface used by every linecount
component. Entries are JSON lines on stderr so that stdout carries nothing but the
statistics table.

Basic Usage:

	log := logger.NewLogger(logger.Config{
	    Verbosity: 1,
	})

	log.Info("Counting lines")
	log.Debug("Scanning directory") // verbosity >= 2
	log.Trace("Classified file")    // verbosity >= 3

Verbosity Levels:

	0: Warn, Error (default)
	1: Info + level 0
	2: Debug + level 1
	3: Trace + level 2

Structured Logging:

	log.WithFields(logger.Fields{
	    "path":  "/some/dir",
	    "files": 42,
	}).Info("Scan completed")

The logger is safe for concurrent use.
*/
package logger
