/*
Package app wires the linecount components together: configuration, logger,
scanner and table formatter.

Usage:

	a, err := app.New(cfg, afero.NewOsFs(), os.Stdout)
	if err != nil {
	    log.Fatal(err)
	}
	if err := a.Run(ctx); err != nil {
	    log.Fatal(err)
	}

The table is written to the output writer only after the whole walk has
succeeded. Diagnostics go to the logger, which writes to stderr.
*/
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/sonemaro/linecount/internal/config"
	"github.com/sonemaro/linecount/pkg/logger"
	"github.com/sonemaro/linecount/pkg/output"
	"github.com/sonemaro/linecount/pkg/scanner"
	"github.com/spf13/afero"
)

// App represents the main application container
type App struct {
	config config.Config
	log    logger.Logger
	out    io.Writer

	scanner   scanner.Scanner
	formatter output.Formatter
}

// Option customises an App
type Option func(*App)

// WithLogger replaces the logger built from the configuration
func WithLogger(log logger.Logger) Option {
	return func(a *App) { a.log = log }
}

// New creates a new application instance reading from fs and writing the
// table to out.
func New(cfg config.Config, fs afero.Fs, out io.Writer, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{
		config: cfg,
		out:    out,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.log = logger.NewLogger(logger.Config{
			Verbosity: cfg.Verbose,
			Output:    os.Stderr,
		})
	}

	a.scanner = scanner.NewScanner(scanner.Config{
		Ignore:     scanner.IgnoreSet(config.IgnorePatterns),
		Extensions: scanner.NewExtensionSet(config.Extensions...),
		RateLimit:  cfg.RateLimit,
	}, fs, a.log)

	a.formatter = output.NewFormatter(output.Config{
		WithColors: cfg.Color,
	}, a.log)

	for _, w := range cfg.Warnings {
		a.log.Warn(w)
	}

	a.log.WithFields(logger.Fields{
		"config": cfg.String(),
	}).Debug("Application initialized")

	return a, nil
}

// Run walks the configured root and prints the statistics table
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	root, err := a.config.ResolveRoot()
	if err != nil {
		return err
	}

	result, err := a.scanner.Scan(ctx, root)
	if err != nil {
		return err
	}

	table, err := a.formatter.Format(result.Tally)
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}

	if _, err := io.WriteString(a.out, table); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	total := result.Tally.GrandTotal()
	a.log.WithFields(logger.Fields{
		"root":     root,
		"files":    total.Files,
		"lines":    total.Total,
		"duration": formatDuration(result.Stats.Duration),
	}).Info("Line count completed")

	return nil
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
