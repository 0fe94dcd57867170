/*
Package output renders a finished tally as the fixed-width statistics table.

Basic usage:

	formatter := output.NewFormatter(output.Config{}, log)

	table, err := formatter.Format(t)
*/
package output

import (
	"fmt"

	"github.com/sonemaro/linecount/pkg/logger"
	"github.com/sonemaro/linecount/pkg/tally"
)

// Config holds formatter configuration
type Config struct {
	// WithColors renders the title and TOTAL row in bold
	WithColors bool
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(*tally.Tally) (string, error)
}

// formatter implements the Formatter interface
type formatter struct {
	config Config
	log    logger.Logger
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	return &formatter{
		config: config,
		log:    log,
	}
}

// Format renders t as a table
func (f *formatter) Format(t *tally.Tally) (string, error) {
	if t == nil {
		msg := "nil tally provided for formatting"
		f.log.Error(msg)
		return "", fmt.Errorf("%s", msg)
	}

	f.log.WithFields(logger.Fields{
		"withColors": f.config.WithColors,
	}).Debug("Starting format operation")

	return f.formatTable(t), nil
}
