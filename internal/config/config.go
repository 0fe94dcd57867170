/*
Package config provides configuration management for linecount.

With no environment set, Load returns the configuration of the plain
zero-argument run: walk the directory holding the executable, no rate limit,
no colour, warnings-only logging.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Environment Variables:

	LINECOUNT_ROOT         Directory to walk (default: directory of the executable)
	LINECOUNT_RATE_LIMIT   Maximum files read per second (0 for unlimited)
	LINECOUNT_COLOR        Bold title and TOTAL row when stdout is a terminal
	LINECOUNT_VERBOSE      Verbosity level ("vv" or "2")
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Root is the directory to walk; empty means the executable's directory
	Root string

	// RateLimit is the maximum number of files read per second (0 for unlimited)
	RateLimit int

	// Color requests a bold title and TOTAL row
	Color bool

	// Verbose sets the verbosity level
	Verbose int

	// Warnings lists environment values that could not be parsed and were
	// replaced by their defaults
	Warnings []string
}

// Load reads configuration from environment variables and validates it.
// Values that do not parse fall back to their defaults and are reported in
// Warnings; parsed values outside their range are errors.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("root", "")
	v.SetDefault("rate_limit", UnlimitedRate)
	v.SetDefault("color", false)
	v.SetDefault("verbose", "")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, key := range []string{"root", "rate_limit", "color", "verbose"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	cfg := Config{
		Root: strings.TrimSpace(v.GetString("root")),
	}

	rate, err := cast.ToIntE(strings.TrimSpace(v.GetString("rate_limit")))
	if err != nil {
		cfg.warn("rate_limit", v.GetString("rate_limit"))
		rate = UnlimitedRate
	}
	cfg.RateLimit = rate

	color, err := cast.ToBoolE(strings.TrimSpace(v.GetString("color")))
	if err != nil {
		cfg.warn("color", v.GetString("color"))
		color = false
	}
	cfg.Color = color

	verbose, err := parseVerbosity(v.GetString("verbose"))
	if err != nil {
		cfg.warn("verbose", v.GetString("verbose"))
		verbose = 0
	}
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) warn(key, value string) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(
		"ignoring unparsable %s_%s=%q, using the default",
		EnvPrefix, strings.ToUpper(key), value,
	))
}

// parseVerbosity accepts either a run of 'v's or a plain integer.
func parseVerbosity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.Trim(s, "v") == "" {
		return len(s), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid verbosity %q: use a number or a string of 'v's", s)
	}
	return n, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	if c.Verbose < 0 {
		return fmt.Errorf("verbosity must be non-negative")
	}

	return nil
}

// ResolveRoot returns the directory to walk: Root when set, made absolute,
// otherwise the directory containing the running executable.
func (c Config) ResolveRoot() (string, error) {
	if c.Root != "" {
		abs, err := filepath.Abs(c.Root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve root %s: %w", c.Root, err)
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}

	return filepath.Dir(exe), nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Root: %q, RateLimit: %d, Color: %v, Verbose: %d}",
		c.Root, c.RateLimit, c.Color, c.Verbose,
	)
}
