// Package config provides configuration management for linecount.
//
// The ignore patterns and recognised extensions are fixed at build time
// (IgnorePatterns, Extensions). The remaining knobs come from environment
// variables, which command-line flags may override:
//
//	LINECOUNT_ROOT        Directory to walk (default: directory of the executable)
//	LINECOUNT_RATE_LIMIT  Files read per second (0 for unlimited)
//	LINECOUNT_COLOR       Bold title and TOTAL row (true/false)
//	LINECOUNT_VERBOSE     Verbosity level (number of 'v's, or an integer)
//
// # Validation
//
//   - RateLimit must be non-negative
//   - Verbose must be non-negative
//
// The configuration is immutable after loading.
package config
