/*
Package commands implements the CLI command structure for linecount.
The root command runs the count; subcommands provide auxiliary output.
*/
package commands

import (
	"fmt"
	"os"

	"github.com/sonemaro/linecount/cmd/linecount/app"
	"github.com/sonemaro/linecount/internal/config"
	"github.com/sonemaro/linecount/internal/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Options holds command-line options that apply to the root command
type Options struct {
	Verbose   int
	Root      string
	RateLimit int
	Color     bool
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "linecount",
		Short: "Count lines of code per file type",
		Long: `linecount v` + version.Version + `
========================================

Walks the directory holding the executable (or --root), skipping dependency
and build directories, and prints total, code, comment and blank line counts
for each recognised file extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().CountVarP(&opts.Verbose, "verbose", "v",
		"verbose output on stderr (can be used multiple times)")
	rootCmd.Flags().StringVar(&opts.Root, "root", "",
		"directory to walk (default: directory of the executable)")
	rootCmd.Flags().IntVarP(&opts.RateLimit, "rate-limit", "r", config.UnlimitedRate,
		"maximum files read per second (0 for unlimited)")
	rootCmd.Flags().BoolVar(&opts.Color, "color", false,
		"bold title and TOTAL row when stdout is a terminal")

	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig reads the environment and applies the flags the user set
func loadConfig(cmd *cobra.Command, opts *Options) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if flags.Changed("root") {
		cfg.Root = opts.Root
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = opts.RateLimit
	}
	if flags.Changed("color") {
		cfg.Color = opts.Color
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func runCount(cmd *cobra.Command, opts *Options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Color && !isTerminal(out) {
		cfg.Color = false
	}

	application, err := app.New(cfg, afero.NewOsFs(), out)
	if err != nil {
		return err
	}

	return application.Run(cmd.Context())
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
