// Package config defines the application configuration and its resolution
// from command-line flags, MONTYHALL_* environment variables and defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"time"

	apperrors "github.com/agbru/montyhall/internal/errors"
	"github.com/agbru/montyhall/internal/logging"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "MONTYHALL_"

// DefaultTrials is the number of trial pairs run when none is configured:
// the largest unsigned 32-bit value.
const DefaultTrials = math.MaxUint32

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Trials is the number of trial pairs (one stay, one switch) to run.
	Trials uint32
	// Workers is the number of parallel workers; 0 selects GOMAXPROCS.
	Workers int
	// ChunkSize is the number of trial pairs a worker runs between progress
	// reports and cancellation checks; 0 selects a size from Trials.
	ChunkSize uint64
	// Seed is the base seed for per-worker generators; 0 draws a random seed.
	Seed uint64
	// Timeout bounds the run; 0 disables the limit.
	Timeout time.Duration
	// Progress shows a spinner with progress on stderr.
	Progress bool
	// TUI launches the interactive dashboard instead of the plain report.
	TUI bool
	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string
	// LogLevel is the zerolog level name for diagnostics on stderr.
	LogLevel string
	// LogFormat selects the log encoding: "console" or "json".
	LogFormat string
	// Verbose prints an execution summary on stderr.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Completion, when set, prints a shell completion script for the named
	// shell and exits.
	Completion string
}

// Log encodings accepted by --log-format.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		Trials:    DefaultTrials,
		LogLevel:  "warn",
		LogFormat: LogFormatConsole,
	}
}

// ParseConfig parses command-line arguments and applies environment
// overrides from the process environment.
// Priority: CLI flags > environment variables > defaults.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	return parseConfig(programName, args, errorWriter, nil)
}

// parseConfig is ParseConfig with an injectable environment; a nil environ
// reads the process environment.
func parseConfig(programName string, args []string, errorWriter io.Writer, environ map[string]string) (AppConfig, error) {
	cfg := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	trials := uint64(cfg.Trials)
	fs.Uint64Var(&trials, "n", trials, "Number of trial pairs to simulate (at most 4294967295).")
	fs.Uint64Var(&trials, "trials", trials, "Alias for -n.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of parallel workers (0 = GOMAXPROCS).")
	fs.Uint64Var(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "Trial pairs per worker chunk (0 = automatic).")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Base random seed (0 = random).")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum run time, e.g. 10m (0 = no limit).")
	fs.BoolVar(&cfg.Progress, "progress", cfg.Progress, "Show a progress spinner on stderr.")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Launch the interactive dashboard.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address, e.g. :9100.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log encoding on stderr: console or json.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Print an execution summary on stderr.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Alias for -v.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish) and exit.")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Simulates the Monty Hall problem and reports the win rate of staying and switching.\n\n")
		fmt.Fprintf(errorWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEvery option can also be set with a %s environment variable, e.g. %sTRIALS.\n", EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	if err := applyEnvOverrides(&cfg, &trials, fs, environ); err != nil {
		return AppConfig{}, err
	}

	if trials > math.MaxUint32 {
		return AppConfig{}, apperrors.ValidationError{
			Field:   "trials",
			Message: fmt.Sprintf("%d exceeds the maximum of %d", trials, uint64(math.MaxUint32)),
		}
	}
	cfg.Trials = uint32(trials)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic validity of the configuration.
func (c AppConfig) Validate() error {
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	if c.Timeout < 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.ValidationError{Field: "log-level", Message: err.Error()}
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return apperrors.ValidationError{Field: "log-format", Message: fmt.Sprintf("unknown format %q", c.LogFormat)}
	}
	return nil
}
