// This file contains the environment variable layer of the configuration.

package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/agbru/montyhall/internal/errors"
)

// envConfig mirrors the overridable options. Pointer fields stay nil when the
// variable is unset, which distinguishes "unset" from a zero value.
type envConfig struct {
	Trials      *uint64        `env:"TRIALS"`
	Workers     *int           `env:"WORKERS"`
	ChunkSize   *uint64        `env:"CHUNK_SIZE"`
	Seed        *uint64        `env:"SEED"`
	Timeout     *time.Duration `env:"TIMEOUT"`
	Progress    *bool          `env:"PROGRESS"`
	TUI         *bool          `env:"TUI"`
	MetricsAddr *string        `env:"METRICS_ADDR"`
	LogLevel    *string        `env:"LOG_LEVEL"`
	LogFormat   *string        `env:"LOG_FORMAT"`
	Verbose     *bool          `env:"VERBOSE"`
	NoColor     *bool          `env:"NO_COLOR"`
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// applyEnvOverrides applies environment values to every option whose flag
// was not given on the command line. trials is handled separately because
// it is validated after overrides are applied.
//
// Supported environment variables (all prefixed with MONTYHALL_):
//   - TRIALS, WORKERS, CHUNK_SIZE, SEED, TIMEOUT, PROGRESS, TUI,
//     METRICS_ADDR, LOG_LEVEL, LOG_FORMAT, VERBOSE, NO_COLOR
func applyEnvOverrides(cfg *AppConfig, trials *uint64, fs *flag.FlagSet, environ map[string]string) error {
	var e envConfig
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return apperrors.NewConfigError("invalid environment: %v", err)
	}

	overrides := []struct {
		flags []string
		apply func()
	}{
		{[]string{"n", "trials"}, func() { setIf(trials, e.Trials) }},
		{[]string{"workers"}, func() { setIf(&cfg.Workers, e.Workers) }},
		{[]string{"chunk-size"}, func() { setIf(&cfg.ChunkSize, e.ChunkSize) }},
		{[]string{"seed"}, func() { setIf(&cfg.Seed, e.Seed) }},
		{[]string{"timeout"}, func() { setIf(&cfg.Timeout, e.Timeout) }},
		{[]string{"progress"}, func() { setIf(&cfg.Progress, e.Progress) }},
		{[]string{"tui"}, func() { setIf(&cfg.TUI, e.TUI) }},
		{[]string{"metrics-addr"}, func() { setIf(&cfg.MetricsAddr, e.MetricsAddr) }},
		{[]string{"log-level"}, func() { setIf(&cfg.LogLevel, e.LogLevel) }},
		{[]string{"log-format"}, func() { setIf(&cfg.LogFormat, e.LogFormat) }},
		{[]string{"v", "verbose"}, func() { setIf(&cfg.Verbose, e.Verbose) }},
		{[]string{"no-color"}, func() { setIf(&cfg.NoColor, e.NoColor) }},
	}
	for _, o := range overrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply()
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
