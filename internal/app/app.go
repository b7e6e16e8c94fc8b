package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/montyhall/internal/cli"
	"github.com/agbru/montyhall/internal/config"
	apperrors "github.com/agbru/montyhall/internal/errors"
	"github.com/agbru/montyhall/internal/logging"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/simulation"
	"github.com/agbru/montyhall/internal/tui"
	"github.com/agbru/montyhall/internal/ui"
)

// Application represents the montyhall application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger

	programName string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, programName: "montyhall"}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		app.programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.programName, cmdArgs, errWriter)
	if err != nil {
		// The flag package reports its own parse errors.
		var cfgErr apperrors.ConfigError
		var valErr apperrors.ValidationError
		if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}

	app.Config = config.ApplyAdaptiveDefaults(cfg)
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code. out receives the report only.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Validate accepted the level already.
	level, _ := logging.ParseLevel(a.Config.LogLevel)
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)
	if a.Logger == nil {
		a.Logger = a.newLogger()
	}

	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	opts := orchestration.Options{
		Workers:   a.Config.Workers,
		ChunkSize: a.Config.ChunkSize,
		Logger:    a.Logger,
	}
	if a.Config.MetricsAddr != "" {
		observer, stop, err := a.startMetricsServer(ctx)
		if err != nil {
			return apperrors.HandleRunError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
		}
		defer stop()
		opts.Observer = observer
	}

	if a.Config.TUI {
		return a.runTUI(ctx, opts, out)
	}
	return a.runSimulate(ctx, opts, out)
}

// newLogger builds the stderr logger in the configured encoding.
func (a *Application) newLogger() logging.Logger {
	if a.Config.LogFormat == config.LogFormatJSON {
		return logging.NewLogger(a.ErrWriter, "montyhall")
	}
	return logging.NewConsoleLogger(a.ErrWriter, "montyhall")
}

// lifecycle derives the run context: the optional timeout, then SIGINT and
// SIGTERM. An expired timeout is reported through context.Cause as a
// TimeoutError carrying the limit.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	cancelTimeout := context.CancelFunc(func() {})
	if limit := a.Config.Timeout; limit > 0 {
		ctx, cancelTimeout = context.WithTimeoutCause(ctx, limit,
			apperrors.TimeoutError{Operation: "simulation", Limit: limit})
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.programName); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard. The report of a completed run
// is written to out once the dashboard exits, so it survives the alternate
// screen.
func (a *Application) runTUI(ctx context.Context, opts orchestration.Options, out io.Writer) int {
	result, code := tui.Run(ctx, a.Config, opts, Version)
	if code == apperrors.ExitSuccess && result.Err == nil && result.Tally.Trials == uint64(a.Config.Trials) {
		cli.WriteReport(out, result.Tally)
	}
	return code
}

// seed returns the configured seed, or a fresh random one.
func (a *Application) seed() uint64 {
	if a.Config.Seed != 0 {
		return a.Config.Seed
	}
	return simulation.RandomSeed()
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
