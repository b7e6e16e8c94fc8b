package app

import (
	"context"
	"io"

	"github.com/agbru/montyhall/internal/cli"
	"github.com/agbru/montyhall/internal/logging"
	"github.com/agbru/montyhall/internal/metrics"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/server"
)

// runSimulate runs the simulation in plain command-line mode. Only the
// report goes to out; progress, summaries and errors go to ErrWriter.
func (a *Application) runSimulate(ctx context.Context, opts orchestration.Options, out io.Writer) int {
	seed := a.seed()
	a.Logger.Debug("run configured",
		logging.Uint64("trials", uint64(a.Config.Trials)),
		logging.Int("workers", a.Config.Workers),
		logging.Uint64("chunk_size", a.Config.ChunkSize),
		logging.Uint64("seed", seed))

	if a.Config.Verbose {
		cli.PrintExecutionConfig(a.Config, seed, a.ErrWriter)
	}

	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	progressOut := io.Discard
	if a.Config.Progress {
		reporter = cli.CLIProgressReporter{}
		progressOut = a.ErrWriter
	}

	mem := metrics.NewMemoryCollector()
	result := orchestration.ExecuteSimulation(ctx, a.Config.Trials, seed, opts, reporter, progressOut)

	resultOut := out
	if result.Err != nil {
		resultOut = a.ErrWriter
	}
	presenter := cli.CLIResultPresenter{}
	code := orchestration.AnalyzeResult(result, presenter, presenter, resultOut)

	if a.Config.Verbose && result.Err == nil {
		cli.DisplaySummary(result, mem.Snapshot(), mem.PeakHeap(), a.ErrWriter)
	}
	return code
}

// startMetricsServer binds the metrics endpoint and serves it until the
// returned stop function is called.
func (a *Application) startMetricsServer(ctx context.Context) (orchestration.RunObserver, func(), error) {
	runMetrics := metrics.NewRunMetrics()
	srv, err := server.New(a.Config.MetricsAddr, runMetrics, a.Logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	stop := func() {
		cancel()
		if err := <-done; err != nil {
			a.Logger.Error("metrics server stopped", err)
		}
	}
	return runMetrics, stop, nil
}
