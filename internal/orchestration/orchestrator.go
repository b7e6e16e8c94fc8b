package orchestration

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/montyhall/internal/errors"
	"github.com/agbru/montyhall/internal/logging"
	"github.com/agbru/montyhall/internal/progress"
	"github.com/agbru/montyhall/internal/simulation"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the number of dropped updates when the UI
// is slow to consume them.
const ProgressBufferMultiplier = 5

// DefaultChunkSize is used when Options.ChunkSize is zero.
const DefaultChunkSize = 1 << 16

const tracerName = "github.com/agbru/montyhall/internal/orchestration"

// PairFunc plays one trial pair and reports whether the staying and the
// switching player won.
type PairFunc func() (stayWon, switchWon bool)

// PairFactory builds the PairFunc for one worker. It is called once per
// worker, on that worker's goroutine, with the worker's trial range. The
// returned PairFunc is called exactly r.Len() times, in trial order.
type PairFactory func(worker int, r Range) PairFunc

// SimulatorFactory returns a PairFactory giving each worker its own
// Simulator seeded with simulation.DeriveSeed(seed, worker).
func SimulatorFactory(seed uint64) PairFactory {
	return func(worker int, _ Range) PairFunc {
		return simulation.NewSimulator(simulation.DeriveSeed(seed, worker)).PlayPair
	}
}

// Options configures a run.
type Options struct {
	// Workers is the number of parallel workers; 0 selects GOMAXPROCS.
	Workers int
	// ChunkSize is the number of pairs between progress reports and
	// cancellation checks; 0 selects DefaultChunkSize.
	ChunkSize uint64
	// Progress receives per-worker updates after every chunk.
	Progress progress.ProgressCallback
	// Observer receives lifecycle events.
	Observer RunObserver
	// Logger receives diagnostics.
	Logger logging.Logger
}

func (o Options) withDefaults(trials uint64) Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if uint64(o.Workers) > trials {
		o.Workers = int(trials)
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Progress == nil {
		o.Progress = progress.Noop
	}
	if o.Observer == nil {
		o.Observer = NullRunObserver{}
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}

// Run simulates trials pairs with seeded simulators and returns the reduced
// tally. trials == 0 yields the zero tally.
func Run(ctx context.Context, trials uint32, seed uint64, opts Options) (simulation.Tally, error) {
	return RunPairs(ctx, trials, opts, SimulatorFactory(seed))
}

// RunPairs partitions [0, trials) across workers, runs newPair's PairFunc for
// every index, and sums the per-worker tallies with simulation.Tally.Add.
//
// The context is checked between chunks. When it ends early RunPairs returns
// the tally of the completed chunks and a SimulationError wrapping the
// context error.
func RunPairs(ctx context.Context, trials uint32, opts Options, newPair PairFactory) (simulation.Tally, error) {
	n := uint64(trials)
	opts = opts.withDefaults(n)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "simulation.run",
		trace.WithAttributes(
			attribute.Int64("montyhall.trials", int64(n)),
			attribute.Int("montyhall.workers", opts.Workers),
			attribute.Int64("montyhall.chunk_size", int64(opts.ChunkSize)),
		))
	defer span.End()

	if n == 0 {
		opts.Observer.RunStarted(0, 0)
		opts.Observer.RunFinished(simulation.Tally{}, 0, nil)
		return simulation.Tally{}, nil
	}

	ranges := Partition(n, opts.Workers)
	opts.Logger.Debug("simulation started",
		logging.Uint64("trials", n),
		logging.Int("workers", len(ranges)),
		logging.Uint64("chunk_size", opts.ChunkSize))
	opts.Observer.RunStarted(n, len(ranges))
	start := time.Now()

	partials := make([]simulation.Tally, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			local, err := runWorker(gctx, i, r, opts, newPair(i, r))
			partials[i] = local
			span.AddEvent("worker finished", trace.WithAttributes(
				attribute.Int("montyhall.worker", i),
				attribute.Int64("montyhall.completed", int64(local.Trials)),
			))
			return err
		})
	}
	err := g.Wait()

	total := simulation.Sum(partials)
	elapsed := time.Since(start)
	if err != nil {
		err = apperrors.SimulationError{Completed: total.Trials, Cause: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apperrors.IsContextError(err) {
			opts.Logger.Info("simulation interrupted", logging.Err(err), logging.Uint64("completed", total.Trials))
		} else {
			opts.Logger.Error("simulation stopped early", err, logging.Uint64("completed", total.Trials))
		}
	} else {
		opts.Logger.Debug("simulation finished",
			logging.Uint64("trials", total.Trials),
			logging.Uint64("stay_wins", total.StayWins),
			logging.Uint64("switch_wins", total.SwitchWins),
			logging.String("elapsed", elapsed.String()))
	}
	span.SetAttributes(
		attribute.Int64("montyhall.stay_wins", int64(total.StayWins)),
		attribute.Int64("montyhall.switch_wins", int64(total.SwitchWins)),
	)
	opts.Observer.RunFinished(total, elapsed, err)
	return total, err
}

// runWorker plays every pair of r in chunks, reporting after each chunk.
func runWorker(ctx context.Context, index int, r Range, opts Options, play PairFunc) (simulation.Tally, error) {
	var local simulation.Tally
	size := r.Len()
	for done := uint64(0); done < size; {
		if ctx.Err() != nil {
			return local, context.Cause(ctx)
		}
		n := min(opts.ChunkSize, size-done)

		var chunk simulation.Tally
		for j := uint64(0); j < n; j++ {
			chunk.Record(play())
		}
		local = local.Add(chunk)
		done += n

		opts.Observer.ChunkCompleted(chunk)
		opts.Progress(progress.ProgressUpdate{
			WorkerIndex: index,
			Value:       float64(done) / float64(size),
			Partial:     local,
		})
	}
	return local, nil
}

// ExecuteSimulation runs a full simulation while a ProgressReporter displays
// progress, and returns the run's result.
//
// The progress display runs on its own goroutine fed by a buffered channel;
// workers never block on it.
func ExecuteSimulation(ctx context.Context, trials uint32, seed uint64, opts Options, reporter ProgressReporter, out io.Writer) RunResult {
	return executeWith(ctx, trials, seed, opts, SimulatorFactory(seed), reporter, out)
}

func executeWith(ctx context.Context, trials uint32, seed uint64, opts Options, newPair PairFactory, reporter ProgressReporter, out io.Writer) RunResult {
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	workers := opts.withDefaults(uint64(trials)).Workers

	progressChan := make(chan progress.ProgressUpdate, max(workers, 1)*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, workers, out)

	forward := progress.ChannelCallback(progressChan)
	if user := opts.Progress; user != nil {
		opts.Progress = func(u progress.ProgressUpdate) {
			user(u)
			forward(u)
		}
	} else {
		opts.Progress = forward
	}

	start := time.Now()
	tally, err := RunPairs(ctx, trials, opts, newPair)
	result := RunResult{
		Trials:   trials,
		Workers:  workers,
		Seed:     seed,
		Tally:    tally,
		Duration: time.Since(start),
		Err:      err,
	}

	close(progressChan)
	displayWg.Wait()
	return result
}

// AnalyzeResult presents a finished run, or hands its error to the error
// handler, and returns the process exit code.
func AnalyzeResult(result RunResult, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	if result.Err != nil {
		return errHandler.HandleError(result.Err, result.Duration, out)
	}
	if result.Tally.Trials != uint64(result.Trials) {
		panic(simulation.InvariantError{
			Op:     "reduction",
			Detail: fmt.Sprintf("counted %d trials, want %d", result.Tally.Trials, result.Trials),
		})
	}
	presenter.PresentReport(result, out)
	return apperrors.ExitSuccess
}
