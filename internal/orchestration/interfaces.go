package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/montyhall/internal/progress"
	"github.com/agbru/montyhall/internal/simulation"
)

// RunResult is the outcome of one simulation run.
type RunResult struct {
	// Trials is the number of trial pairs requested.
	Trials uint32
	// Workers is the number of workers that ran.
	Workers int
	// Seed is the base seed the worker generators were derived from.
	Seed uint64
	// Tally holds the reduced counts. For a failed run it holds the trials
	// completed before the failure.
	Tally simulation.Tally
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Err is set when the run stopped early.
	Err error
}

// ProgressReporter defines the interface for displaying run progress.
// Implementations handle the visual representation (spinners, dashboards)
// while the orchestration layer coordinates the workers.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting a finished run.
type ResultPresenter interface {
	PresentReport(result RunResult, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// RunObserver receives run lifecycle events, e.g. for metrics.
// ChunkCompleted is called concurrently from worker goroutines.
type RunObserver interface {
	RunStarted(trials uint64, workers int)
	ChunkCompleted(delta simulation.Tally)
	RunFinished(total simulation.Tally, elapsed time.Duration, err error)
}

// NullRunObserver ignores all events.
type NullRunObserver struct{}

func (NullRunObserver) RunStarted(uint64, int)                             {}
func (NullRunObserver) ChunkCompleted(simulation.Tally)                    {}
func (NullRunObserver) RunFinished(simulation.Tally, time.Duration, error) {}
