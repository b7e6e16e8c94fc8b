package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/montyhall/internal/errors"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/progress"
	"github.com/agbru/montyhall/internal/simulation"
)

func runReporter(t *testing.T, numWorkers int, updates ...progress.ProgressUpdate) {
	t.Helper()
	reporter := &TUIProgressReporter{ref: &programRef{}} // nil program, Send is a no-op

	ch := make(chan progress.ProgressUpdate, len(updates)+1)
	for _, u := range updates {
		ch <- u
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, numWorkers, nil)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DisplayProgress did not return after the channel closed")
	}
}

func TestTUIProgressReporter_Returns(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		workers int
		updates []progress.ProgressUpdate
	}{
		{"single worker", 1, []progress.ProgressUpdate{
			{WorkerIndex: 0, Value: 0.25, Partial: simulation.Tally{Trials: 1, SwitchWins: 1}},
			{WorkerIndex: 0, Value: 1.00, Partial: simulation.Tally{Trials: 4, SwitchWins: 3, StayWins: 1}},
		}},
		{"two workers", 2, []progress.ProgressUpdate{
			{WorkerIndex: 0, Value: 0.5}, {WorkerIndex: 1, Value: 0.5},
			{WorkerIndex: 0, Value: 1}, {WorkerIndex: 1, Value: 1},
		}},
		{"no workers", 0, []progress.ProgressUpdate{{Value: 0.5}}},
		{"no updates", 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runReporter(t, tt.workers, tt.updates...)
		})
	}
}

func TestTUIResultPresenter_FormatDuration(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}

	for _, d := range []time.Duration{0, 500 * time.Microsecond, 42 * time.Millisecond, 3 * time.Minute} {
		if presenter.FormatDuration(d) == "" {
			t.Errorf("FormatDuration(%v) is empty", d)
		}
	}
}

func TestTUIResultPresenter_PresentReport(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}
	// No program attached: must not panic.
	presenter.PresentReport(orchestration.RunResult{Trials: 3, Tally: simulation.Tally{Trials: 3, StayWins: 1, SwitchWins: 2}}, nil)
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"wrapped cancel", apperrors.SimulationError{Completed: 10, Cause: context.Canceled}, apperrors.ExitErrorCanceled},
		{"generic", errors.New("something failed"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := presenter.HandleError(tt.err, time.Second, nil); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	ref.Send(ProgressMsg{Snapshot: orchestration.Snapshot{Average: 0.5}})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	t.Parallel()
	ref := &programRef{}

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Send(ProgressMsg{Snapshot: orchestration.Snapshot{Average: float64(i) / 100}})
		}()
	}
	wg.Wait()
}
