package orchestration

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/montyhall/internal/progress"
)

// pairBehavior builds PairFactories with the timing characteristics used by
// the deadlock tests.
func pairBehavior(behavior string, delay time.Duration) PairFactory {
	return func(worker int, _ Range) PairFunc {
		switch behavior {
		case "slow":
			return func() (bool, bool) {
				time.Sleep(delay)
				return false, true
			}
		case "slow_worker_zero":
			if worker == 0 {
				return func() (bool, bool) {
					time.Sleep(delay)
					return true, false
				}
			}
		}
		return func() (bool, bool) { return false, true }
	}
}

// stalledReporter never reads from the channel until it is closed, which
// forces every worker send onto the non-blocking drop path.
type stalledReporter struct {
	release chan struct{}
}

func (s *stalledReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	<-s.release
	DrainChannel(progressChan)
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that executeWith
// completes without deadlocking under various worker behaviors.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name    string
		factory PairFactory
		trials  uint32
		opts    Options
	}{
		{"all_instant", pairBehavior("instant", 0), 10_000, Options{Workers: 3, ChunkSize: 100}},
		{"mixed_instant_and_slow", pairBehavior("slow_worker_zero", 10*time.Microsecond), 2_000, Options{Workers: 2, ChunkSize: 50}},
		{"progress_flood", pairBehavior("instant", 0), 100_000, Options{Workers: 4, ChunkSize: 1}},
		{"single_worker", pairBehavior("instant", 0), 100, Options{Workers: 1}},
		{"zero_trials", pairBehavior("instant", 0), 0, Options{Workers: 4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			done := make(chan RunResult, 1)
			go func() {
				done <- executeWith(ctx, tc.trials, 1, tc.opts, tc.factory, NullProgressReporter{}, io.Discard)
			}()

			select {
			case result := <-done:
				if result.Err != nil {
					t.Errorf("unexpected error: %v", result.Err)
				}
				if result.Tally.Trials != uint64(tc.trials) {
					t.Errorf("Trials = %d, want %d", result.Tally.Trials, tc.trials)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: executeWith did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_StalledReporter verifies that workers finish
// even when the progress display does not consume updates.
func TestOrchestrationNoDeadlock_StalledReporter(t *testing.T) {
	reporter := &stalledReporter{release: make(chan struct{})}

	done := make(chan RunResult, 1)
	go func() {
		done <- executeWith(context.Background(), 50_000, 1, Options{Workers: 2, ChunkSize: 1}, pairBehavior("instant", 0), reporter, io.Discard)
	}()

	// Workers finish while the reporter is stalled; release it so the
	// display goroutine can return after the channel closes.
	time.Sleep(50 * time.Millisecond)
	close(reporter.release)

	select {
	case result := <-done:
		if result.Tally.Trials != 50_000 {
			t.Errorf("Trials = %d, want 50000", result.Tally.Trials)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK: workers blocked on a stalled reporter")
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan RunResult, 1)
	go func() {
		done <- executeWith(ctx, 1_000_000, 1, Options{Workers: 2, ChunkSize: 10}, pairBehavior("slow", time.Millisecond), NullProgressReporter{}, io.Discard)
	}()

	// Cancel after a short delay
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case result := <-done:
		if result.Err == nil {
			t.Error("expected an error after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}
