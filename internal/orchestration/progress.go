package orchestration

import (
	"time"

	"github.com/agbru/montyhall/internal/format"
	"github.com/agbru/montyhall/internal/progress"
	"github.com/agbru/montyhall/internal/simulation"
)

// Snapshot is the combined progress of every worker at one instant.
type Snapshot struct {
	// Average is the mean completion fraction across workers.
	Average float64
	// ETA is the smoothed estimate of the time left; zero until known.
	ETA time.Duration
	// Running sums the latest partial tally of every worker.
	Running simulation.Tally
}

// ProgressAggregator folds per-worker updates into Snapshots. The CLI
// spinner and the dashboard both read progress through it.
type ProgressAggregator struct {
	eta   *format.ProgressWithETA
	merge *progress.Merge
}

// NewProgressAggregator returns nil when there are no workers to track.
func NewProgressAggregator(workers int) *ProgressAggregator {
	if workers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		eta:   format.NewProgressWithETA(workers),
		merge: progress.NewMerge(workers),
	}
}

// Update records u and returns the resulting snapshot.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) Snapshot {
	avg, eta := a.eta.UpdateWithETA(u.WorkerIndex, u.Value)
	return Snapshot{Average: avg, ETA: eta, Running: a.merge.Update(u)}
}

// Current returns the latest snapshot without recording anything.
func (a *ProgressAggregator) Current() Snapshot {
	return Snapshot{
		Average: a.eta.CalculateAverage(),
		ETA:     a.eta.GetETA(),
		Running: a.merge.Total(),
	}
}

// DrainChannel discards updates until ch is closed.
func DrainChannel(ch <-chan progress.ProgressUpdate) {
	for range ch {
	}
}
