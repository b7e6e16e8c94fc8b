// Package progress defines the progress messages workers emit while a run is
// in flight, and helpers to deliver them without stalling the workers.
package progress

import "github.com/agbru/montyhall/internal/simulation"

// ProgressUpdate is a snapshot of one worker's progress.
type ProgressUpdate struct {
	// WorkerIndex identifies the worker that sent the update.
	WorkerIndex int
	// Value is the fraction of the worker's range completed (0.0 to 1.0).
	Value float64
	// Partial is the worker's running tally.
	Partial simulation.Tally
}

// ProgressCallback receives progress updates from a worker.
type ProgressCallback func(update ProgressUpdate)

// Noop discards updates.
func Noop(ProgressUpdate) {}

// ChannelCallback returns a callback that forwards updates to ch without
// blocking. Updates are dropped when ch is full; a later update from the same
// worker supersedes them. A nil channel yields Noop.
func ChannelCallback(ch chan<- ProgressUpdate) ProgressCallback {
	if ch == nil {
		return Noop
	}
	return func(update ProgressUpdate) {
		select {
		case ch <- update:
		default:
		}
	}
}

// Merge returns the running totals across workers, keeping only the latest
// update from each.
type Merge struct {
	latest []simulation.Tally
}

// NewMerge creates a Merge for numWorkers workers.
func NewMerge(numWorkers int) *Merge {
	if numWorkers < 0 {
		numWorkers = 0
	}
	return &Merge{latest: make([]simulation.Tally, numWorkers)}
}

// Update records the latest partial tally of a worker and returns the total.
// Updates for unknown workers are ignored.
func (m *Merge) Update(update ProgressUpdate) simulation.Tally {
	if update.WorkerIndex >= 0 && update.WorkerIndex < len(m.latest) {
		m.latest[update.WorkerIndex] = update.Partial
	}
	return m.Total()
}

// Total returns the sum of the latest partial tallies.
func (m *Merge) Total() simulation.Tally {
	return simulation.Sum(m.latest)
}
