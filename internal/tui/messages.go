package tui

import (
	"time"

	"github.com/agbru/montyhall/internal/metrics"
	"github.com/agbru/montyhall/internal/orchestration"
)

// ProgressMsg carries the combined progress of all workers in one run.
type ProgressMsg struct {
	orchestration.Snapshot
	Generation uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ReportMsg carries the result of a successful run.
type ReportMsg struct {
	Result     orchestration.RunResult
	Generation uint64
}

// ErrorMsg carries a run failure.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// RunStartedMsg announces the seed chosen for a run.
type RunStartedMsg struct {
	Seed       uint64
	Generation uint64
}

// RunCompleteMsg signals that a run finished and was analyzed.
type RunCompleteMsg struct {
	Result     orchestration.RunResult
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the run context ended.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg metrics.MemorySnapshot

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
