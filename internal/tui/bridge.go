package tui

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/montyhall/internal/errors"
	"github.com/agbru/montyhall/internal/format"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/progress"
)

// programRef lets run goroutines reach the tea.Program. The model is copied
// on every Update, so it holds a pointer to this rather than the program.
type programRef struct {
	program atomic.Pointer[tea.Program]
}

func (r *programRef) SetProgram(p *tea.Program) { r.program.Store(p) }

// Send delivers msg to the program, or drops it when none is attached.
func (r *programRef) Send(msg tea.Msg) {
	if p := r.program.Load(); p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter turns worker updates into ProgressMsgs stamped with
// the run generation.
type TUIProgressReporter struct {
	ref *programRef
	gen uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, _ io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		t.ref.Send(ProgressMsg{Snapshot: agg.Update(update), Generation: t.gen})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter hands the outcome of a run to the dashboard. Nothing is
// written to out; the report is printed once the dashboard has closed.
type TUIResultPresenter struct {
	ref *programRef
	gen uint64
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

func (t *TUIResultPresenter) PresentReport(result orchestration.RunResult, _ io.Writer) {
	t.ref.Send(ReportMsg{Result: result, Generation: t.gen})
}

func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError shows err on the dashboard and maps it to an exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	if err != nil {
		t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.gen})
	}
	return apperrors.HandleRunError(err, duration, io.Discard, nil)
}
