//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/montyhall/internal/format"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/progress"
	"github.com/agbru/montyhall/internal/simulation"
	"github.com/agbru/montyhall/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner suffix.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// FormatProgressLine renders the spinner suffix: overall progress with ETA
// followed by the running win rate of each strategy.
func FormatProgressLine(avg float64, eta time.Duration, running simulation.Tally) string {
	line := " " + format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth)
	if running.Trials == 0 {
		return line
	}
	return fmt.Sprintf("%s | %sstay %.2f%%%s %sswitch %.2f%%%s",
		line,
		ui.ColorBlue(), running.Percentage(simulation.Stay), ui.ColorReset(),
		ui.ColorGreen(), running.Percentage(simulation.Switch), ui.ColorReset())
}

// DisplayProgress shows a spinner with a progress bar, ETA and running win
// rates on out until progressChan is closed, then calls wg.Done.
//
// The suffix is refreshed on a ticker rather than on every update so that a
// fast stream of updates does not flood the terminal.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	s.UpdateSuffix(FormatProgressLine(0, 0, simulation.Tally{}))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				final := agg.Current()
				s.UpdateSuffix(FormatProgressLine(final.Average, 0, final.Running))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			snap := agg.Current()
			s.UpdateSuffix(FormatProgressLine(snap.Average, snap.ETA, snap.Running))
		}
	}
}
