package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/montyhall/internal/errors"
	"github.com/agbru/montyhall/internal/format"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/progress"
	"github.com/agbru/montyhall/internal/simulation"
	"github.com/agbru/montyhall/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLIResultPresenter prints reports and errors for the command line.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentReport writes the four report lines for a finished run.
func (CLIResultPresenter) PresentReport(result orchestration.RunResult, out io.Writer) {
	WriteReport(out, result.Tally)
}

// FormatDuration formats a duration with the CLI's duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints a run error and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleRunError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider supplies the active theme's colors to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// FormatReport returns the report for t: the wins and win percentage of the
// staying player, then of the switching player, one per line.
//
// The report is uncolored and never localized; scripts parse it.
func FormatReport(t simulation.Tally) string {
	return fmt.Sprintf(
		"Wins without switching doors: %d\n"+
			"Win percentage without switching doors: %s%%\n"+
			"Wins with switching doors: %d\n"+
			"Win percentage with switching doors: %s%%\n",
		t.StayWins,
		format.FormatPercentage(t.Percentage(simulation.Stay)),
		t.SwitchWins,
		format.FormatPercentage(t.Percentage(simulation.Switch)),
	)
}

// WriteReport writes FormatReport(t) to out.
func WriteReport(out io.Writer, t simulation.Tally) {
	_, _ = io.WriteString(out, FormatReport(t))
}
