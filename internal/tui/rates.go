package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/montyhall/internal/format"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/simulation"
)

// historyCapacity bounds the win-rate history kept for the sparkline.
const historyCapacity = 120

// RatesModel renders overall progress and the running win rate of each
// strategy, with a sparkline of the switching win rate over time.
type RatesModel struct {
	progress      float64
	eta           time.Duration
	running       simulation.Tally
	final         *simulation.Tally
	err           error
	switchHistory *History
	width         int
	height        int
}

// NewRatesModel creates an empty rates panel.
func NewRatesModel() RatesModel {
	return RatesModel{switchHistory: NewHistory(historyCapacity)}
}

// SetSize updates dimensions.
func (r *RatesModel) SetSize(w, h int) {
	r.width = w
	r.height = h
	if w > 8 {
		r.switchHistory.Resize(w - 8)
	}
}

// Update records an aggregated progress update.
func (r *RatesModel) Update(msg orchestration.Snapshot) {
	r.progress = msg.Average
	r.eta = msg.ETA
	r.running = msg.Running
	if msg.Running.Trials > 0 {
		r.switchHistory.Push(msg.Running.Percentage(simulation.Switch))
	}
}

// SetFinal records the reduced tally of a finished run.
func (r *RatesModel) SetFinal(t simulation.Tally) {
	r.final = &t
	r.running = t
	r.progress = 1
	r.eta = 0
}

// SetError records a run failure.
func (r *RatesModel) SetError(err error) {
	r.err = err
}

// Reset clears the panel for a new run.
func (r *RatesModel) Reset() {
	r.progress = 0
	r.eta = 0
	r.running = simulation.Tally{}
	r.final = nil
	r.err = nil
	r.switchHistory.Reset()
}

// Tally returns the tally currently displayed.
func (r RatesModel) Tally() simulation.Tally {
	return r.running
}

func (r RatesModel) barWidth() int {
	return max(r.width-36, 10)
}

// renderBar renders a percentage bar using the given style for the filled part.
func renderBar(pct float64, width int, filled func(...string) string) string {
	n := int(pct / 100 * float64(width))
	n = min(max(n, 0), width)
	return filled(strings.Repeat("█", n)) + barEmptyStyle.Render(strings.Repeat("░", width-n))
}

// View renders the panel.
func (r RatesModel) View() string {
	var b strings.Builder
	title := "Running win rates"
	if r.final != nil {
		title = "Final result"
	}
	b.WriteString(panelTitleStyle.Render(title))
	b.WriteString("\n\n")

	eta := format.FormatETA(r.eta)
	if r.final != nil {
		eta = "done"
	}
	fmt.Fprintf(&b, "%s %s %s\n",
		labelStyle.Render(fmt.Sprintf("%-9s", "Progress")),
		renderBar(r.progress*100, r.barWidth(), valueStyle.Render),
		valueStyle.Render(fmt.Sprintf("%5.1f%%  ETA %s", r.progress*100, eta)))
	fmt.Fprintf(&b, "%s %s\n\n",
		labelStyle.Render(fmt.Sprintf("%-9s", "Trials")),
		valueStyle.Render(format.FormatUint(r.running.Trials)))

	rows := []struct {
		label string
		s     simulation.Strategy
		style func(...string) string
	}{
		{"Stay", simulation.Stay, stayStyle.Render},
		{"Switch", simulation.Switch, switchStyle.Render},
	}
	for _, row := range rows {
		pct := r.running.Percentage(row.s)
		fmt.Fprintf(&b, "%s %s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-9s", row.label)),
			renderBar(pct, r.barWidth(), row.style),
			row.style(fmt.Sprintf("%8.4f%%", pct)),
			dimStyle.Render(format.FormatUint(r.running.Wins(row.s))+" wins"))
	}

	if r.switchHistory.Len() > 0 {
		fmt.Fprintf(&b, "\n%s %s\n",
			labelStyle.Render(fmt.Sprintf("%-9s", "Switch %")),
			switchStyle.Render(RenderSparkline(scaleAround(r.switchHistory.Values(), 2.0/3*100, 5))))
	}
	if r.err != nil {
		fmt.Fprintf(&b, "\n%s\n", errorStyle.Render("Stopped: "+r.err.Error()))
	}

	return panelStyle.Width(max(r.width-2, 0)).Height(max(r.height-2, 0)).Render(b.String())
}

// scaleAround maps values in [center-span, center+span] onto [0, 100] so that
// small fluctuations around the expected rate stay visible.
func scaleAround(values []float64, center, span float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - center + span) / (2 * span) * 100
	}
	return out
}
