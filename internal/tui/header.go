package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/montyhall/internal/format"
)

// HeaderModel renders the top bar: title, version, run parameters and
// elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	trials    uint32
	workers   int
	seed      uint64
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, trials uint32, workers int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		trials:    trials,
		workers:   workers,
	}
}

// SetSeed records the seed of the current run.
func (h *HeaderModel) SetSeed(seed uint64) {
	h.seed = seed
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.seed = 0
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the run started, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Monty Hall Simulator"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")

	parts := []string{
		titleStyle.Render(titleText),
		dimStyle.Render(fmt.Sprintf("%s trials x %d workers", format.FormatUint(uint64(h.trials)), h.workers)),
	}
	if h.seed != 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("seed %d", h.seed)))
	}
	left := strings.Join(parts, pipe)
	right := elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(h.Elapsed()))

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Render(left + strings.Repeat(" ", gap) + right)
}
