package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/montyhall/internal/format"
	"github.com/agbru/montyhall/internal/metrics"
)

// minRateInterval is the shortest gap between two throughput samples.
const minRateInterval = 50 * time.Millisecond

// rateMeter estimates trials per second from a growing counter, smoothed
// with an exponential moving average.
type rateMeter struct {
	perSec float64
	count  uint64
	at     time.Time
}

func (r *rateMeter) observe(count uint64, now time.Time) {
	dt := now.Sub(r.at)
	if dt < minRateInterval || count < r.count {
		return
	}
	instant := float64(count-r.count) / dt.Seconds()
	if r.perSec == 0 {
		r.perSec = instant
	} else {
		r.perSec += 0.3 * (instant - r.perSec)
	}
	r.count, r.at = count, now
}

// MetricsModel is the runtime panel: heap, GC, goroutines and throughput.
type MetricsModel struct {
	mem           metrics.MemorySnapshot
	rate          rateMeter
	width, height int
}

func NewMetricsModel() MetricsModel {
	return MetricsModel{rate: rateMeter{at: time.Now()}}
}

func (m *MetricsModel) SetSize(w, h int) { m.width, m.height = w, h }

func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = metrics.MemorySnapshot(msg)
}

// UpdateTrials feeds the running trial count into the throughput estimate.
func (m *MetricsModel) UpdateTrials(trials uint64) {
	m.rate.observe(trials, time.Now())
}

func (m MetricsModel) View() string {
	col := max((m.width-6)/2, 0)
	speed := "n/a"
	if m.rate.perSec > 0 {
		speed = format.FormatThroughput(uint64(m.rate.perSec), time.Second)
	}
	gc := fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6)

	lines := []string{
		panelTitleStyle.Render("Runtime"),
		formatMetricCol("Heap:", format.FormatBytes(m.mem.HeapAlloc)+" / "+format.FormatBytes(m.mem.HeapSys), col) +
			formatMetricCol("GC:", gc, col),
		formatMetricCol("Speed:", speed, col) +
			formatMetricCol("Goroutines:", fmt.Sprint(m.mem.Goroutines), col),
	}
	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.Join(lines, "\n"))
}

// formatMetricCol renders "label value" padded to width visible cells.
func formatMetricCol(label, value string, width int) string {
	cell := labelStyle.Render(fmt.Sprintf("%-12s", label)) + " " + valueStyle.Render(value)
	if pad := width - lipgloss.Width(cell); pad > 0 {
		cell += strings.Repeat(" ", pad)
	}
	return cell
}
