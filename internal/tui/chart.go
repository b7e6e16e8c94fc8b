package tui

import (
	"fmt"
	"strings"
)

// ChartModel renders system-wide CPU and memory usage as sparklines.
type ChartModel struct {
	cpuHistory *History
	memHistory *History
	width      int
	height     int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory: NewHistory(historyCapacity),
		memHistory: NewHistory(historyCapacity),
	}
}

// SetSize updates dimensions and resizes the histories to the sparkline width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if n := c.sparklineWidth(); n > 0 {
		c.cpuHistory.Resize(n)
		c.memHistory.Resize(n)
	}
}

func (c ChartModel) sparklineWidth() int {
	return c.width - 22
}

// UpdateSysStats records a system sample.
func (c *ChartModel) UpdateSysStats(cpuPct, memPct float64) {
	c.cpuHistory.Push(cpuPct)
	c.memHistory.Push(memPct)
}

// Reset clears the histories.
func (c *ChartModel) Reset() {
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("System"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s %s\n",
		labelStyle.Render("CPU"),
		valueStyle.Render(fmt.Sprintf("%5.1f%%", c.cpuHistory.Last())),
		cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Values())))
	fmt.Fprintf(&b, "%s %s %s",
		labelStyle.Render("MEM"),
		valueStyle.Render(fmt.Sprintf("%5.1f%%", c.memHistory.Last())),
		memSparklineStyle.Render(RenderSparkline(c.memHistory.Values())))

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
