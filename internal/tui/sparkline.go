package tui

// blocks holds the eight sparkline levels, lowest first.
var blocks = []rune("▁▂▃▄▅▆▇█")

// History keeps the most recent samples of a series, up to a limit.
// Older samples fall off the front as new ones are pushed.
type History struct {
	samples []float64
	limit   int
}

// NewHistory returns an empty History holding at most limit samples.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 1)}
}

// Push appends v, dropping the oldest sample when the limit is reached.
func (h *History) Push(v float64) {
	h.samples = append(h.samples, v)
	h.trim()
}

func (h *History) trim() {
	if extra := len(h.samples) - h.limit; extra > 0 {
		h.samples = append(h.samples[:0], h.samples[extra:]...)
	}
}

func (h *History) Len() int { return len(h.samples) }
func (h *History) Cap() int { return h.limit }

// Last returns the newest sample, or 0 when empty.
func (h *History) Last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float64 {
	if len(h.samples) == 0 {
		return nil
	}
	return append([]float64(nil), h.samples...)
}

// Resize changes the limit and keeps the newest samples that still fit.
func (h *History) Resize(limit int) {
	h.limit = max(limit, 1)
	h.trim()
}

func (h *History) Reset() { h.samples = h.samples[:0] }

// RenderSparkline draws percentages as block characters. Values are
// clamped to [0, 100].
func RenderSparkline(values []float64) string {
	out := make([]rune, 0, len(values))
	top := len(blocks) - 1
	for _, v := range values {
		level := int(min(max(v, 0), 100) / 100 * float64(top))
		out = append(out, blocks[level])
	}
	return string(out)
}
