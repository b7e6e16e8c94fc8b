package tui

import (
	"slices"
	"testing"
)

func pushAll(h *History, vs ...float64) {
	for _, v := range vs {
		h.Push(v)
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		limit  int
		push   []float64
		resize int
		want   []float64
		cap    int
	}{
		{"under limit", 3, []float64{1, 2}, 0, []float64{1, 2}, 3},
		{"drops oldest", 3, []float64{1, 2, 3, 4, 5}, 0, []float64{3, 4, 5}, 3},
		{"zero limit holds one", 0, []float64{7, 8}, 0, []float64{8}, 1},
		{"grow keeps all", 2, []float64{1, 2, 3}, 4, []float64{2, 3}, 4},
		{"shrink keeps newest", 5, []float64{1, 2, 3, 4}, 2, []float64{3, 4}, 2},
		{"empty", 4, nil, 0, nil, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHistory(tt.limit)
			pushAll(h, tt.push...)
			if tt.resize != 0 {
				h.Resize(tt.resize)
			}
			if got := h.Values(); !slices.Equal(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
			if h.Cap() != tt.cap {
				t.Errorf("Cap() = %d, want %d", h.Cap(), tt.cap)
			}
			if h.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", h.Len(), len(tt.want))
			}
		})
	}
}

func TestHistory_LastAndReset(t *testing.T) {
	t.Parallel()
	h := NewHistory(2)
	if h.Last() != 0 {
		t.Errorf("Last() on empty = %v, want 0", h.Last())
	}
	pushAll(h, 66.1, 66.9, 66.5)
	if h.Last() != 66.5 {
		t.Errorf("Last() = %v, want 66.5", h.Last())
	}

	values := h.Values()
	values[0] = -1
	if h.Values()[0] == -1 {
		t.Error("Values() must return a copy")
	}

	h.Reset()
	if h.Len() != 0 || h.Values() != nil {
		t.Errorf("after Reset got %v", h.Values())
	}
	h.Push(1)
	if h.Last() != 1 {
		t.Error("history should accept samples after Reset")
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"floor", []float64{0, 0}, "▁▁"},
		{"ceiling", []float64{100}, "█"},
		{"middle", []float64{50}, "▄"},
		{"ramp", []float64{0, 15, 30, 45, 60, 75, 90, 100}, "▁▂▃▄▅▆▇█"},
		{"clamped", []float64{-20, 250}, "▁█"},
	}
	for _, tt := range tests {
		if got := RenderSparkline(tt.values); got != tt.want {
			t.Errorf("%s: RenderSparkline(%v) = %q, want %q", tt.name, tt.values, got, tt.want)
		}
	}
}
