package tui

import (
	"strings"
	"testing"
	"time"
)

func TestFooterModel_Status(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name                string
		paused, done, isErr bool
		want                string
	}{
		{"running", false, false, false, "RUNNING"},
		{"paused", true, false, false, "PAUSED"},
		{"done", true, true, false, "DONE"},
		{"error wins", true, true, true, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooterModel(DefaultKeyMap())
			f.SetPaused(tt.paused)
			f.SetDone(tt.done)
			f.SetError(tt.isErr)
			if got := f.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(f.View(), tt.want) {
				t.Errorf("View() missing %q", tt.want)
			}
		})
	}
}

func TestFooterModel_ViewShowsHints(t *testing.T) {
	t.Parallel()
	view := NewFooterModel(DefaultKeyMap()).View()
	for _, want := range []string{"quit", "pause", "restart"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected footer to contain %q", want)
		}
	}
}

func TestHeaderModel_View(t *testing.T) {
	t.Parallel()
	h := NewHeaderModel("v1.2.3", 1000, 4)
	h.SetWidth(120)
	h.SetSeed(42)

	view := h.View()
	for _, want := range []string{"Monty Hall Simulator v1.2.3", "1,000 trials x 4 workers", "seed 42", "Elapsed:"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected header to contain %q, got %q", want, view)
		}
	}
}

func TestHeaderModel_DevVersionHidden(t *testing.T) {
	t.Parallel()
	h := NewHeaderModel("dev", 10, 1)
	h.SetWidth(80)
	if strings.Contains(h.View(), "dev") {
		t.Error("expected dev version to be hidden")
	}
}

func TestHeaderModel_SetDoneFreezesElapsed(t *testing.T) {
	t.Parallel()
	h := NewHeaderModel("dev", 10, 1)
	h.SetDone()
	first := h.Elapsed()
	time.Sleep(5 * time.Millisecond)
	if h.Elapsed() != first {
		t.Error("expected elapsed time to stay frozen after SetDone")
	}

	h.Reset()
	if h.seed != 0 || !h.endTime.IsZero() {
		t.Error("expected Reset to clear the seed and the end time")
	}
}
