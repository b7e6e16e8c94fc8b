package config

import (
	"runtime"
	"testing"
)

func TestApplyAdaptiveDefaults(t *testing.T) {
	t.Parallel()

	cfg := ApplyAdaptiveDefaults(AppConfig{Trials: 1_000_000})
	if cfg.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want GOMAXPROCS %d", cfg.Workers, runtime.GOMAXPROCS(0))
	}
	if cfg.ChunkSize < MinChunkSize || cfg.ChunkSize > MaxChunkSize {
		t.Errorf("ChunkSize = %d outside [%d, %d]", cfg.ChunkSize, MinChunkSize, MaxChunkSize)
	}

	explicit := ApplyAdaptiveDefaults(AppConfig{Trials: 10, Workers: 3, ChunkSize: 5})
	if explicit.Workers != 3 || explicit.ChunkSize != 5 {
		t.Errorf("explicit values overwritten: %+v", explicit)
	}
}

func TestEstimateChunkSize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		trials  uint64
		workers int
		want    uint64
	}{
		{"small run uses the minimum", 10_000, 8, MinChunkSize},
		{"zero workers treated as one", 0, 0, MinChunkSize},
		{"mid-size run", 1 << 30, 4, 1 << 20},
		{"huge run is capped", 1 << 40, 1, MaxChunkSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EstimateChunkSize(tt.trials, tt.workers); got != tt.want {
				t.Errorf("EstimateChunkSize(%d, %d) = %d, want %d", tt.trials, tt.workers, got, tt.want)
			}
		})
	}
}
