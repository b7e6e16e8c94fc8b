package config

import "runtime"

// Resolution chain for worker count and chunk size (highest priority first):
//   1. CLI flags (--workers, --chunk-size)
//   2. Environment variables (MONTYHALL_WORKERS, MONTYHALL_CHUNK_SIZE)
//   3. Hardware estimation (this file)

// MinChunkSize and MaxChunkSize bound the automatic chunk size.
const (
	MinChunkSize = 1 << 10
	MaxChunkSize = 1 << 22
)

// chunksPerWorker is the target number of progress reports per worker.
const chunksPerWorker = 256

// ApplyAdaptiveDefaults fills the worker count and chunk size when they are
// left at zero, preserving explicit overrides.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkers()
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = EstimateChunkSize(uint64(cfg.Trials), cfg.Workers)
	}
	return cfg
}

// EstimateWorkers returns the number of workers to use on this machine.
func EstimateWorkers() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

// EstimateChunkSize picks a chunk size that gives each worker roughly
// chunksPerWorker progress reports, clamped to [MinChunkSize, MaxChunkSize].
func EstimateChunkSize(trials uint64, workers int) uint64 {
	if workers < 1 {
		workers = 1
	}
	size := trials / uint64(workers) / chunksPerWorker
	switch {
	case size < MinChunkSize:
		return MinChunkSize
	case size > MaxChunkSize:
		return MaxChunkSize
	}
	return size
}
