package metrics

import (
	"runtime"
	"sync/atomic"
)

// MemorySnapshot is one reading of the Go runtime's memory statistics.
type MemorySnapshot struct {
	HeapAlloc    uint64 // live heap bytes
	HeapSys      uint64 // heap bytes obtained from the OS
	Sys          uint64 // all bytes obtained from the OS
	NumGC        uint32
	PauseTotalNs uint64
	Goroutines   int // workers included
}

// MemoryCollector takes MemorySnapshots and tracks the largest heap seen.
// The zero value is ready to use.
type MemoryCollector struct {
	peak atomic.Uint64
}

func NewMemoryCollector() *MemoryCollector { return &MemoryCollector{} }

// Snapshot reads the runtime statistics. It stops the world briefly, so
// callers sample on a timer rather than per chunk.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	mc.observe(ms.HeapAlloc)
	return MemorySnapshot{
		HeapAlloc:    ms.HeapAlloc,
		HeapSys:      ms.HeapSys,
		Sys:          ms.Sys,
		NumGC:        ms.NumGC,
		PauseTotalNs: ms.PauseTotalNs,
		Goroutines:   runtime.NumGoroutine(),
	}
}

func (mc *MemoryCollector) observe(heap uint64) {
	for {
		cur := mc.peak.Load()
		if heap <= cur || mc.peak.CompareAndSwap(cur, heap) {
			return
		}
	}
}

// PeakHeap is the largest HeapAlloc any Snapshot has seen, or 0 before the
// first one.
func (mc *MemoryCollector) PeakHeap() uint64 { return mc.peak.Load() }
