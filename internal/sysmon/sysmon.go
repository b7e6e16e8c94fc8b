// Package sysmon samples system-wide CPU and memory usage for the dashboard
// and the execution summary.
package sysmon

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// sampleTimeout bounds a single sample so a slow /proc never stalls the UI.
const sampleTimeout = 250 * time.Millisecond

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemUsed    uint64  // bytes
	MemTotal   uint64  // bytes
}

// Sample collects a snapshot with a bounded timeout.
func Sample() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
	defer cancel()
	return SampleContext(ctx)
}

// SampleContext collects a snapshot. CPU usage is the delta since the
// previous call (interval 0), so the first call may report 0. Fields whose
// source fails are left at zero.
func SampleContext(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemUsed = vm.Used
		s.MemTotal = vm.Total
	}
	return s
}
