// Package sysmon samples host CPU and memory usage around benchmark runs.
package sysmon

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostStats is a snapshot of system-wide resource usage.
type HostStats struct {
	CPUs       int
	CPUPercent float64 // 0.0 .. 100.0, busy time since the previous sample
	MemPercent float64 // 0.0 .. 100.0
	MemTotal   uint64  // bytes
}

// Sample reads host usage. CPU load is measured since the previous call,
// so the first call of a process reports the load since boot. Fields the
// platform cannot provide stay zero.
func Sample(ctx context.Context) HostStats {
	s := HostStats{CPUs: runtime.NumCPU()}
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemTotal = vm.Total
	}
	return s
}
