package metrics

import "runtime"

// MemorySnapshot holds a point-in-time reading of the Go heap.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Mallocs      uint64 // cumulative heap objects allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryDelta is the difference between two snapshots taken around a
// benchmark run.
type MemoryDelta struct {
	AllocatedBytes uint64
	Allocations    uint64
	GCCycles       uint32
	PauseNs        uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns what was allocated between before and s. Cumulative
// counters only grow, so every field is non-negative.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		AllocatedBytes: s.TotalAlloc - before.TotalAlloc,
		Allocations:    s.Mallocs - before.Mallocs,
		GCCycles:       s.NumGC - before.NumGC,
		PauseNs:        s.PauseTotalNs - before.PauseTotalNs,
	}
}
