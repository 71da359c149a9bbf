package bench

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/agbru/biguint/internal/logging"
)

// GCMode controls the garbage collector behavior during a benchmark.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoThreshold is the largest operand size, in bytes, from which
// GCModeAuto suspends the collector.
const GCAutoThreshold = 4 << 10

// GCController suspends Go's garbage collector for the duration of a run
// and restores it afterward, so collection pauses do not skew timings.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	active            bool
	logger            logging.Logger
	startStats        runtime.MemStats
	endStats          runtime.MemStats
}

// GCStats holds GC statistics for a run.
type GCStats struct {
	Suspended    bool
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a GC controller for the given mode and largest
// operand size.
func NewGCController(mode GCMode, maxSize int) *GCController {
	gc := &GCController{mode: mode, logger: logging.NewNopLogger()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = maxSize >= GCAutoThreshold
	default:
		gc.active = false
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l logging.Logger) {
	if l != nil {
		gc.logger = l
	}
}

// Active reports whether Begin will suspend the collector.
func (gc *GCController) Active() bool { return gc.active }

// Begin disables GC if the controller is active. A soft memory limit of
// three times the current footprint stays in place as a safety net.
func (gc *GCController) Begin() {
	runtime.ReadMemStats(&gc.startStats)
	if !gc.active {
		return
	}
	gc.originalGCPercent = debug.SetGCPercent(-1)
	if gc.startStats.Sys > 0 {
		if limit := int64(float64(gc.startStats.Sys) * 3); limit > 0 {
			debug.SetMemoryLimit(limit)
		}
	}
	gc.logger.Debug("gc disabled",
		logging.String("mode", string(gc.mode)),
		logging.Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc))
}

// End restores original GC settings and triggers a collection.
func (gc *GCController) End() {
	runtime.ReadMemStats(&gc.endStats)
	if !gc.active {
		return
	}
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	gc.logger.Debug("gc re-enabled",
		logging.String("mode", string(gc.mode)),
		logging.Uint64("heap_alloc_bytes", gc.endStats.HeapAlloc),
		logging.Uint64("total_alloc_bytes", gc.endStats.TotalAlloc-gc.startStats.TotalAlloc),
		logging.Int("gc_cycles", int(gc.endStats.NumGC-gc.startStats.NumGC)))
}

// Stats returns GC statistics delta between Begin and End.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		Suspended:    gc.active,
		HeapAlloc:    gc.endStats.HeapAlloc,
		TotalAlloc:   gc.endStats.TotalAlloc - gc.startStats.TotalAlloc,
		NumGC:        gc.endStats.NumGC - gc.startStats.NumGC,
		PauseTotalNs: gc.endStats.PauseTotalNs - gc.startStats.PauseTotalNs,
	}
}
