package memory

import (
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector behavior during calculation.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoThreshold is the minimum index for which auto mode suspends the
// collector. Below it the run is too short for GC pauses to matter.
const GCAutoThreshold int64 = 200_000

// softLimitFactor sizes the memory limit installed while the collector is
// off, relative to the memory obtained from the OS when it was switched off.
const softLimitFactor = 3

// The collector settings are process-wide while a comparison run executes
// several calculators at once, so suspension is reference counted: the first
// Begin saves the settings and the last End restores them.
var (
	suspendMu      sync.Mutex
	suspendCount   int
	savedGCPercent int
	savedMemLimit  int64
)

// GCController suspends the garbage collector for the duration of a large
// calculation. Every memo entry stays reachable until the call returns, so a
// collection during the run only costs time.
type GCController struct {
	mode       GCMode
	active     bool
	logger     zerolog.Logger
	startStats runtime.MemStats
	endStats   runtime.MemStats
}

// GCStats is the GC activity observed between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController returns a controller for computing F(n) in the given mode.
// "disabled", unknown modes and the empty string leave the collector alone.
func NewGCController(mode string, n int64) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: zerolog.Nop()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = n >= GCAutoThreshold
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Begin suspends the collector if the controller is active. A soft memory
// limit stays in place so that the runtime still collects before the process
// runs out of memory.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.startStats)

	suspendMu.Lock()
	suspendCount++
	first := suspendCount == 1
	if first {
		savedGCPercent = debug.SetGCPercent(-1)
		savedMemLimit = debug.SetMemoryLimit(-1)
		if limit := int64(gc.startStats.Sys) * softLimitFactor; limit > 0 && limit < savedMemLimit {
			debug.SetMemoryLimit(limit)
		}
	}
	suspendMu.Unlock()

	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Bool("first", first).
		Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc).
		Msg("gc suspended")
}

// End undoes Begin. The last active controller restores the saved settings
// and runs a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.endStats)

	suspendMu.Lock()
	suspendCount--
	last := suspendCount == 0
	if last {
		debug.SetGCPercent(savedGCPercent)
		debug.SetMemoryLimit(savedMemLimit)
	}
	suspendMu.Unlock()

	if last {
		runtime.GC()
	}
	stats := gc.Stats()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Bool("restored", last).
		Uint64("heap_alloc_bytes", stats.HeapAlloc).
		Uint64("total_alloc_bytes", stats.TotalAlloc).
		Uint32("gc_cycles", stats.NumGC).
		Msg("gc resumed")
}

// Stats returns the GC activity between Begin and End. It is zero for an
// inactive controller.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.endStats.HeapAlloc,
		TotalAlloc:   gc.endStats.TotalAlloc - gc.startStats.TotalAlloc,
		NumGC:        gc.endStats.NumGC - gc.startStats.NumGC,
		PauseTotalNs: gc.endStats.PauseTotalNs - gc.startStats.PauseTotalNs,
	}
}

// Active reports whether Begin will change the collector settings.
func (gc *GCController) Active() bool {
	return gc.active
}
