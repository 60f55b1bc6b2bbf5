package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is a subset of runtime.MemStats taken at one instant.
type MemorySnapshot struct {
	HeapAlloc    uint64
	HeapSys      uint64
	TotalAlloc   uint64
	Sys          uint64
	NumGC        uint32
	PauseTotalNs uint64
	HeapObjects  uint64
}

// MemoryDelta is what a run cost between two snapshots.
type MemoryDelta struct {
	// Allocated is the number of bytes allocated during the run, including
	// memory already reclaimed.
	Allocated uint64
	GCCycles  uint32
	GCPause   time.Duration
	// HeapInUse and HeapReserved are the values at the end of the run.
	HeapInUse    uint64
	HeapReserved uint64
}

// Delta returns the cost of the work done between s and after.
func (s MemorySnapshot) Delta(after MemorySnapshot) MemoryDelta {
	d := MemoryDelta{HeapInUse: after.HeapAlloc, HeapReserved: after.HeapSys}
	if after.TotalAlloc > s.TotalAlloc {
		d.Allocated = after.TotalAlloc - s.TotalAlloc
	}
	if after.NumGC > s.NumGC {
		d.GCCycles = after.NumGC - s.NumGC
	}
	if after.PauseTotalNs > s.PauseTotalNs {
		d.GCPause = time.Duration(after.PauseTotalNs - s.PauseTotalNs)
	}
	return d
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector returns a MemoryCollector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot calls runtime.ReadMemStats, which briefly stops the world.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}
