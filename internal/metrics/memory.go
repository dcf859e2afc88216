package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
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
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// MemoryDelta is the change between two snapshots.
type MemoryDelta struct {
	HeapAlloc   int64
	Sys         int64
	NumGC       uint32
	PauseTotal  time.Duration
	HeapObjects int64
}

// Delta returns the change from before to s. Counters that only grow are
// reported as differences; gauges may be negative.
func (s MemorySnapshot) Delta(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		HeapAlloc:   int64(s.HeapAlloc) - int64(before.HeapAlloc),
		Sys:         int64(s.Sys) - int64(before.Sys),
		NumGC:       s.NumGC - before.NumGC,
		PauseTotal:  time.Duration(s.PauseTotalNs - before.PauseTotalNs),
		HeapObjects: int64(s.HeapObjects) - int64(before.HeapObjects),
	}
}
