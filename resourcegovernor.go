package qbench

import (
	"runtime"
	"sync"
	"time"
)

/*
ResourceGovernor is a Regulator that caps live heap size and the cumulative
CPU time of a benchmark. Simulated registers grow as 2^n, so a governor with a
heap ceiling stops a run of oversized repeats before the process is starved.
A zero ceiling disables that check.
*/
type ResourceGovernor struct {
	mu sync.RWMutex

	maxHeapBytes uint64
	maxCPUTime   time.Duration
	metrics      *Metrics

	currentHeap uint64
	currentCPU  time.Duration
}

func NewResourceGovernor(maxHeapBytes uint64, maxCPUTime time.Duration) *ResourceGovernor {
	return &ResourceGovernor{
		maxHeapBytes: maxHeapBytes,
		maxCPUTime:   maxCPUTime,
	}
}

func (rg *ResourceGovernor) Observe(metrics *Metrics) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	rg.metrics = metrics
	rg.updateResourceUsage()
}

func (rg *ResourceGovernor) Limit() bool {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	if rg.maxHeapBytes > 0 && rg.currentHeap >= rg.maxHeapBytes {
		return true
	}

	return rg.maxCPUTime > 0 && rg.currentCPU >= rg.maxCPUTime
}

// Renormalize forces a garbage collection and re-reads the heap.
func (rg *ResourceGovernor) Renormalize() {
	runtime.GC()

	rg.mu.Lock()
	defer rg.mu.Unlock()

	rg.updateResourceUsage()
}

func (rg *ResourceGovernor) updateResourceUsage() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	rg.currentHeap = memStats.HeapAlloc

	if rg.metrics != nil {
		rg.currentCPU = rg.metrics.TotalCPUTime
	}
}

// Usage returns the last observed heap size and cumulative CPU time.
func (rg *ResourceGovernor) Usage() (heap uint64, cpu time.Duration) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.currentHeap, rg.currentCPU
}

// Thresholds returns the configured ceilings.
func (rg *ResourceGovernor) Thresholds() (heap uint64, cpu time.Duration) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.maxHeapBytes, rg.maxCPUTime
}

// probe is a point-in-time reading of the process counters the harness diffs.
type probe struct {
	totalAlloc uint64
	cpu        time.Duration
}

func takeProbe() probe {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return probe{totalAlloc: memStats.TotalAlloc, cpu: processCPUTime()}
}
