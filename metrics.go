package qbench

import (
	"math"
	"sort"
	"time"

	"github.com/viterin/vek"
)

// Stats summarizes the repeats of one benchmark.
type Stats struct {
	Repeat           int           `yaml:"repeat_count"`
	MeanWallTime     time.Duration `yaml:"mean_wall_time"`
	WallTimeVariance float64       `yaml:"wall_time_variance"` // seconds²
	MinWallTime      time.Duration `yaml:"min_wall_time"`
	MaxWallTime      time.Duration `yaml:"max_wall_time"`
	P95WallTime      time.Duration `yaml:"p95_wall_time"`
	MeanMemoryDelta  float64       `yaml:"mean_memory_delta"` // bytes allocated per repeat
	MeanCPUTime      time.Duration `yaml:"mean_cpu_time"`
}

/*
Metrics collects per-repeat samples of one benchmark. It is owned by a
single Benchmark call and never shared across goroutines.
*/
type Metrics struct {
	TotalWallTime time.Duration
	TotalCPUTime  time.Duration
	TotalAlloc    uint64

	wall   []float64 // seconds
	memory []float64
	cpu    []float64
}

func NewMetrics(capacity int) *Metrics {
	return &Metrics{
		wall:   make([]float64, 0, capacity),
		memory: make([]float64, 0, capacity),
		cpu:    make([]float64, 0, capacity),
	}
}

// Record adds one repeat's measurements.
func (m *Metrics) Record(wall time.Duration, allocated uint64, cpu time.Duration) {
	m.TotalWallTime += wall
	m.TotalCPUTime += cpu
	m.TotalAlloc += allocated

	m.wall = append(m.wall, wall.Seconds())
	m.memory = append(m.memory, float64(allocated))
	m.cpu = append(m.cpu, cpu.Seconds())
}

func (m *Metrics) Count() int { return len(m.wall) }

// Stats computes mean, population variance, min, max and P95 of wall time,
// plus mean memory and CPU deltas.
func (m *Metrics) Stats() Stats {
	stats := Stats{Repeat: len(m.wall)}
	if len(m.wall) == 0 {
		return stats
	}

	mean := vek.Mean(m.wall)

	var variance float64
	for _, w := range m.wall {
		variance += (w - mean) * (w - mean)
	}
	variance /= float64(len(m.wall))

	sorted := append([]float64(nil), m.wall...)
	sort.Float64s(sorted)

	p95Index := int(float64(len(sorted)) * 0.95)
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	stats.MeanWallTime = seconds(mean)
	stats.WallTimeVariance = variance
	stats.MinWallTime = seconds(vek.Min(m.wall))
	stats.MaxWallTime = seconds(vek.Max(m.wall))
	stats.P95WallTime = seconds(sorted[p95Index])
	stats.MeanMemoryDelta = vek.Mean(m.memory)
	stats.MeanCPUTime = seconds(vek.Mean(m.cpu))

	return stats
}

// Export flattens the collected totals for logging.
func (m *Metrics) Export() map[string]any {
	return map[string]any{
		"repeats":        m.Count(),
		"total_wall_ms":  m.TotalWallTime.Milliseconds(),
		"total_cpu_ms":   m.TotalCPUTime.Milliseconds(),
		"total_alloc_kb": m.TotalAlloc / 1024,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
