package qbench

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

// Callable is one unit of benchmarked work, quantum or classical.
type Callable[R any] func(ctx context.Context) (R, error)

// BenchmarkRecord is the outcome of repeatedly running a Callable.
type BenchmarkRecord[R any] struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Result R      `yaml:"result"`
	Err    error  `yaml:"-"`
	Error  string `yaml:"error,omitempty"`
	Stats  `yaml:",inline"`
}

// Failed reports whether any repeat returned an error.
func (r *BenchmarkRecord[R]) Failed() bool { return r.Err != nil }

/*
Benchmark runs fn serially, repeat times, probing wall time, allocated bytes
and process CPU time around each call. Repeats never overlap, so every probe
sees the process to itself.

The result of the last repeat is kept on the record. The first error stops the
loop; it is stored on the record and also returned, with the statistics of the
repeats that did run. A deadline or a limiting Regulator stops the loop with
ErrResourceExceeded.
*/
func Benchmark[R any](
	ctx context.Context, cfg *Config, name string, fn Callable[R], opts ...BenchmarkOption,
) (*BenchmarkRecord[R], error) {
	settings := newBenchmarkSettings(cfg, opts)

	if settings.repeat < 1 {
		settings.repeat = 1
	}

	if settings.repeat > cfg.MaxRepeat {
		errnie.Info("benchmark %s: repeat %d capped at %d", name, settings.repeat, cfg.MaxRepeat)
		settings.repeat = cfg.MaxRepeat
	}

	if settings.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.timeout)
		defer cancel()
	}

	record := &BenchmarkRecord[R]{ID: uuid.NewString(), Name: name}
	metrics := NewMetrics(settings.repeat)

	for i := 0; i < settings.repeat; i++ {
		if err := ctx.Err(); err != nil {
			record.Err = resourceErr(err, name)
			break
		}

		if err := regulate(settings.regulator, metrics); err != nil {
			record.Err = errors.Wrapf(err, "%s repeat %d", name, i)
			break
		}

		before := takeProbe()
		start := time.Now()

		result, err := fn(ctx)

		wall := time.Since(start)
		after := takeProbe()

		metrics.Record(wall, after.totalAlloc-before.totalAlloc, after.cpu-before.cpu)

		if err != nil {
			record.Err = err
			break
		}

		record.Result = result
	}

	record.Stats = metrics.Stats()

	if record.Err != nil {
		record.Error = record.Err.Error()
		errnie.Info("benchmark %s failed after %d repeats: %v", name, metrics.Count(), record.Err)
		return record, record.Err
	}

	errnie.Info("benchmark %s: %v", name, metrics.Export())
	return record, nil
}

func regulate(reg Regulator, metrics *Metrics) error {
	if reg == nil {
		return nil
	}

	reg.Observe(metrics)
	if !reg.Limit() {
		return nil
	}

	reg.Renormalize()
	if reg.Limit() {
		return errors.Wrap(ErrResourceExceeded, "regulator refused repeat")
	}

	return nil
}

// Speedup is classical mean wall time over quantum mean wall time, with the
// quantum side floored at epsilon seconds. A non-positive epsilon falls back to
// the default floor so the ratio stays finite.
func Speedup(classical, quantum Stats, epsilon float64) float64 {
	if !(epsilon > 0) {
		epsilon = defaultEpsilon
	}
	return classical.MeanWallTime.Seconds() / math.Max(quantum.MeanWallTime.Seconds(), epsilon)
}

// QuerySpeedup compares abstract costs, flooring the quantum cost at one query.
func QuerySpeedup(classicalCost, quantumCost float64) float64 {
	return classicalCost / math.Max(quantumCost, 1)
}
