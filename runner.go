package qbench

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
	"gopkg.in/yaml.v3"
)

// Comparison pairs the quantum and classical benchmark of one scenario.
type Comparison struct {
	Kind         AlgorithmKind                     `yaml:"kind"`
	Scenario     string                            `yaml:"scenario"`
	Quantum      *BenchmarkRecord[Result]          `yaml:"quantum"`
	Classical    *BenchmarkRecord[ClassicalResult] `yaml:"classical"`
	Speedup      float64                           `yaml:"speedup"`
	QuerySpeedup float64                           `yaml:"query_speedup"`
}

// Failed reports whether either side of the comparison failed.
func (c *Comparison) Failed() bool {
	return c.Quantum.Failed() || c.Classical.Failed()
}

type Report struct {
	ID          string        `yaml:"id"`
	Seed        uint64        `yaml:"seed"`
	StartedAt   time.Time     `yaml:"started_at"`
	FinishedAt  time.Time     `yaml:"finished_at"`
	Comparisons []Comparison  `yaml:"comparisons"`
	Failures    int           `yaml:"failures"`
	Totals      []KindSummary `yaml:"summary"`
}

func (r *Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encode report")
	}

	return enc.Close()
}

/*
Runner benchmarks every scenario of a Dataset against its classical baseline.
All algorithms share the runner's random source, so a run is reproducible from
the seed the source was built with.
*/
type Runner struct {
	cfg  *Config
	rng  *rand.Rand
	opts []BenchmarkOption

	shor     *Shor
	grover   *Grover
	dj       *DeutschJozsa
	extremum *Extremum
	phase    *PhaseEstimation
}

func NewRunner(cfg *Config, rng *rand.Rand, opts ...BenchmarkOption) *Runner {
	return &Runner{
		cfg:      cfg,
		rng:      rng,
		opts:     opts,
		shor:     NewShor(cfg, rng),
		grover:   NewGrover(cfg, rng),
		dj:       NewDeutschJozsa(cfg, rng),
		extremum: NewExtremum(cfg, rng),
		phase:    NewPhaseEstimation(cfg, rng),
	}
}

/*
Run benchmarks the dataset in the order of Kinds. A failing scenario is logged
and recorded on its Comparison; the run continues. Only cancellation of ctx
ends the run early, returning the partial report with ErrResourceExceeded.
*/
func (r *Runner) Run(ctx context.Context, ds *Dataset) (*Report, error) {
	report := &Report{ID: uuid.NewString(), Seed: ds.Seed, StartedAt: time.Now().UTC()}

	errnie.Info("run %s: %d scenarios, seed %d", report.ID, ds.Size(), ds.Seed)

	add := func(c Comparison) error {
		if c.Failed() {
			report.Failures++
			errnie.Info("scenario %s/%s failed: quantum=%q classical=%q",
				c.Kind, c.Scenario, c.Quantum.Error, c.Classical.Error)
		}
		report.Comparisons = append(report.Comparisons, c)

		if err := ctx.Err(); err != nil {
			return resourceErr(err, "run "+report.ID)
		}
		return nil
	}

	for _, kind := range Kinds {
		for _, c := range r.scenarios(ds, kind) {
			if err := add(c(ctx)); err != nil {
				report.FinishedAt = time.Now().UTC()
				report.Totals = report.Summary()
				return report, err
			}
		}
	}

	report.FinishedAt = time.Now().UTC()
	report.Totals = report.Summary()

	for _, sum := range report.Totals {
		errnie.Info("%s: %d/%d correct, success rate %.3f, speedup %.2fx, query speedup %.2fx",
			sum.Kind, sum.Correct, sum.Scenarios, sum.AverageSuccessRate, sum.AverageSpeedup, sum.AverageQuerySpeedup)
	}

	errnie.Info("run %s: %d comparisons, %d failures", report.ID, len(report.Comparisons), report.Failures)

	return report, nil
}

type scenario func(ctx context.Context) Comparison

func (r *Runner) scenarios(ds *Dataset, kind AlgorithmKind) []scenario {
	var out []scenario

	switch kind {
	case KindFactorization:
		for _, p := range ds.Factorization {
			out = append(out, r.compare(kind, describe(p.Description, "N = %d", p.N),
				erase(Timed[FactorParams, FactorResult](r.shor, p)),
				func(context.Context) (ClassicalResult, error) {
					return TrialDivision(p.N), nil
				},
			))
		}
	case KindSearch:
		for _, p := range ds.Search {
			out = append(out, r.compare(kind, describe(p.Description, "%v in %d", p.Marked, p.SpaceSize),
				erase(Timed[SearchParams, SearchResult](r.grover, p)),
				func(context.Context) (ClassicalResult, error) {
					return LinearSearch(p.Marked, p.SpaceSize)
				},
			))
		}
	case KindFunctionType:
		for _, p := range ds.FunctionType {
			out = append(out, r.compare(kind, describe(p.Description, "%d qubits, %s", p.Qubits, p.Type),
				erase(Timed[FunctionTypeParams, FunctionTypeResult](r.dj, p)),
				func(context.Context) (ClassicalResult, error) {
					return WorstCaseQuery(p.Qubits, p.Type, r.rng)
				},
			))
		}
	case KindExtremum:
		for _, p := range ds.Extremum {
			out = append(out, r.compare(kind, describe(p.Description, "%d values, min=%v", len(p.Data), p.FindMin),
				erase(Timed[ExtremumParams, ExtremumResult](r.extremum, p)),
				func(context.Context) (ClassicalResult, error) {
					return LinearExtremum(p.Data, p.FindMin)
				},
			))
		}
	case KindPhaseEstimation:
		for _, p := range ds.PhaseEstimation {
			out = append(out, r.compare(kind, describe(p.Description, "phase %g, %d qubits", p.Phase, p.CountingQubits),
				erase(Timed[PhaseParams, PhaseResult](r.phase, p)),
				func(context.Context) (ClassicalResult, error) {
					return SamplingPhaseEstimate(p.Phase, r.cfg.ClassicalSamples, r.rng)
				},
			))
		}
	}

	return out
}

func (r *Runner) compare(
	kind AlgorithmKind, name string, quantum Callable[Result], classical Callable[ClassicalResult],
) scenario {
	return func(ctx context.Context) Comparison {
		c := Comparison{Kind: kind, Scenario: name}

		// Errors live on the records.
		c.Quantum, _ = Benchmark(ctx, r.cfg, string(kind)+"/quantum", quantum, r.opts...)
		c.Classical, _ = Benchmark(ctx, r.cfg, string(kind)+"/classical", classical, r.opts...)

		if c.Failed() {
			return c
		}

		c.Speedup = Speedup(c.Classical.Stats, c.Quantum.Stats, r.cfg.Epsilon)
		c.QuerySpeedup = QuerySpeedup(c.Classical.Result.Cost(), c.Quantum.Result.Cost())

		return c
	}
}

// erase widens a typed algorithm callable to the Result interface.
func erase[R Result](fn Callable[R]) Callable[Result] {
	return func(ctx context.Context) (Result, error) {
		res, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

func describe(desc, format string, args ...any) string {
	if desc != "" {
		return desc
	}
	return fmt.Sprintf(format, args...)
}
