package qbench

import (
	"context"
	"math"
	"math/bits"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

type SearchParams struct {
	Marked      []int  `yaml:"marked_items"`
	SpaceSize   int    `yaml:"space_size"`
	Description string `yaml:"description,omitempty"`
}

/*
Grover finds marked items in an unstructured space of N = 2^n items with
⌊π/4·√(N/M)⌋ oracle calls, where M is the number of distinct marked items.
*/
type Grover struct {
	cfg *Config
	rng *rand.Rand
}

func NewGrover(cfg *Config, rng *rand.Rand) *Grover {
	return &Grover{cfg: cfg, rng: rng}
}

func (g *Grover) Name() string { return "grover" }

func (g *Grover) Run(ctx context.Context, params SearchParams) (SearchResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return SearchResult{}, resourceErr(err, g.Name())
	}

	n, err := log2Exact(params.SpaceSize)
	if err != nil {
		return SearchResult{}, err
	}

	if len(params.Marked) == 0 {
		return SearchResult{}, errors.Wrap(ErrInvalidDimension, "grover needs at least one marked item")
	}

	hist, iterations, err := amplify(ctx, g.cfg, g.rng, n, params.Marked)
	if err != nil {
		return SearchResult{}, err
	}

	marked := uniqueSorted(params.Marked)
	successRate := hist.ShareOf(marked)

	found := make([]int, 0, len(marked))
	for _, m := range marked {
		if hist.Count(m) > 0 {
			found = append(found, m)
		}
	}

	errnie.Info("grover N=%d M=%d iterations=%d success_rate=%.4f", params.SpaceSize, len(marked), iterations, successRate)

	return SearchResult{
		Execution:   Execution{Elapsed: time.Since(start)},
		Marked:      marked,
		SpaceSize:   params.SpaceSize,
		Found:       found,
		SuccessRate: successRate,
		Iterations:  iterations,
		Qubits:      n,
		Histogram:   hist,
	}, nil
}

// GroverIterations is the optimal number of amplification rounds for m
// targets among size items, never less than zero.
func GroverIterations(size, m int) int {
	if size <= 0 || m <= 0 {
		return 0
	}
	return int(math.Floor(math.Pi / 4 * math.Sqrt(float64(size)/float64(m))))
}

/*
amplify prepares the uniform superposition over n qubits, runs the optimal
number of oracle and diffusion rounds for targets, and samples the register.
*/
func amplify(ctx context.Context, cfg *Config, rng *rand.Rand, n int, targets []int) (*Histogram, int, error) {
	oracle, err := MarkingOracle(n, targets)
	if err != nil {
		return nil, 0, err
	}

	sv, err := NewRegister(cfg, n)
	if err != nil {
		return nil, 0, err
	}

	all := qubitRange(0, n)
	iterations := GroverIterations(1<<n, len(uniqueSorted(targets)))
	diffusion := Diffusion(all)

	if err := NewCircuit(n).H(all...).Run(sv); err != nil {
		return nil, 0, err
	}

	round := NewCircuit(n)
	oracle.ApplyTo(round)
	round.Append(diffusion...)

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, i, resourceErr(err, "amplitude amplification")
		}

		if err := round.Run(sv); err != nil {
			return nil, i, err
		}
	}

	hist, err := sv.Measure(cfg.Shots, rng)
	if err != nil {
		return nil, iterations, err
	}

	return hist, iterations, nil
}

// log2Exact returns n for size == 2^n with n ≥ 1.
func log2Exact(size int) (int, error) {
	if size < 2 || size&(size-1) != 0 {
		return 0, errors.Wrapf(ErrInvalidDimension, "space size %d is not a power of two ≥ 2", size)
	}
	return bits.TrailingZeros(uint(size)), nil
}

func uniqueSorted(values []int) []int {
	seen := make(map[int]bool, len(values))
	out := make([]int, 0, len(values))

	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	sort.Ints(out)
	return out
}
