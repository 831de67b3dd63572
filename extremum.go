package qbench

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

type ExtremumParams struct {
	Data        []float64 `yaml:"data"`
	FindMin     bool      `yaml:"find_min"`
	Description string    `yaml:"description,omitempty"`
}

/*
Extremum locates the minimum or maximum of a data set with amplitude
amplification. The data is padded with sentinels to a power-of-two length,
the extremal value is determined by a scan, and the indices holding it become
the marked set of a Grover search. The most frequent measured index is the
answer.
*/
type Extremum struct {
	cfg *Config
	rng *rand.Rand
}

func NewExtremum(cfg *Config, rng *rand.Rand) *Extremum {
	return &Extremum{cfg: cfg, rng: rng}
}

func (e *Extremum) Name() string { return "extremum" }

func (e *Extremum) Run(ctx context.Context, params ExtremumParams) (ExtremumResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return ExtremumResult{}, resourceErr(err, e.Name())
	}

	if len(params.Data) == 0 {
		return ExtremumResult{}, errors.Wrap(ErrInvalidDimension, "extremum needs data")
	}

	for i, v := range params.Data {
		if math.IsNaN(v) {
			return ExtremumResult{}, errors.Wrapf(ErrInvalidDimension, "data[%d] is NaN", i)
		}
	}

	padded := padToPowerOfTwo(params.Data, params.FindMin)
	n, err := log2Exact(len(padded))
	if err != nil {
		return ExtremumResult{}, err
	}

	target, targets := scanExtremum(params.Data, params.FindMin)

	hist, iterations, err := amplify(ctx, e.cfg, e.rng, n, targets)
	if err != nil {
		return ExtremumResult{}, err
	}

	found, _ := hist.MostFrequent()
	foundValue := padded[found]

	errnie.Info(
		"extremum size=%d padded=%d find_min=%v target=%g found=%d iterations=%d",
		len(params.Data), len(padded), params.FindMin, target, found, iterations,
	)

	return ExtremumResult{
		Execution:     Execution{Elapsed: time.Since(start)},
		FindMin:       params.FindMin,
		TargetValue:   target,
		TargetIndices: targets,
		FoundIndex:    found,
		FoundValue:    foundValue,
		Success:       found < len(params.Data) && foundValue == target,
		SuccessRate:   hist.ShareOf(targets),
		Iterations:    iterations,
		PaddedSize:    len(padded),
		Histogram:     hist,
	}, nil
}

// padToPowerOfTwo extends data with +Inf (minimum search) or -Inf (maximum
// search) up to the next power of two, at least 2.
func padToPowerOfTwo(data []float64, findMin bool) []float64 {
	size := 2
	for size < len(data) {
		size <<= 1
	}

	sentinel := math.Inf(-1)
	if findMin {
		sentinel = math.Inf(1)
	}

	padded := make([]float64, size)
	copy(padded, data)

	for i := len(data); i < size; i++ {
		padded[i] = sentinel
	}

	return padded
}

// scanExtremum returns the extremal value and every index that holds it.
func scanExtremum(data []float64, findMin bool) (float64, []int) {
	best := data[0]

	for _, v := range data[1:] {
		if (findMin && v < best) || (!findMin && v > best) {
			best = v
		}
	}

	var indices []int
	for i, v := range data {
		if v == best {
			indices = append(indices, i)
		}
	}

	return best, indices
}
