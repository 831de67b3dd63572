package qbench

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
	"github.com/viterin/vek"
)

/*
Measure draws shots independent samples from the |amplitude|^2 distribution
using rng and returns the outcome histogram. When qubits are given, each
sample is projected onto those qubits, qubits[k] becoming bit k of the
outcome; otherwise the full basis index is recorded.

The register itself is left untouched so the same state can be sampled again.
*/
func (s *StateVector) Measure(shots int, rng *rand.Rand, qubits ...int) (*Histogram, error) {
	if shots < 1 {
		return nil, errors.Wrapf(ErrInvalidDimension, "shots must be positive, got %d", shots)
	}

	for _, q := range qubits {
		if q < 0 || q >= s.NumQubits {
			return nil, errors.Wrapf(ErrInvalidDimension, "measured qubit %d outside %d qubits", q, s.NumQubits)
		}
	}

	probs := s.Probabilities()
	total := vek.Sum(probs)

	if total <= 0 || math.IsNaN(total) {
		return nil, errors.Wrap(ErrInvalidDimension, "register has no probability mass")
	}

	// Floating error accumulates over long circuits; renormalize before sampling.
	if math.Abs(total-1) > s.Tolerance {
		vek.DivNumber_Inplace(probs, total)
	}

	cdf := vek.CumSum(probs)
	last := lastSupported(probs)

	width := s.NumQubits
	if len(qubits) > 0 {
		width = len(qubits)
	}

	hist := NewHistogram(width, shots)

	for shot := 0; shot < shots; shot++ {
		r := rng.Float64()
		idx := sort.Search(len(cdf), func(i int) bool { return cdf[i] > r })

		if idx > last {
			idx = last
		}

		hist.Counts[project(idx, qubits)]++
	}

	return hist, nil
}

// project maps a basis index onto the measured qubits.
func project(index int, qubits []int) int {
	if len(qubits) == 0 {
		return index
	}

	out := 0
	for k, q := range qubits {
		if index&(1<<q) != 0 {
			out |= 1 << k
		}
	}
	return out
}

func lastSupported(probs []float64) int {
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return len(probs) - 1
}
