package qbench

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
)

/*
ClassicalResult is the output of a classical baseline. Like Result the set of
implementations is closed, and Cost reports the baseline's comparison, query
or sample count so it can be set against the quantum cost.
*/
type ClassicalResult interface {
	Kind() AlgorithmKind
	Cost() float64
	isClassical()
}

type LinearSearchResult struct {
	Found              []int   `yaml:"found_items"`
	Comparisons        int     `yaml:"comparisons"`
	AverageComparisons float64 `yaml:"average_comparisons"`
}

func (LinearSearchResult) Kind() AlgorithmKind { return KindSearch }
func (r LinearSearchResult) Cost() float64     { return float64(r.Comparisons) }
func (LinearSearchResult) isClassical()        {}

type TrialDivisionResult struct {
	N         int   `yaml:"n"`
	Factors   []int `yaml:"factors"`
	Divisions int   `yaml:"divisions"`
}

func (TrialDivisionResult) Kind() AlgorithmKind { return KindFactorization }
func (r TrialDivisionResult) Cost() float64     { return float64(r.Divisions) }
func (TrialDivisionResult) isClassical()        {}

type ExtremumScanResult struct {
	FindMin     bool    `yaml:"find_min"`
	Value       float64 `yaml:"value"`
	Index       int     `yaml:"index"`
	Comparisons int     `yaml:"comparisons"`
}

func (ExtremumScanResult) Kind() AlgorithmKind { return KindExtremum }
func (r ExtremumScanResult) Cost() float64     { return float64(max(r.Comparisons, 1)) }
func (ExtremumScanResult) isClassical()        {}

type QueryResult struct {
	Qubits   int          `yaml:"n_qubits"`
	Actual   FunctionType `yaml:"actual_type"`
	Detected FunctionType `yaml:"detected_type"`
	Queries  int          `yaml:"queries"`
	Correct  bool         `yaml:"correct"`
}

func (QueryResult) Kind() AlgorithmKind { return KindFunctionType }
func (r QueryResult) Cost() float64     { return float64(r.Queries) }
func (QueryResult) isClassical()        {}

type SamplingPhaseResult struct {
	Phase         float64 `yaml:"actual_phase"`
	Estimated     float64 `yaml:"estimated_phase"`
	Error         float64 `yaml:"error"`
	Precision     float64 `yaml:"precision"`
	Samples       int     `yaml:"n_samples"`
	SamplesNeeded float64 `yaml:"samples_needed"`
}

func (SamplingPhaseResult) Kind() AlgorithmKind { return KindPhaseEstimation }
func (r SamplingPhaseResult) Cost() float64     { return r.SamplesNeeded }
func (SamplingPhaseResult) isClassical()        {}

// maxClassicalQueryBits caps the worst-case query simulation, which
// materializes 2^(n-1)+1 outputs.
const maxClassicalQueryBits = 24

// LinearSearch scans 0..spaceSize-1 and stops once every marked item is found.
func LinearSearch(marked []int, spaceSize int) (LinearSearchResult, error) {
	if spaceSize < 1 {
		return LinearSearchResult{}, errors.Wrapf(ErrInvalidDimension, "space size %d", spaceSize)
	}

	if len(marked) == 0 {
		return LinearSearchResult{}, errors.Wrap(ErrInvalidDimension, "linear search needs marked items")
	}

	set := make(map[int]bool, len(marked))
	for _, m := range marked {
		if m < 0 || m >= spaceSize {
			return LinearSearchResult{}, errors.Wrapf(ErrInvalidDimension, "marked index %d outside [0, %d)", m, spaceSize)
		}
		set[m] = true
	}

	result := LinearSearchResult{Found: make([]int, 0, len(set))}

	for i := 0; i < spaceSize && len(result.Found) < len(set); i++ {
		result.Comparisons++
		if set[i] {
			result.Found = append(result.Found, i)
		}
	}

	result.AverageComparisons = float64(result.Comparisons) / float64(len(set))
	return result, nil
}

/*
TrialDivision factors n completely by dividing out 2, then odd divisors up to
the square root of what remains. Factors are ascending with multiplicity.
Divisions counts every remainder test.
*/
func TrialDivision(n int) TrialDivisionResult {
	result := TrialDivisionResult{N: n, Factors: []int{}}
	if n < 2 {
		return result
	}

	rest := n
	divide := func(d int) {
		for {
			result.Divisions++
			if rest%d != 0 {
				return
			}
			result.Factors = append(result.Factors, d)
			rest /= d
		}
	}

	divide(2)
	for d := 3; d*d <= rest; d += 2 {
		divide(d)
	}

	if rest > 1 {
		result.Factors = append(result.Factors, rest)
	}

	return result
}

// LinearExtremum returns the first index holding the minimum or maximum after
// exactly len(data)-1 comparisons.
func LinearExtremum(data []float64, findMin bool) (ExtremumScanResult, error) {
	if len(data) == 0 {
		return ExtremumScanResult{}, errors.Wrap(ErrInvalidDimension, "extremum scan needs data")
	}

	result := ExtremumScanResult{FindMin: findMin, Value: data[0]}

	for i := 1; i < len(data); i++ {
		result.Comparisons++
		if (findMin && data[i] < result.Value) || (!findMin && data[i] > result.Value) {
			result.Value, result.Index = data[i], i
		}
	}

	return result, nil
}

/*
WorstCaseQuery simulates the deterministic classical strategy for the
constant-or-balanced promise: query 2^(n-1)+1 inputs, one more than half,
and call the function constant only if every output agrees. Outputs are
drawn with rng consistently with the actual type.
*/
func WorstCaseQuery(n int, actual FunctionType, rng *rand.Rand) (QueryResult, error) {
	if n < 1 {
		return QueryResult{}, errors.Wrapf(ErrInvalidDimension, "need at least one input bit, got %d", n)
	}

	if n > maxClassicalQueryBits {
		return QueryResult{}, errors.Wrapf(ErrSimulationTooLarge, "%d input bits above %d", n, maxClassicalQueryBits)
	}

	queries := 1<<(n-1) + 1
	outputs := make([]int, queries)

	switch actual {
	case Constant:
		value := rng.IntN(2)
		for i := range outputs {
			outputs[i] = value
		}
	case Balanced:
		for i := queries / 2; i < queries; i++ {
			outputs[i] = 1
		}
		rng.Shuffle(len(outputs), func(i, j int) { outputs[i], outputs[j] = outputs[j], outputs[i] })
	default:
		return QueryResult{}, errors.Wrapf(ErrInvalidParameter, "function type %q", actual)
	}

	detected := Constant
	for _, out := range outputs[1:] {
		if out != outputs[0] {
			detected = Balanced
			break
		}
	}

	return QueryResult{
		Qubits:   n,
		Actual:   actual,
		Detected: detected,
		Queries:  queries,
		Correct:  detected == actual,
	}, nil
}

/*
SamplingPhaseEstimate models classical phase estimation by sampling: with
samples draws the precision is 1/samples, the estimate is the true phase plus
Gaussian noise of standard deviation precision/2 clamped into [0, 0.999], and
reaching the precision of a quantum run with the same number of bits would
take 2^samples samples.
*/
func SamplingPhaseEstimate(phase float64, samples int, rng *rand.Rand) (SamplingPhaseResult, error) {
	if math.IsNaN(phase) || phase < 0 || phase >= 1 {
		return SamplingPhaseResult{}, errors.Wrapf(ErrInvalidPhase, "phase %g outside [0, 1)", phase)
	}

	if samples < 1 {
		return SamplingPhaseResult{}, errors.Wrapf(ErrInvalidDimension, "samples must be positive, got %d", samples)
	}

	precision := 1 / float64(samples)
	estimate := phase + rng.NormFloat64()*precision/2
	estimate = math.Min(math.Max(estimate, 0), 0.999)

	return SamplingPhaseResult{
		Phase:         phase,
		Estimated:     estimate,
		Error:         math.Abs(estimate - phase),
		Precision:     precision,
		Samples:       samples,
		SamplesNeeded: math.Pow(2, float64(samples)),
	}, nil
}
