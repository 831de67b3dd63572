package qbench

import "github.com/viterin/vek"

// KindSummary aggregates the comparisons of one algorithm kind. Averages only
// cover scenarios where both sides succeeded.
type KindSummary struct {
	Kind                AlgorithmKind `yaml:"kind"`
	Scenarios           int           `yaml:"scenarios"`
	Failures            int           `yaml:"failures"`
	Correct             int           `yaml:"correct"`
	AverageSuccessRate  float64       `yaml:"average_success_rate"`
	AverageSpeedup      float64       `yaml:"average_speedup"`
	AverageQuerySpeedup float64       `yaml:"average_query_speedup"`
}

/*
Summary groups the report by algorithm kind, in the order of Kinds, skipping
kinds with no scenarios. A scenario is correct when the quantum side returned
the right answer: the detected function type, every marked item observed, the
extremal value, a phase within one counting resolution or a nontrivial
factor pair.
*/
func (r *Report) Summary() []KindSummary {
	var out []KindSummary

	for _, kind := range Kinds {
		sum := KindSummary{Kind: kind}
		var rates, speedups, querySpeedups []float64

		for i := range r.Comparisons {
			c := &r.Comparisons[i]
			if c.Kind != kind {
				continue
			}

			sum.Scenarios++
			if c.Failed() {
				sum.Failures++
				continue
			}

			rate, correct := outcome(c.Quantum.Result)
			if correct {
				sum.Correct++
			}

			rates = append(rates, rate)
			speedups = append(speedups, c.Speedup)
			querySpeedups = append(querySpeedups, c.QuerySpeedup)
		}

		if sum.Scenarios == 0 {
			continue
		}

		sum.AverageSuccessRate = mean(rates)
		sum.AverageSpeedup = mean(speedups)
		sum.AverageQuerySpeedup = mean(querySpeedups)
		out = append(out, sum)
	}

	return out
}

// outcome reads the success rate and correctness of a quantum result.
func outcome(res Result) (float64, bool) {
	switch r := res.(type) {
	case FunctionTypeResult:
		if r.Correct {
			return 1, true
		}
		return 0, false
	case SearchResult:
		return r.SuccessRate, len(r.Found) == len(r.Marked)
	case ExtremumResult:
		return r.SuccessRate, r.Success
	case PhaseResult:
		return r.SuccessProbability, r.Error <= r.Resolution
	case FactorResult:
		if len(r.Factors) == 2 && r.Factors[0] > 1 && r.Factors[1] > 1 && r.Factors[0]*r.Factors[1] == r.N {
			return 1, true
		}
		return 0, false
	}

	return 0, false
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return vek.Mean(xs)
}
