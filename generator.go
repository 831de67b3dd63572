package qbench

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"
)

// GeneratorOptions sets how many scenarios GenerateDataset produces.
type GeneratorOptions struct {
	Composites    int
	SearchCases   int
	FunctionCases int
	ExtremumSets  int
	ArraySize     int
	PhaseCases    int
}

func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Composites:    5,
		SearchCases:   4,
		FunctionCases: 6,
		ExtremumSets:  4,
		ArraySize:     8,
		PhaseCases:    6,
	}
}

var (
	smallPrimes   = []int{3, 5, 7, 11, 13, 17, 19}
	searchSpaces  = []int{16, 32, 64, 128}
	dyadicPhases  = []float64{0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.875}
	functionTypes = []FunctionType{Constant, Balanced}
)

/*
GenerateDataset draws a random scenario set from rng. The same seed always
yields the same dataset. seed is recorded on the dataset for reference only.
*/
func GenerateDataset(rng *rand.Rand, seed uint64, opts GeneratorOptions) *Dataset {
	return &Dataset{
		Seed:            seed,
		GeneratedAt:     time.Now().UTC(),
		Factorization:   generateComposites(rng, opts.Composites),
		Search:          generateSearches(rng, opts.SearchCases),
		FunctionType:    generateFunctionTypes(rng, opts.FunctionCases),
		Extremum:        generateExtrema(rng, opts.ExtremumSets, opts.ArraySize),
		PhaseEstimation: generatePhases(rng, opts.PhaseCases),
	}
}

/*
InternalDataset is the fixed reference suite: small semiprimes, a few search
spaces, both function types, three minimum searches and dyadic phases plus one
that no counting register represents exactly.
*/
func InternalDataset() *Dataset {
	return &Dataset{
		Factorization: []FactorParams{
			{N: 15},
			{N: 21},
		},
		Search: []SearchParams{
			{Marked: []int{5}, SpaceSize: 16, Description: "single item in 16 elements"},
			{Marked: []int{3, 7}, SpaceSize: 16, Description: "two items in 16 elements"},
			{Marked: []int{11}, SpaceSize: 32, Description: "single item in 32 elements"},
		},
		FunctionType: []FunctionTypeParams{
			{Qubits: 3, Type: Constant},
			{Qubits: 3, Type: Balanced},
			{Qubits: 4, Type: Constant},
			{Qubits: 4, Type: Balanced},
			{Qubits: 5, Type: Balanced},
		},
		Extremum: []ExtremumParams{
			{Data: []float64{7, 3, 9, 1, 5, 8, 2, 6}, FindMin: true, Description: "8 random values"},
			{Data: []float64{15, 8, 23, 4, 16, 42, 11, 19}, FindMin: true, Description: "8 larger values"},
			{Data: []float64{5, 5, 5, 1, 5, 5, 5, 5}, FindMin: true, Description: "mostly identical with one min"},
		},
		PhaseEstimation: []PhaseParams{
			{Phase: 0.25, CountingQubits: 4},
			{Phase: 0.5, CountingQubits: 4},
			{Phase: 0.125, CountingQubits: 5},
			{Phase: 0.375, CountingQubits: 5},
			{Phase: 0.3, CountingQubits: 6, Description: "non-dyadic phase 0.3, 6 qubits"},
		},
	}
}

// generateComposites returns up to count distinct odd semiprimes in (10, 100).
func generateComposites(rng *rand.Rand, count int) []FactorParams {
	seen := make(map[int]bool)

	for tries := 0; len(seen) < count && tries < count*20; tries++ {
		i, j := rng.IntN(len(smallPrimes)), rng.IntN(len(smallPrimes))
		if i == j {
			continue
		}

		if n := smallPrimes[i] * smallPrimes[j]; n > 10 && n < 100 {
			seen[n] = true
		}
	}

	ns := make([]int, 0, len(seen))
	for n := range seen {
		ns = append(ns, n)
	}
	sort.Ints(ns)

	out := make([]FactorParams, len(ns))
	for i, n := range ns {
		out[i] = FactorParams{N: n, Description: fmt.Sprintf("N = %d", n)}
	}
	return out
}

func generateSearches(rng *rand.Rand, count int) []SearchParams {
	out := make([]SearchParams, 0, count)

	for i := 0; i < count; i++ {
		size := searchSpaces[rng.IntN(len(searchSpaces))]
		m := 1 + rng.IntN(3)
		marked := rng.Perm(size)[:m]
		sort.Ints(marked)

		plural := ""
		if m > 1 {
			plural = "s"
		}

		out = append(out, SearchParams{
			Marked:      marked,
			SpaceSize:   size,
			Description: fmt.Sprintf("%d item%s in %d elements", m, plural, size),
		})
	}

	return out
}

func generateFunctionTypes(rng *rand.Rand, count int) []FunctionTypeParams {
	out := make([]FunctionTypeParams, 0, count)

	for i := 0; i < count; i++ {
		n := 3 + rng.IntN(4)
		ft := functionTypes[rng.IntN(len(functionTypes))]

		out = append(out, FunctionTypeParams{
			Qubits:      n,
			Type:        ft,
			Description: fmt.Sprintf("%d qubits, %s function", n, ft),
		})
	}

	return out
}

// generateExtrema emits every data set twice, once for the minimum and once
// for the maximum.
func generateExtrema(rng *rand.Rand, count, size int) []ExtremumParams {
	if size < 2 {
		size = 2
	}
	size = 1 << int(math.Ceil(math.Log2(float64(size))))

	uniform := func(lo, hi int) []float64 {
		data := make([]float64, size)
		for i := range data {
			data[i] = float64(lo + rng.IntN(hi-lo+1))
		}
		return data
	}

	out := make([]ExtremumParams, 0, 2*count)

	for i := 0; i < count; i++ {
		var (
			data []float64
			desc string
		)

		switch rng.IntN(5) {
		case 0:
			data, desc = uniform(1, 20), "random values 1-20"
		case 1:
			data, desc = uniform(10, 100), "random values 10-100"
		case 2:
			v := 5 + rng.IntN(6)
			data = uniform(v, v)
			data[rng.IntN(size)] = 1
			desc = fmt.Sprintf("mostly %ds with unique min", v)
		case 3:
			v := 5 + rng.IntN(6)
			data = uniform(v, v)
			data[rng.IntN(size)] = 99
			desc = fmt.Sprintf("mostly %ds with unique max", v)
		default:
			data, desc = uniform(1, 50), "mixed random values"
		}

		out = append(out,
			ExtremumParams{Data: data, FindMin: true, Description: desc + ", minimum"},
			ExtremumParams{Data: append([]float64(nil), data...), FindMin: false, Description: desc + ", maximum"},
		)
	}

	return out
}

// generatePhases draws dyadic phases 70% of the time, otherwise a phase in
// [0.1, 0.9] rounded to three decimals.
func generatePhases(rng *rand.Rand, count int) []PhaseParams {
	out := make([]PhaseParams, 0, count)

	for i := 0; i < count; i++ {
		var (
			phase float64
			kind  string
		)

		if rng.Float64() < 0.7 {
			phase, kind = dyadicPhases[rng.IntN(len(dyadicPhases))], "dyadic"
		} else {
			phase, kind = math.Round((0.1+0.8*rng.Float64())*1000)/1000, "non-dyadic"
		}

		t := 4 + rng.IntN(4)

		out = append(out, PhaseParams{
			Phase:          phase,
			CountingQubits: t,
			Description:    fmt.Sprintf("phase = %g (%s), %d qubits", phase, kind, t),
		})
	}

	return out
}
