package qbench

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

type PhaseParams struct {
	Phase          float64 `yaml:"phase"`
	CountingQubits int     `yaml:"n_counting_qubits"`
	Description    string  `yaml:"description,omitempty"`
}

/*
PhaseEstimation recovers φ from the eigenvalue e^{2πiφ} of a phase gate acting
on |1⟩. Counting qubit k controls U^(2^k); an inverse Fourier transform over the
counting register turns the accumulated phases into a binary fraction, which is
read off as the most frequent outcome divided by 2^t. Dyadic phases m/2^t are
recovered exactly.
*/
type PhaseEstimation struct {
	cfg *Config
	rng *rand.Rand
}

func NewPhaseEstimation(cfg *Config, rng *rand.Rand) *PhaseEstimation {
	return &PhaseEstimation{cfg: cfg, rng: rng}
}

func (pe *PhaseEstimation) Name() string { return "phase-estimation" }

func (pe *PhaseEstimation) Run(ctx context.Context, params PhaseParams) (PhaseResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return PhaseResult{}, resourceErr(err, pe.Name())
	}

	phi, t := params.Phase, params.CountingQubits

	if math.IsNaN(phi) || phi < 0 || phi >= 1 {
		return PhaseResult{}, errors.Wrapf(ErrInvalidPhase, "phase %g outside [0, 1)", phi)
	}

	if t < 1 {
		return PhaseResult{}, errors.Wrapf(ErrInvalidDimension, "need at least one counting qubit, got %d", t)
	}

	sv, err := NewRegister(pe.cfg, t+1)
	if err != nil {
		return PhaseResult{}, err
	}

	counting := qubitRange(0, t)
	circuit := NewCircuit(t + 1).X(t).H(counting...)

	for k := range counting {
		circuit.CPhase(2*math.Pi*phi*float64(int(1)<<k), k, t)
	}

	circuit.InverseQFT(counting...)

	if err := circuit.Run(sv); err != nil {
		return PhaseResult{}, err
	}

	hist, err := sv.Measure(pe.cfg.Shots, pe.rng, counting...)
	if err != nil {
		return PhaseResult{}, err
	}

	measured, _ := hist.MostFrequent()
	resolution := 1 / float64(int(1)<<t)
	estimate := float64(measured) * resolution

	errnie.Info("phase-estimation phi=%g t=%d estimate=%g", phi, t, estimate)

	return PhaseResult{
		Execution:          Execution{Elapsed: time.Since(start)},
		Phase:              phi,
		Estimated:          estimate,
		Error:              math.Abs(estimate - phi),
		Resolution:         resolution,
		CountingQubits:     t,
		MeasuredInt:        measured,
		MeasuredState:      hist.Bitstring(measured),
		SuccessProbability: hist.Share(measured),
		Histogram:          hist,
	}, nil
}
