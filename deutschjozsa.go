package qbench

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

type FunctionTypeParams struct {
	Qubits      int          `yaml:"n_qubits"`
	Type        FunctionType `yaml:"function_type"`
	Description string       `yaml:"description,omitempty"`
}

/*
DeutschJozsa decides with a single oracle query whether a hidden function of n
bits is constant or balanced. The register holds n input qubits plus one
ancilla at index n prepared in |1⟩, so the oracle kicks its value back as a
phase. After the final Hadamard layer, the all-zero input outcome has
probability one exactly when the function is constant.
*/
type DeutschJozsa struct {
	cfg *Config
	rng *rand.Rand
}

func NewDeutschJozsa(cfg *Config, rng *rand.Rand) *DeutschJozsa {
	return &DeutschJozsa{cfg: cfg, rng: rng}
}

func (dj *DeutschJozsa) Name() string { return "deutsch-jozsa" }

func (dj *DeutschJozsa) Run(ctx context.Context, params FunctionTypeParams) (FunctionTypeResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return FunctionTypeResult{}, resourceErr(err, dj.Name())
	}

	n := params.Qubits
	if n < 1 {
		return FunctionTypeResult{}, errors.Wrapf(ErrInvalidDimension, "deutsch-jozsa needs at least one input qubit, got %d", n)
	}

	var oracle *Oracle

	switch params.Type {
	case Constant:
		oracle = ConstantOracle(n, dj.rng)
	case Balanced:
		oracle = BalancedOracle(n)
	default:
		return FunctionTypeResult{}, errors.Wrapf(ErrInvalidParameter, "function type %q", params.Type)
	}

	sv, err := NewRegister(dj.cfg, n+1)
	if err != nil {
		return FunctionTypeResult{}, err
	}

	inputs := qubitRange(0, n)
	circuit := NewCircuit(n + 1).X(n).H(qubitRange(0, n+1)...)
	oracle.ApplyTo(circuit)
	circuit.H(inputs...)

	if err := circuit.Run(sv); err != nil {
		return FunctionTypeResult{}, err
	}

	hist, err := sv.Measure(dj.cfg.Shots, dj.rng, inputs...)
	if err != nil {
		return FunctionTypeResult{}, err
	}

	zeroShare := hist.Share(0)
	detected := Balanced

	if zeroShare >= dj.cfg.ConstantThreshold-dj.cfg.Tolerance {
		detected = Constant
	}

	errnie.Info("deutsch-jozsa n=%d oracle=%s zero_share=%.4f detected=%s", n, oracle.Name(), zeroShare, detected)

	return FunctionTypeResult{
		Execution: Execution{Elapsed: time.Since(start)},
		Qubits:    n,
		Actual:    params.Type,
		Detected:  detected,
		Correct:   detected == params.Type,
		ZeroShare: zeroShare,
		Queries:   1,
		Oracle:    oracle.Name(),
		Histogram: hist,
	}, nil
}
