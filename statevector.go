package qbench

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

/*
StateVector is the register a circuit evolves: 2^n complex amplitudes indexed
by the binary value of the basis state. Qubit q is bit q of the index.

A StateVector lives for exactly one algorithm run. It is created in |0...0⟩,
mutated in place by the Apply methods and sampled by Measure.
*/
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
	// Tolerance bounds the unitarity check on gates and the drift from unit
	// norm Measure accepts without renormalizing.
	Tolerance float64
}

// NewStateVector allocates a register of numQubits qubits in |0...0⟩, refusing
// to allocate when numQubits exceeds maxQubits.
func NewStateVector(numQubits, maxQubits int) (*StateVector, error) {
	if numQubits < 1 {
		return nil, errors.Wrapf(ErrInvalidDimension, "register needs at least one qubit, got %d", numQubits)
	}

	if numQubits > maxQubits {
		return nil, errors.Wrapf(
			ErrSimulationTooLarge, "%d qubits requested, ceiling is %d", numQubits, maxQubits,
		)
	}

	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1

	return &StateVector{Amplitudes: amps, NumQubits: numQubits, Tolerance: defaultTolerance}, nil
}

// NewRegister is NewStateVector bounded by the ceiling and tolerance of cfg.
func NewRegister(cfg *Config, numQubits int) (*StateVector, error) {
	sv, err := NewStateVector(numQubits, cfg.MaxQubits)
	if err != nil {
		return nil, err
	}

	sv.Tolerance = cfg.Tolerance
	return sv, nil
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits, Tolerance: s.Tolerance}
}

// Size is the number of basis states.
func (s *StateVector) Size() int {
	return len(s.Amplitudes)
}

/*
ApplySingle replaces every amplitude pair (i, i|bit) whose indices differ only
in the target bit with the 2x2 combination given by m. A non-unitary matrix
would break normalization, so it panics.
*/
func (s *StateVector) ApplySingle(m Matrix2, target int) {
	s.applyPairs(m, 0, 1<<target)
}

// ApplyControlled is ApplySingle restricted to basis states where the control bit is 1.
func (s *StateVector) ApplyControlled(m Matrix2, control, target int) {
	s.applyPairs(m, 1<<control, 1<<target)
}

func (s *StateVector) applyPairs(m Matrix2, mask, bit int) {
	if !m.IsUnitary(s.Tolerance) {
		panic(fmt.Sprintf("qbench: non-unitary gate %v", m))
	}

	for i := range s.Amplitudes {
		if i&bit != 0 || i&mask != mask {
			continue
		}

		j := i | bit
		a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.Amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

/*
ApplyMultiControlledFlip flips the target bit of every basis state whose
control bits are all 1. The predicate is evaluated directly over the whole
amplitude vector, so no ancilla decomposition is needed.
*/
func (s *StateVector) ApplyMultiControlledFlip(controls []int, target int) {
	mask := bitMask(controls)
	bit := 1 << target

	for i := range s.Amplitudes {
		if i&bit == 0 && i&mask == mask {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// ApplyPhase multiplies by e^{i·angle} every basis state whose target bit and
// control bits are all 1. With no controls it is a plain phase rotation.
func (s *StateVector) ApplyPhase(angle float64, target int, controls ...int) {
	mask := bitMask(controls) | 1<<target
	factor := cmplx.Exp(complex(0, angle))

	for i := range s.Amplitudes {
		if i&mask == mask {
			s.Amplitudes[i] *= factor
		}
	}
}

// ApplySwap exchanges two qubits.
func (s *StateVector) ApplySwap(q1, q2 int) {
	if q1 == q2 {
		return
	}

	bit1, bit2 := 1<<q1, 1<<q2

	for i := range s.Amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i &^ bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Norm is the sum of squared amplitude magnitudes; 1 for a valid state.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for _, amp := range s.Amplitudes {
		total += real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return total
}

// IsNormalized reports whether Norm is within tol of 1.
func (s *StateVector) IsNormalized(tol float64) bool {
	return math.Abs(s.Norm()-1) <= tol
}

// Probabilities returns |a|^2 for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		probs[i] = real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return probs
}

func (s *StateVector) Probability(index int) float64 {
	amp := s.Amplitudes[index]
	return real(amp)*real(amp) + imag(amp)*imag(amp)
}

func bitMask(qubits []int) int {
	mask := 0
	for _, q := range qubits {
		mask |= 1 << q
	}
	return mask
}
