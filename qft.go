package qbench

import "math"

/*
inverseQFTOps expands the inverse quantum Fourier transform over qubits
(least significant first) into swaps, controlled-phase rotations and
Hadamards. It undoes QFT|x⟩ = 1/√N Σ_y e^{2πi·xy/N}|y⟩, turning a phase
encoded across the register into the integer x. Depth is O(t²).
*/
func inverseQFTOps(qubits []int) []Operator {
	t := len(qubits)
	ops := make([]Operator, 0, t/2+t*(t+1)/2)

	// Index-order reversal comes first in the inverse.
	for i := 0; i < t/2; i++ {
		ops = append(ops, Operator{Kind: OpSwap, Target: qubits[i], Controls: []int{qubits[t-1-i]}})
	}

	for j := 0; j < t; j++ {
		for k := 0; k < j; k++ {
			ops = append(ops, Operator{
				Kind:     OpControlledPhase,
				Target:   qubits[j],
				Controls: []int{qubits[k]},
				Angle:    -math.Pi / math.Pow(2, float64(j-k)),
			})
		}
		ops = append(ops, Operator{Kind: OpHadamard, Target: qubits[j]})
	}

	return ops
}
