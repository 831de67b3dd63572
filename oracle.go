package qbench

import (
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
)

// OracleAction is what an oracle does to one basis state.
type OracleAction int

const (
	NoOp OracleAction = iota
	PhaseFlip
	ValueFlip
)

func (a OracleAction) String() string {
	switch a {
	case PhaseFlip:
		return "phase-flip"
	case ValueFlip:
		return "value-flip"
	default:
		return "no-op"
	}
}

/*
Oracle marks target basis states, either by flipping their phase or by
flipping an ancilla value. It carries both the classical description of what
it marks (Action) and the gate sequence that realizes it (Ops). An Oracle is
built fresh for every run and never changes afterwards.
*/
type Oracle struct {
	name   string
	width  int
	action func(index int) OracleAction
	ops    []Operator
}

func (o *Oracle) Name() string { return o.name }

// Width is the number of input qubits the oracle reads.
func (o *Oracle) Width() int { return o.width }

// Action reports what the oracle does to the basis state index of its inputs.
func (o *Oracle) Action(index int) OracleAction {
	return o.action(index)
}

// Ops returns a copy of the gate realization.
func (o *Oracle) Ops() []Operator {
	return append([]Operator(nil), o.ops...)
}

// ApplyTo appends the oracle to c.
func (o *Oracle) ApplyTo(c *Circuit) {
	c.Append(o.ops...)
}

/*
MarkingOracle flips the phase of exactly the marked basis states of qubits
0..n-1. Each marked pattern is aligned with |1...1⟩ by negating its zero bits,
phase-flipped with a multi-controlled Z, then the negation is undone.
*/
func MarkingOracle(n int, marked []int) (*Oracle, error) {
	size := 1 << n
	set := make(map[int]bool, len(marked))

	for _, m := range marked {
		if m < 0 || m >= size {
			return nil, errors.Wrapf(ErrInvalidDimension, "marked index %d outside [0, %d)", m, size)
		}
		set[m] = true
	}

	targets := make([]int, 0, len(set))
	for m := range set {
		targets = append(targets, m)
	}
	sort.Ints(targets)

	all := qubitRange(0, n)
	c := NewCircuit(n)

	for _, m := range targets {
		zeros := zeroBits(m, n)
		c.X(zeros...)
		c.MCZ(all...)
		c.X(zeros...)
	}

	return &Oracle{
		name:  "marking",
		width: n,
		action: func(index int) OracleAction {
			if set[index] {
				return PhaseFlip
			}
			return NoOp
		},
		ops: c.Ops,
	}, nil
}

/*
ConstantOracle realizes f(x) = 0 (no gates) or f(x) = 1 (an unconditional
ancilla flip), picking one uniformly with rng. Both are constant.
*/
func ConstantOracle(n int, rng *rand.Rand) *Oracle {
	if rng.IntN(2) == 0 {
		return &Oracle{
			name:   "constant-0",
			width:  n,
			action: func(int) OracleAction { return NoOp },
		}
	}

	return &Oracle{
		name:   "constant-1",
		width:  n,
		action: func(int) OracleAction { return ValueFlip },
		ops:    NewCircuit(n + 1).X(n).Ops,
	}
}

// BalancedOracle accumulates the parity of inputs 0..n-1 into ancilla n.
func BalancedOracle(n int) *Oracle {
	c := NewCircuit(n + 1)
	for i := 0; i < n; i++ {
		c.CX(i, n)
	}

	return &Oracle{
		name:  "balanced-parity",
		width: n,
		action: func(index int) OracleAction {
			if parity(index) == 1 {
				return ValueFlip
			}
			return NoOp
		},
		ops: c.Ops,
	}
}

/*
Diffusion reflects qubits about their uniform superposition: Hadamard all,
phase-flip |0...0⟩ (by negating into |1...1⟩), Hadamard all. The result
differs from 2|s⟩⟨s| - I only by a global phase.
*/
func Diffusion(qubits []int) []Operator {
	c := NewCircuit(0)
	c.H(qubits...)
	c.X(qubits...)
	c.MCZ(qubits...)
	c.X(qubits...)
	c.H(qubits...)
	return c.Ops
}

func qubitRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for q := from; q < to; q++ {
		out = append(out, q)
	}
	return out
}

func zeroBits(value, n int) []int {
	var zeros []int
	for q := 0; q < n; q++ {
		if value&(1<<q) == 0 {
			zeros = append(zeros, q)
		}
	}
	return zeros
}

func parity(x int) int {
	p := 0
	for x > 0 {
		p ^= x & 1
		x >>= 1
	}
	return p
}
