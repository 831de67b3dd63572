package qbench

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// OpKind names a gate application.
type OpKind int

const (
	OpHadamard OpKind = iota
	OpFlip
	OpPhase
	OpControlledFlip
	OpControlledPhase
	OpMultiControlledFlip
	OpMultiControlledPhase
	OpSwap
	OpInverseTransform
)

func (k OpKind) String() string {
	switch k {
	case OpHadamard:
		return "h"
	case OpFlip:
		return "x"
	case OpPhase:
		return "p"
	case OpControlledFlip:
		return "cx"
	case OpControlledPhase:
		return "cp"
	case OpMultiControlledFlip:
		return "mcx"
	case OpMultiControlledPhase:
		return "mcp"
	case OpSwap:
		return "swap"
	case OpInverseTransform:
		return "iqft"
	default:
		return fmt.Sprintf("op(%d)", int(k))
	}
}

/*
Operator describes one gate application. It never touches a register on its
own; Circuit.Run applies it.

Swap uses Target and Controls[0] as its two qubits. InverseTransform acts on
Qubits, least significant first.
*/
type Operator struct {
	Kind     OpKind
	Target   int
	Controls []int
	Angle    float64
	Qubits   []int
}

func (op Operator) String() string {
	switch op.Kind {
	case OpInverseTransform:
		return fmt.Sprintf("%s %v", op.Kind, op.Qubits)
	case OpPhase, OpControlledPhase, OpMultiControlledPhase:
		return fmt.Sprintf("%s(%.6f) %v -> %d", op.Kind, op.Angle, op.Controls, op.Target)
	default:
		return fmt.Sprintf("%s %v -> %d", op.Kind, op.Controls, op.Target)
	}
}

// Circuit is an ordered operator sequence over a fixed register width.
type Circuit struct {
	NumQubits int
	Ops       []Operator
}

func NewCircuit(numQubits int) *Circuit {
	return &Circuit{NumQubits: numQubits}
}

func (c *Circuit) Append(ops ...Operator) *Circuit {
	c.Ops = append(c.Ops, ops...)
	return c
}

// H puts each qubit into superposition.
func (c *Circuit) H(qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Ops = append(c.Ops, Operator{Kind: OpHadamard, Target: q})
	}
	return c
}

func (c *Circuit) X(qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Ops = append(c.Ops, Operator{Kind: OpFlip, Target: q})
	}
	return c
}

// Z is a phase rotation by π.
func (c *Circuit) Z(target int) *Circuit {
	return c.Phase(math.Pi, target)
}

func (c *Circuit) Phase(angle float64, target int) *Circuit {
	c.Ops = append(c.Ops, Operator{Kind: OpPhase, Target: target, Angle: angle})
	return c
}

func (c *Circuit) CX(control, target int) *Circuit {
	c.Ops = append(c.Ops, Operator{Kind: OpControlledFlip, Target: target, Controls: []int{control}})
	return c
}

func (c *Circuit) CPhase(angle float64, control, target int) *Circuit {
	c.Ops = append(c.Ops, Operator{
		Kind: OpControlledPhase, Target: target, Controls: []int{control}, Angle: angle,
	})
	return c
}

func (c *Circuit) MCX(controls []int, target int) *Circuit {
	c.Ops = append(c.Ops, Operator{
		Kind: OpMultiControlledFlip, Target: target, Controls: append([]int(nil), controls...),
	})
	return c
}

// MCZ flips the phase of the basis states where all of qubits are 1.
func (c *Circuit) MCZ(qubits ...int) *Circuit {
	if len(qubits) == 0 {
		return c
	}

	last := len(qubits) - 1
	c.Ops = append(c.Ops, Operator{
		Kind:     OpMultiControlledPhase,
		Target:   qubits[last],
		Controls: append([]int(nil), qubits[:last]...),
		Angle:    math.Pi,
	})
	return c
}

func (c *Circuit) Swap(q1, q2 int) *Circuit {
	c.Ops = append(c.Ops, Operator{Kind: OpSwap, Target: q1, Controls: []int{q2}})
	return c
}

func (c *Circuit) InverseQFT(qubits ...int) *Circuit {
	c.Ops = append(c.Ops, Operator{Kind: OpInverseTransform, Qubits: append([]int(nil), qubits...)})
	return c
}

// Len is the number of operators, with inverse transforms expanded.
func (c *Circuit) Len() int {
	n := 0
	for _, op := range c.Ops {
		if op.Kind == OpInverseTransform {
			n += len(inverseQFTOps(op.Qubits))
			continue
		}
		n++
	}
	return n
}

// Validate checks every qubit index against the register width.
func (c *Circuit) Validate() error {
	for i, op := range c.Ops {
		if err := c.validateOp(op); err != nil {
			return errors.Wrapf(err, "op %d (%s)", i, op)
		}
	}
	return nil
}

func (c *Circuit) validateOp(op Operator) error {
	inRange := func(q int) bool { return q >= 0 && q < c.NumQubits }

	if op.Kind == OpInverseTransform {
		if len(op.Qubits) == 0 {
			return errors.Wrap(ErrInvalidDimension, "inverse transform needs qubits")
		}
		seen := make(map[int]bool, len(op.Qubits))
		for _, q := range op.Qubits {
			if !inRange(q) || seen[q] {
				return errors.Wrapf(ErrInvalidDimension, "bad transform qubit %d", q)
			}
			seen[q] = true
		}
		return nil
	}

	if !inRange(op.Target) {
		return errors.Wrapf(ErrInvalidDimension, "target %d outside %d qubits", op.Target, c.NumQubits)
	}

	switch op.Kind {
	case OpControlledFlip, OpControlledPhase, OpSwap:
		if len(op.Controls) != 1 {
			return errors.Wrapf(ErrInvalidDimension, "%s takes exactly one control", op.Kind)
		}
	}

	for _, q := range op.Controls {
		if !inRange(q) {
			return errors.Wrapf(ErrInvalidDimension, "control %d outside %d qubits", q, c.NumQubits)
		}
		if q == op.Target && op.Kind != OpSwap {
			return errors.Wrapf(ErrInvalidDimension, "control %d is also the target", q)
		}
	}

	return nil
}

// Run validates the circuit and applies it to sv in order.
func (c *Circuit) Run(sv *StateVector) error {
	if sv.NumQubits != c.NumQubits {
		return errors.Wrapf(
			ErrInvalidDimension, "circuit has %d qubits, register has %d", c.NumQubits, sv.NumQubits,
		)
	}

	if err := c.Validate(); err != nil {
		return err
	}

	for _, op := range c.Ops {
		apply(sv, op)
	}

	return nil
}

func apply(sv *StateVector, op Operator) {
	switch op.Kind {
	case OpHadamard:
		sv.ApplySingle(Hadamard, op.Target)
	case OpFlip:
		sv.ApplySingle(PauliX, op.Target)
	case OpPhase:
		sv.ApplyPhase(op.Angle, op.Target)
	case OpControlledFlip:
		sv.ApplyControlled(PauliX, op.Controls[0], op.Target)
	case OpControlledPhase, OpMultiControlledPhase:
		sv.ApplyPhase(op.Angle, op.Target, op.Controls...)
	case OpMultiControlledFlip:
		sv.ApplyMultiControlledFlip(op.Controls, op.Target)
	case OpSwap:
		sv.ApplySwap(op.Target, op.Controls[0])
	case OpInverseTransform:
		for _, sub := range inverseQFTOps(op.Qubits) {
			apply(sv, sub)
		}
	}
}
