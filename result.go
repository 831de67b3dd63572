package qbench

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// AlgorithmKind discriminates results and names dataset sections.
type AlgorithmKind string

const (
	KindFunctionType    AlgorithmKind = "function_type"
	KindSearch          AlgorithmKind = "search"
	KindExtremum        AlgorithmKind = "extremum"
	KindPhaseEstimation AlgorithmKind = "phase_estimation"
	KindFactorization   AlgorithmKind = "factorization"
)

// Kinds lists every algorithm in run order.
var Kinds = []AlgorithmKind{
	KindFactorization, KindSearch, KindFunctionType, KindExtremum, KindPhaseEstimation,
}

// Execution is the metadata every result carries.
type Execution struct {
	Elapsed time.Duration `yaml:"elapsed"`
}

func (e Execution) Meta() Execution { return e }

/*
Result is the output of a quantum algorithm run. The set of implementations is
closed: FunctionTypeResult, SearchResult, ExtremumResult, PhaseResult and
FactorResult. Switch on the concrete type to read algorithm-specific fields.
*/
type Result interface {
	Kind() AlgorithmKind
	Meta() Execution
	// Cost is the abstract query count the run spent: oracle calls, amplification
	// iterations, controlled rotations or base attempts.
	Cost() float64
	isResult()
}

// FunctionType is the class of a boolean function promised constant or balanced.
type FunctionType string

const (
	Constant FunctionType = "constant"
	Balanced FunctionType = "balanced"
)

func ParseFunctionType(s string) (FunctionType, error) {
	switch ft := FunctionType(strings.ToLower(strings.TrimSpace(s))); ft {
	case Constant, Balanced:
		return ft, nil
	default:
		return "", errors.Wrapf(ErrInvalidParameter, "function type %q", s)
	}
}

type FunctionTypeResult struct {
	Execution `yaml:",inline"`
	Qubits    int          `yaml:"n_qubits"`
	Actual    FunctionType `yaml:"actual_type"`
	Detected  FunctionType `yaml:"detected_type"`
	Correct   bool         `yaml:"correct"`
	ZeroShare float64      `yaml:"zero_share"`
	Queries   int          `yaml:"queries"`
	Oracle    string       `yaml:"oracle"`
	Histogram *Histogram   `yaml:"measurements"`
}

func (FunctionTypeResult) Kind() AlgorithmKind { return KindFunctionType }
func (r FunctionTypeResult) Cost() float64     { return float64(r.Queries) }
func (FunctionTypeResult) isResult()           {}

type SearchResult struct {
	Execution   `yaml:",inline"`
	Marked      []int      `yaml:"marked_items"`
	SpaceSize   int        `yaml:"space_size"`
	Found       []int      `yaml:"found_items"`
	SuccessRate float64    `yaml:"success_rate"`
	Iterations  int        `yaml:"iterations"`
	Qubits      int        `yaml:"n_qubits"`
	Histogram   *Histogram `yaml:"measurements"`
}

func (SearchResult) Kind() AlgorithmKind { return KindSearch }
func (r SearchResult) Cost() float64     { return float64(max(r.Iterations, 1)) }
func (SearchResult) isResult()           {}

type ExtremumResult struct {
	Execution     `yaml:",inline"`
	FindMin       bool       `yaml:"find_min"`
	TargetValue   float64    `yaml:"target_value"`
	TargetIndices []int      `yaml:"target_indices"`
	FoundIndex    int        `yaml:"found_index"`
	FoundValue    float64    `yaml:"found_value"`
	Success       bool       `yaml:"success"`
	SuccessRate   float64    `yaml:"success_rate"`
	Iterations    int        `yaml:"iterations"`
	PaddedSize    int        `yaml:"padded_size"`
	Histogram     *Histogram `yaml:"measurements"`
}

func (ExtremumResult) Kind() AlgorithmKind { return KindExtremum }
func (r ExtremumResult) Cost() float64     { return float64(max(r.Iterations, 1)) }
func (ExtremumResult) isResult()           {}

type PhaseResult struct {
	Execution          `yaml:",inline"`
	Phase              float64    `yaml:"actual_phase"`
	Estimated          float64    `yaml:"estimated_phase"`
	Error              float64    `yaml:"error"`
	Resolution         float64    `yaml:"precision"`
	CountingQubits     int        `yaml:"n_counting_qubits"`
	MeasuredInt        int        `yaml:"measured_int"`
	MeasuredState      string     `yaml:"measured_state"`
	SuccessProbability float64    `yaml:"success_probability"`
	Histogram          *Histogram `yaml:"measurements"`
}

func (PhaseResult) Kind() AlgorithmKind { return KindPhaseEstimation }

// Cost counts the O(t²) gates of the controlled rotations and inverse transform.
func (r PhaseResult) Cost() float64 { return float64(r.CountingQubits * r.CountingQubits) }
func (PhaseResult) isResult()       {}

// FactorMethod records which branch produced the factors.
type FactorMethod string

const (
	MethodTrivial      FactorMethod = "trivial"
	MethodPerfectPower FactorMethod = "perfect-power"
	MethodGCD          FactorMethod = "gcd"
	MethodPeriod       FactorMethod = "period"
)

type FactorResult struct {
	Execution `yaml:",inline"`
	N         int          `yaml:"n"`
	Factors   []int        `yaml:"factors"`
	Base      int          `yaml:"base,omitempty"`
	Period    int          `yaml:"period,omitempty"`
	Attempts  int          `yaml:"attempts"`
	Method    FactorMethod `yaml:"method"`
}

func (FactorResult) Kind() AlgorithmKind { return KindFactorization }
func (r FactorResult) Cost() float64     { return float64(max(r.Attempts, 1)) }
func (FactorResult) isResult()           {}
