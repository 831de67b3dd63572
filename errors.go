package qbench

import "github.com/pkg/errors"

/*
Error kinds returned by the simulator, the algorithms and the harness. Callers
branch on them with errors.Is; the returned errors carry additional context
wrapped around these sentinels.
*/
var (
	// ErrInvalidDimension covers non-power-of-two spaces, out-of-range indices and empty inputs.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrInvalidPhase is returned when a phase lies outside [0, 1).
	ErrInvalidPhase = errors.New("invalid phase")
	// ErrSimulationTooLarge is returned before allocating a register above the qubit ceiling.
	ErrSimulationTooLarge = errors.New("simulation too large")
	// ErrFactorizationFailed is returned once the base retry budget is exhausted.
	ErrFactorizationFailed = errors.New("factorization failed")
	// ErrResourceExceeded is returned when a deadline, iteration cap or resource guard trips.
	ErrResourceExceeded = errors.New("resource exceeded")
)

// resourceErr maps a context error onto ErrResourceExceeded.
func resourceErr(err error, what string) error {
	return errors.Wrapf(ErrResourceExceeded, "%s: %v", what, err)
}

// ErrInvalidParameter covers enum and base values outside their domain.
var ErrInvalidParameter = errors.New("invalid parameter")
