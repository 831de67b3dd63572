package qbench

import (
	"context"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

// errRetry marks an attempt that failed in a way a new attempt may fix.
var errRetry = errors.New("retryable")

// retryable wraps err so RetryPolicy.Do tries again.
func retryable(format string, args ...any) error {
	return errors.Wrapf(errRetry, format, args...)
}

/*
RetryPolicy bounds a loop of attempts. Every attempt that returns a retryable
error is followed by another, up to MaxAttempts; then the last error is
wrapped in Exhausted. Any other error stops the loop immediately.
*/
type RetryPolicy struct {
	MaxAttempts int
	// Exhausted is the error kind reported when the budget runs out.
	// ErrResourceExceeded when nil.
	Exhausted error
	// Filter decides whether an error is worth another attempt.
	// Defaults to errors marked with retryable.
	Filter func(error) bool
}

// Do runs fn until it succeeds, fails hard, exhausts the budget or ctx ends.
// It returns the number of attempts made.
func (p *RetryPolicy) Do(ctx context.Context, fn func(attempt int) error) (int, error) {
	filter := p.Filter
	if filter == nil {
		filter = func(err error) bool { return errors.Is(err, errRetry) }
	}

	exhausted := p.Exhausted
	if exhausted == nil {
		exhausted = ErrResourceExceeded
	}

	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt, resourceErr(err, "retry loop")
		}

		err := fn(attempt)
		if err == nil {
			return attempt + 1, nil
		}

		if !filter(err) {
			return attempt + 1, err
		}

		lastErr = err
		errnie.Info("attempt %d/%d failed: %v", attempt+1, p.MaxAttempts, err)
	}

	return p.MaxAttempts, errors.Wrapf(exhausted, "all %d attempts failed, last: %v", p.MaxAttempts, lastErr)
}
