package qbench

import "context"

/*
Algorithm is the capability every quantum algorithm exposes. Run builds a
fresh register, evolves and samples it, and interprets the histogram into a
typed result. Runs share nothing except the random source handed to the
algorithm's constructor.
*/
type Algorithm[P any, R Result] interface {
	Name() string
	Run(ctx context.Context, params P) (R, error)
}

// Timed adapts any algorithm run into a harness Callable.
func Timed[P any, R Result](alg Algorithm[P, R], params P) Callable[R] {
	return func(ctx context.Context) (R, error) {
		return alg.Run(ctx, params)
	}
}
