package qbench

import (
	"context"
	"math"
	"math/bits"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

type FactorParams struct {
	N int `yaml:"n"`
	// Base is the first base to try; zero picks every base at random.
	Base        int    `yaml:"base,omitempty"`
	Description string `yaml:"description,omitempty"`
}

/*
Shor factors N with the classical reduction of Shor's algorithm. The period
finding step, which a quantum computer performs with a modular exponentiation
circuit and a Fourier transform, is replaced here by classical order finding
through iterated modular multiplication. The timings therefore show the
classical cost of the reduction, not a quantum speedup.
*/
type Shor struct {
	cfg *Config
	rng *rand.Rand
}

func NewShor(cfg *Config, rng *rand.Rand) *Shor {
	return &Shor{cfg: cfg, rng: rng}
}

func (s *Shor) Name() string { return "shor" }

func (s *Shor) Run(ctx context.Context, params FactorParams) (FactorResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return FactorResult{}, resourceErr(err, s.Name())
	}

	n := params.N
	result := FactorResult{N: n}

	finish := func(method FactorMethod, p int) (FactorResult, error) {
		result.Method = method
		result.Factors = sortedPair(p, n/p)
		result.Elapsed = time.Since(start)
		errnie.Info(
			"shor N=%d factors=%v method=%s base=%d period=%d attempts=%d",
			n, result.Factors, method, result.Base, result.Period, result.Attempts,
		)
		return result, nil
	}

	switch {
	case n < 2:
		return FactorResult{}, errors.Wrapf(ErrInvalidDimension, "cannot factor %d", n)
	case isPrime(n):
		return FactorResult{}, errors.Wrapf(ErrFactorizationFailed, "%d is prime", n)
	case n%2 == 0:
		return finish(MethodTrivial, 2)
	}

	if root, ok := perfectPowerRoot(n); ok {
		return finish(MethodPerfectPower, root)
	}

	if params.Base != 0 && (params.Base < 2 || params.Base >= n) {
		return FactorResult{}, errors.Wrapf(ErrInvalidParameter, "base %d outside [2, %d)", params.Base, n)
	}

	var (
		factor int
		method FactorMethod
	)

	policy := &RetryPolicy{MaxAttempts: s.cfg.FactorAttempts, Exhausted: ErrFactorizationFailed}

	attempts, err := policy.Do(ctx, func(attempt int) error {
		a := params.Base
		if attempt > 0 || a == 0 {
			a = 2 + s.rng.IntN(n-3)
		}

		result.Base, result.Period = a, 0

		if g := gcd(a, n); g > 1 {
			factor, method = g, MethodGCD
			return nil
		}

		r, err := multiplicativeOrder(ctx, a, n)
		if err != nil {
			return err
		}

		result.Period = r

		if r%2 != 0 {
			return retryable("base %d has odd period %d", a, r)
		}

		x := powMod(a, r/2, n)
		if x == n-1 {
			return retryable("base %d: a^(r/2) ≡ -1 mod %d", a, n)
		}

		for _, candidate := range []int{gcd(x-1, n), gcd(x+1, n)} {
			if candidate > 1 && candidate < n {
				factor, method = candidate, MethodPeriod
				return nil
			}
		}

		return retryable("base %d with period %d gave only trivial factors", a, r)
	})

	result.Attempts = attempts

	if err != nil {
		return FactorResult{}, errors.Wrapf(err, "factor %d", n)
	}

	return finish(method, factor)
}

/*
multiplicativeOrder returns the smallest r > 0 with a^r ≡ 1 (mod n), for a
coprime to n. The walk is bounded by n steps and checks ctx periodically.
*/
func multiplicativeOrder(ctx context.Context, a, n int) (int, error) {
	cur := a % n

	for r := 1; r <= n; r++ {
		if cur == 1 {
			return r, nil
		}

		if r%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, resourceErr(err, "order finding")
			}
		}

		cur = mulMod(cur, a, n)
	}

	return 0, errors.Wrapf(ErrResourceExceeded, "no order for %d mod %d within %d steps", a, n, n)
}

// mulMod computes a·b mod m without overflow for a, b < m.
func mulMod(a, b, m int) int {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	_, rem := bits.Div64(hi, lo, uint64(m))
	return int(rem)
}

func powMod(base, exp, m int) int {
	result, b := 1%m, base%m

	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, b, m)
		}
		b = mulMod(b, b, m)
		exp >>= 1
	}

	return result
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// perfectPowerRoot finds b > 1 with b^k = n for some k ≥ 2.
func perfectPowerRoot(n int) (int, bool) {
	for k := bits.Len(uint(n)); k >= 2; k-- {
		guess := int(math.Round(math.Pow(float64(n), 1/float64(k))))

		for b := max(guess-1, 2); b <= guess+1; b++ {
			if intPow(b, k, n) == n {
				return b, true
			}
		}
	}
	return 0, false
}

// intPow returns b^k, or limit+1 once the product exceeds limit.
func intPow(b, k, limit int) int {
	p := 1
	for i := 0; i < k; i++ {
		if p > limit/b {
			return limit + 1
		}
		p *= b
	}
	return p
}

func sortedPair(a, b int) []int {
	pair := []int{a, b}
	sort.Ints(pair)
	return pair
}
