package qbench

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func testConfig() *Config {
	cfg := NewConfig()
	cfg.MaxQubits = 12
	cfg.Shots = 1000
	return cfg
}

func TestDeutschJozsa(t *testing.T) {
	Convey("Given a Deutsch-Jozsa run", t, func() {
		ctx := context.Background()
		dj := NewDeutschJozsa(testConfig(), NewRand(42))

		for n := 1; n <= 6; n++ {
			Convey(fmt.Sprintf("Constant functions are detected on %d qubits", n), func() {
				res, err := dj.Run(ctx, FunctionTypeParams{Qubits: n, Type: Constant})
				So(err, ShouldBeNil)
				So(res.Detected, ShouldEqual, Constant)
				So(res.Correct, ShouldBeTrue)
				So(res.ZeroShare, ShouldEqual, 1.0)
				So(res.Queries, ShouldEqual, 1)
			})

			Convey(fmt.Sprintf("Balanced functions are detected on %d qubits", n), func() {
				res, err := dj.Run(ctx, FunctionTypeParams{Qubits: n, Type: Balanced})
				So(err, ShouldBeNil)
				So(res.Detected, ShouldEqual, Balanced)
				So(res.ZeroShare, ShouldEqual, 0.0)
				So(res.Histogram.Total(), ShouldEqual, 1000)
			})
		}

		Convey("Zero qubits is an invalid dimension", func() {
			_, err := dj.Run(ctx, FunctionTypeParams{Qubits: 0, Type: Constant})
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})

		Convey("Unknown function types are rejected", func() {
			_, err := dj.Run(ctx, FunctionTypeParams{Qubits: 2, Type: "periodic"})
			So(errors.Is(err, ErrInvalidParameter), ShouldBeTrue)
		})

		Convey("Registers over the ceiling are refused", func() {
			_, err := dj.Run(ctx, FunctionTypeParams{Qubits: 12, Type: Balanced})
			So(errors.Is(err, ErrSimulationTooLarge), ShouldBeTrue)
		})
	})
}

func TestGrover(t *testing.T) {
	Convey("Given a Grover search", t, func() {
		ctx := context.Background()
		g := NewGrover(testConfig(), NewRand(42))

		Convey("One marked item in 16 takes 3 iterations and is found", func() {
			res, err := g.Run(ctx, SearchParams{Marked: []int{5}, SpaceSize: 16})
			So(err, ShouldBeNil)
			So(res.Iterations, ShouldEqual, 3)
			So(res.SuccessRate, ShouldBeGreaterThan, 0.9)
			So(res.Found, ShouldResemble, []int{5})
			So(res.Cost(), ShouldEqual, 3.0)

			if res.SuccessRate <= 0.9 {
				t.Log(spew.Sdump(res.Histogram))
			}
		})

		Convey("Several marked items are all amplified", func() {
			res, err := g.Run(ctx, SearchParams{Marked: []int{3, 17, 40}, SpaceSize: 64})
			So(err, ShouldBeNil)
			So(res.Iterations, ShouldEqual, GroverIterations(64, 3))
			So(res.SuccessRate, ShouldBeGreaterThan, 0.9)

			linear, err := LinearSearch([]int{3, 17, 40}, 64)
			So(err, ShouldBeNil)

			for _, f := range res.Found {
				So(linear.Found, ShouldContain, f)
			}
		})

		Convey("Duplicate marks count once", func() {
			res, err := g.Run(ctx, SearchParams{Marked: []int{5, 5}, SpaceSize: 16})
			So(err, ShouldBeNil)
			So(res.Marked, ShouldResemble, []int{5})
			So(res.Iterations, ShouldEqual, 3)
		})

		Convey("A space that is not a power of two is rejected", func() {
			_, err := g.Run(ctx, SearchParams{Marked: []int{1}, SpaceSize: 12})
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})

		Convey("An empty marked set is rejected", func() {
			_, err := g.Run(ctx, SearchParams{SpaceSize: 16})
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})

		Convey("Marks outside the space are rejected", func() {
			_, err := g.Run(ctx, SearchParams{Marked: []int{16}, SpaceSize: 16})
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})

		Convey("A cancelled context stops the run", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := g.Run(cancelled, SearchParams{Marked: []int{5}, SpaceSize: 16})
			So(errors.Is(err, ErrResourceExceeded), ShouldBeTrue)
		})
	})

	Convey("Grover iterations follow ⌊π/4·√(N/M)⌋", t, func() {
		So(GroverIterations(16, 1), ShouldEqual, 3)
		So(GroverIterations(8, 1), ShouldEqual, 2)
		So(GroverIterations(4, 1), ShouldEqual, 1)
		So(GroverIterations(2, 1), ShouldEqual, 1)
		So(GroverIterations(16, 16), ShouldEqual, 0)
	})
}

func TestExtremum(t *testing.T) {
	Convey("Given an extremum search", t, func() {
		ctx := context.Background()
		e := NewExtremum(testConfig(), NewRand(42))
		data := []float64{7, 3, 9, 1, 5, 8, 2, 6}

		Convey("The minimum is found at index 3", func() {
			res, err := e.Run(ctx, ExtremumParams{Data: data, FindMin: true})
			So(err, ShouldBeNil)
			So(res.TargetValue, ShouldEqual, 1.0)
			So(res.TargetIndices, ShouldResemble, []int{3})
			So(res.FoundIndex, ShouldEqual, 3)
			So(res.Success, ShouldBeTrue)
			So(res.SuccessRate, ShouldBeGreaterThan, 0.8)
			So(res.Iterations, ShouldEqual, 2)
		})

		Convey("A lone minimum among repeated values is amplified", func() {
			res, err := e.Run(ctx, ExtremumParams{Data: []float64{5, 5, 5, 1, 5, 5, 5, 5}, FindMin: true})
			So(err, ShouldBeNil)
			So(res.TargetIndices, ShouldResemble, []int{3})
			So(res.FoundIndex, ShouldEqual, 3)
			So(res.SuccessRate, ShouldBeGreaterThan, 0.8)
		})

		Convey("The maximum is found at index 2", func() {
			res, err := e.Run(ctx, ExtremumParams{Data: data, FindMin: false})
			So(err, ShouldBeNil)
			So(res.FoundIndex, ShouldEqual, 2)
			So(res.FoundValue, ShouldEqual, 9.0)
		})

		Convey("Data is padded to a power of two with sentinels", func() {
			res, err := e.Run(ctx, ExtremumParams{Data: []float64{4, 2, 8, 6, 1}, FindMin: true})
			So(err, ShouldBeNil)
			So(res.PaddedSize, ShouldEqual, 8)
			So(res.FoundIndex, ShouldEqual, 4)

			padded := padToPowerOfTwo([]float64{4, 2, 8}, false)
			So(padded, ShouldHaveLength, 4)
			So(math.IsInf(padded[3], -1), ShouldBeTrue)
		})

		Convey("A single value is padded to two and targeted", func() {
			res, err := e.Run(ctx, ExtremumParams{Data: []float64{42}, FindMin: true})
			So(err, ShouldBeNil)
			So(res.PaddedSize, ShouldEqual, 2)
			So(res.TargetIndices, ShouldResemble, []int{0})
			So(res.FoundIndex, ShouldBeBetweenOrEqual, 0, 1)
		})

		Convey("Empty data is rejected", func() {
			_, err := e.Run(ctx, ExtremumParams{FindMin: true})
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})

		Convey("NaN values are rejected", func() {
			_, err := e.Run(ctx, ExtremumParams{Data: []float64{1, math.NaN()}})
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})
	})
}

func TestPhaseEstimation(t *testing.T) {
	Convey("Given a phase estimation run", t, func() {
		ctx := context.Background()
		pe := NewPhaseEstimation(testConfig(), NewRand(42))

		Convey("The dyadic phase 0.25 is recovered exactly with 4 counting qubits", func() {
			res, err := pe.Run(ctx, PhaseParams{Phase: 0.25, CountingQubits: 4})
			So(err, ShouldBeNil)
			So(res.MeasuredInt, ShouldEqual, 4)
			So(res.Estimated, ShouldEqual, 0.25)
			So(res.Error, ShouldEqual, 0.0)
			So(res.MeasuredState, ShouldEqual, "0100")
			So(res.SuccessProbability, ShouldEqual, 1.0)
			So(res.Resolution, ShouldEqual, 1.0/16)
		})

		Convey("Every dyadic phase k/8 is exact with 3 counting qubits", func() {
			for k := 0; k < 8; k++ {
				res, err := pe.Run(ctx, PhaseParams{Phase: float64(k) / 8, CountingQubits: 3})
				So(err, ShouldBeNil)
				So(res.MeasuredInt, ShouldEqual, k)
			}
		})

		Convey("A non-dyadic phase lands within one resolution step", func() {
			res, err := pe.Run(ctx, PhaseParams{Phase: 0.3, CountingQubits: 5})
			So(err, ShouldBeNil)
			So(res.Error, ShouldBeLessThanOrEqualTo, 1.0/32)
		})

		Convey("Phases outside [0, 1) are rejected", func() {
			for _, phi := range []float64{-0.1, 1, 1.5, math.NaN()} {
				_, err := pe.Run(ctx, PhaseParams{Phase: phi, CountingQubits: 3})
				So(errors.Is(err, ErrInvalidPhase), ShouldBeTrue)
			}
		})

		Convey("Too many counting qubits are refused", func() {
			_, err := pe.Run(ctx, PhaseParams{Phase: 0.5, CountingQubits: 12})
			So(errors.Is(err, ErrSimulationTooLarge), ShouldBeTrue)
		})
	})
}

func TestShor(t *testing.T) {
	Convey("Given a factorization run", t, func() {
		ctx := context.Background()
		s := NewShor(testConfig(), NewRand(42))

		Convey("15 factors into 3 and 5", func() {
			res, err := s.Run(ctx, FactorParams{N: 15})
			So(err, ShouldBeNil)
			So(res.Factors, ShouldResemble, []int{3, 5})
		})

		Convey("21 factors into 3 and 7", func() {
			res, err := s.Run(ctx, FactorParams{N: 21})
			So(err, ShouldBeNil)
			So(res.Factors, ShouldResemble, []int{3, 7})
		})

		Convey("Odd semiprimes below 100 all factor", func() {
			for _, n := range []int{33, 35, 39, 51, 55, 57, 65, 77, 85, 91, 95} {
				res, err := s.Run(ctx, FactorParams{N: n})
				So(err, ShouldBeNil)
				So(res.Factors[0]*res.Factors[1], ShouldEqual, n)
				So(res.Factors[0], ShouldBeGreaterThan, 1)
			}
		})

		Convey("Base 7 finds period 4 for 15", func() {
			res, err := s.Run(ctx, FactorParams{N: 15, Base: 7})
			So(err, ShouldBeNil)
			So(res.Method, ShouldEqual, MethodPeriod)
			So(res.Period, ShouldEqual, 4)
			So(res.Attempts, ShouldEqual, 1)
		})

		Convey("A base sharing a factor returns through the gcd", func() {
			res, err := s.Run(ctx, FactorParams{N: 15, Base: 6})
			So(err, ShouldBeNil)
			So(res.Method, ShouldEqual, MethodGCD)
			So(res.Factors, ShouldResemble, []int{3, 5})
		})

		Convey("Even numbers return 2 trivially", func() {
			res, err := s.Run(ctx, FactorParams{N: 14})
			So(err, ShouldBeNil)
			So(res.Factors, ShouldResemble, []int{2, 7})
			So(res.Method, ShouldEqual, MethodTrivial)
		})

		Convey("Perfect powers return their root", func() {
			res, err := s.Run(ctx, FactorParams{N: 27})
			So(err, ShouldBeNil)
			So(res.Factors, ShouldResemble, []int{3, 9})
			So(res.Method, ShouldEqual, MethodPerfectPower)
		})

		Convey("Primes fail immediately", func() {
			_, err := s.Run(ctx, FactorParams{N: 13})
			So(errors.Is(err, ErrFactorizationFailed), ShouldBeTrue)
		})

		Convey("An exhausted retry budget fails instead of looping", func() {
			cfg := testConfig()
			cfg.FactorAttempts = 1
			_, err := NewShor(cfg, NewRand(1)).Run(ctx, FactorParams{N: 15, Base: 14})
			So(errors.Is(err, ErrFactorizationFailed), ShouldBeTrue)
		})

		Convey("Bases outside [2, N) are rejected", func() {
			_, err := s.Run(ctx, FactorParams{N: 15, Base: 15})
			So(errors.Is(err, ErrInvalidParameter), ShouldBeTrue)
		})

		Convey("An expired deadline is a resource error", func() {
			expired, cancel := context.WithDeadline(ctx, time.Now().Add(-time.Second))
			defer cancel()
			_, err := s.Run(expired, FactorParams{N: 15})
			So(errors.Is(err, ErrResourceExceeded), ShouldBeTrue)
		})
	})

	Convey("Order finding honours cancellation on long walks", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// 7 is a primitive root of the prime 2^31-1.
		_, err := multiplicativeOrder(ctx, 7, math.MaxInt32)
		So(errors.Is(err, ErrResourceExceeded), ShouldBeTrue)
	})

	Convey("Modular helpers", t, func() {
		So(powMod(7, 2, 15), ShouldEqual, 4)
		So(mulMod(math.MaxInt32-1, math.MaxInt32-1, math.MaxInt32), ShouldEqual, 1)
		So(gcd(21, 14), ShouldEqual, 7)
		So(isPrime(97), ShouldBeTrue)
		So(isPrime(91), ShouldBeFalse)
	})
}
