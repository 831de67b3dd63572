package qbench

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMeasure(t *testing.T) {
	Convey("Given a qubit in equal superposition", t, func() {
		sv, _ := NewStateVector(1, 10)
		sv.ApplySingle(Hadamard, 0)

		Convey("Counts sum to shots and split roughly evenly", func() {
			hist, err := sv.Measure(4000, NewRand(11))
			So(err, ShouldBeNil)
			So(hist.Total(), ShouldEqual, 4000)
			So(hist.Share(0), ShouldAlmostEqual, 0.5, 0.05)
			So(hist.Share(1), ShouldAlmostEqual, 0.5, 0.05)
		})

		Convey("The same seed reproduces the same histogram", func() {
			a, _ := sv.Measure(500, NewRand(5))
			b, _ := sv.Measure(500, NewRand(5))
			So(a.Counts, ShouldResemble, b.Counts)
		})

		Convey("Measuring does not disturb the register", func() {
			_, _ = sv.Measure(10, NewRand(1))
			So(sv.Probability(0), ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("Zero shots is rejected", func() {
			_, err := sv.Measure(0, NewRand(1))
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})

		Convey("Unknown qubits are rejected", func() {
			_, err := sv.Measure(10, NewRand(1), 3)
			So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
		})
	})

	Convey("Given the basis state |101⟩", t, func() {
		sv, _ := NewStateVector(3, 10)
		sv.ApplySingle(PauliX, 0)
		sv.ApplySingle(PauliX, 2)

		Convey("Projecting onto (2, 1) reads qubit 2 as bit 0", func() {
			hist, err := sv.Measure(20, NewRand(1), 2, 1)
			So(err, ShouldBeNil)
			So(hist.Width, ShouldEqual, 2)
			So(hist.Count(1), ShouldEqual, 20)
		})

		Convey("A slightly denormalized register is still sampled correctly", func() {
			sv.Amplitudes[5] = complex(1.0000001, 0)
			hist, err := sv.Measure(20, NewRand(1))
			So(err, ShouldBeNil)
			So(hist.Count(5), ShouldEqual, 20)
		})
	})
}

func TestHistogram(t *testing.T) {
	Convey("Given a histogram of 4 bit outcomes", t, func() {
		hist := NewHistogram(4, 10)
		hist.Counts[5] = 4
		hist.Counts[3] = 4
		hist.Counts[9] = 2

		Convey("Most frequent breaks ties toward the lower outcome", func() {
			outcome, count := hist.MostFrequent()
			So(outcome, ShouldEqual, 3)
			So(count, ShouldEqual, 4)
		})

		Convey("Shares count duplicates once", func() {
			So(hist.ShareOf([]int{5, 5, 9}), ShouldAlmostEqual, 0.6, 1e-12)
		})

		Convey("Bitstrings are most significant bit first", func() {
			So(hist.Bitstring(5), ShouldEqual, "0101")
			So(hist.Bitstrings(), ShouldContainKey, "1001")
		})

		Convey("Outcomes are sorted", func() {
			So(hist.Outcomes(), ShouldResemble, []int{3, 5, 9})
		})
	})

	Convey("An empty histogram has no most frequent outcome", t, func() {
		outcome, _ := NewHistogram(2, 0).MostFrequent()
		So(outcome, ShouldEqual, -1)
	})
}
