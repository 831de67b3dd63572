package qbench

import (
	"bytes"
	"math/bits"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDataset(t *testing.T) {
	Convey("Given a hand-written dataset", t, func() {
		ds := &Dataset{
			Seed:            9,
			Factorization:   []FactorParams{{N: 15}, {N: 21, Base: 2}},
			Search:          []SearchParams{{Marked: []int{5}, SpaceSize: 16, Description: "one in 16"}},
			FunctionType:    []FunctionTypeParams{{Qubits: 3, Type: Balanced}},
			Extremum:        []ExtremumParams{{Data: []float64{7, 3, 9}, FindMin: true}},
			PhaseEstimation: []PhaseParams{{Phase: 0.25, CountingQubits: 4}},
		}

		Convey("It survives a yaml round trip", func() {
			var buf bytes.Buffer
			So(ds.Encode(&buf), ShouldBeNil)

			decoded, err := DecodeDataset(&buf)
			So(err, ShouldBeNil)
			So(decoded, ShouldResemble, ds)
			So(decoded.Size(), ShouldEqual, 6)
		})
	})

	Convey("Given yaml with loosely spelled function types", t, func() {
		ds, err := DecodeDataset(strings.NewReader("function_type:\n  - n_qubits: 2\n    function_type: Constant\n"))

		So(err, ShouldBeNil)
		So(ds.FunctionType[0].Type, ShouldEqual, Constant)
	})

	Convey("Unknown function types are rejected", t, func() {
		_, err := DecodeDataset(strings.NewReader("function_type:\n  - n_qubits: 2\n    function_type: periodic\n"))
		So(err, ShouldNotBeNil)
	})

	Convey("An empty document is an empty dataset", t, func() {
		ds, err := DecodeDataset(strings.NewReader(""))
		So(err, ShouldBeNil)
		So(ds.Size(), ShouldEqual, 0)
	})
}

func TestGenerateDataset(t *testing.T) {
	Convey("Given the default generator options", t, func() {
		opts := DefaultGeneratorOptions()
		ds := GenerateDataset(NewRand(2024), 2024, opts)

		Convey("The same seed generates the same scenarios", func() {
			again := GenerateDataset(NewRand(2024), 2024, opts)
			So(again.Factorization, ShouldResemble, ds.Factorization)
			So(again.Search, ShouldResemble, ds.Search)
			So(again.Extremum, ShouldResemble, ds.Extremum)
			So(again.PhaseEstimation, ShouldResemble, ds.PhaseEstimation)
		})

		Convey("Composites are odd semiprimes between 10 and 100", func() {
			So(len(ds.Factorization), ShouldBeGreaterThan, 0)
			for _, p := range ds.Factorization {
				So(p.N, ShouldBeBetween, 10, 100)
				So(len(TrialDivision(p.N).Factors), ShouldEqual, 2)
				So(p.N%2, ShouldEqual, 1)
			}
		})

		Convey("Search scenarios have 1 to 3 marks in a power-of-two space", func() {
			So(ds.Search, ShouldHaveLength, opts.SearchCases)
			for _, p := range ds.Search {
				So(bits.OnesCount(uint(p.SpaceSize)), ShouldEqual, 1)
				So(len(p.Marked), ShouldBeBetweenOrEqual, 1, 3)
				for _, m := range p.Marked {
					So(m, ShouldBeBetweenOrEqual, 0, p.SpaceSize-1)
				}
			}
		})

		Convey("Function scenarios use 3 to 6 qubits", func() {
			So(ds.FunctionType, ShouldHaveLength, opts.FunctionCases)
			for _, p := range ds.FunctionType {
				So(p.Qubits, ShouldBeBetweenOrEqual, 3, 6)
			}
		})

		Convey("Every extremum data set appears for min and max", func() {
			So(ds.Extremum, ShouldHaveLength, 2*opts.ExtremumSets)
			for i := 0; i < len(ds.Extremum); i += 2 {
				So(ds.Extremum[i].FindMin, ShouldBeTrue)
				So(ds.Extremum[i+1].FindMin, ShouldBeFalse)
				So(ds.Extremum[i].Data, ShouldResemble, ds.Extremum[i+1].Data)
				So(ds.Extremum[i].Data, ShouldHaveLength, opts.ArraySize)
			}
		})

		Convey("Phases lie in [0, 1) with 4 to 7 counting qubits", func() {
			for _, p := range ds.PhaseEstimation {
				So(p.Phase, ShouldBeBetween, 0, 1)
				So(p.CountingQubits, ShouldBeBetweenOrEqual, 4, 7)
			}
		})
	})
}

func TestInternalDataset(t *testing.T) {
	Convey("Given the built-in reference suite", t, func() {
		ds := InternalDataset()

		Convey("It holds every reference scenario", func() {
			So(ds.Size(), ShouldEqual, 18)
			So(ds.Factorization, ShouldResemble, []FactorParams{{N: 15}, {N: 21}})
			So(ds.Search[1].Marked, ShouldResemble, []int{3, 7})
			So(ds.Search[2].SpaceSize, ShouldEqual, 32)
			So(ds.FunctionType, ShouldHaveLength, 5)
			So(ds.Extremum[2].Data, ShouldResemble, []float64{5, 5, 5, 1, 5, 5, 5, 5})
			So(ds.PhaseEstimation[4].Phase, ShouldEqual, 0.3)
			So(ds.PhaseEstimation[4].CountingQubits, ShouldEqual, 6)
		})

		Convey("Minimum searches only", func() {
			for _, p := range ds.Extremum {
				So(p.FindMin, ShouldBeTrue)
			}
		})

		Convey("It is a fresh copy every call", func() {
			ds.Search[0].Marked[0] = 9
			So(InternalDataset().Search[0].Marked, ShouldResemble, []int{5})
		})
	})
}
