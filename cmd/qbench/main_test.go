package main

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/theapemachine/qbench"
)

func TestParseMemorySize(t *testing.T) {
	Convey("Given human readable sizes", t, func() {
		for in, want := range map[string]int64{
			"1024":  1024,
			"512MB": 512 << 20,
			"2g":    2 << 30,
			"4KB":   4096,
		} {
			got, err := parseMemorySize(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("Unlimited spellings mean no limit", func() {
			for _, in := range []string{"", "0", "unlimited"} {
				got, err := parseMemorySize(in)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, int64(0))
			}
		})

		Convey("Malformed sizes are rejected", func() {
			for _, in := range []string{"lots", "12XB", "-5MB", "99999999999G"} {
				_, err := parseMemorySize(in)
				So(errors.Is(err, qbench.ErrInvalidParameter), ShouldBeTrue)
			}
		})
	})
}

func TestGetEnv(t *testing.T) {
	Convey("Given QBENCH environment variables", t, func() {
		t.Setenv("QBENCH_TEST_INT", "12")
		t.Setenv("QBENCH_TEST_BAD", "x")

		So(getEnvInt("QBENCH_TEST_INT", 1), ShouldEqual, 12)
		So(getEnvInt("QBENCH_TEST_BAD", 1), ShouldEqual, 1)
		So(getEnvUint("QBENCH_TEST_INT", 0), ShouldEqual, uint64(12))
		So(getEnvStr("QBENCH_TEST_MISSING", "d"), ShouldEqual, "d")
	})
}
