package qbench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := NewConfig()

		Convey("It validates", func() {
			So(cfg.Validate(), ShouldBeNil)
			So(cfg.ConstantThreshold, ShouldEqual, 1.0)
		})

		Convey("A ceiling over 30 qubits is rejected", func() {
			cfg.MaxQubits = 31
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A zero threshold is rejected", func() {
			cfg.ConstantThreshold = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A zero epsilon is rejected", func() {
			cfg.Epsilon = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A negative timeout is rejected", func() {
			cfg.Timeout = -time.Second
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})

	Convey("Given a yaml config file", t, func() {
		path := filepath.Join(t.TempDir(), "qbench.yaml")
		So(os.WriteFile(path, []byte("max_qubits: 8\nshots: 64\ntimeout: 5s\n"), 0o600), ShouldBeNil)

		Convey("It overrides the defaults it names", func() {
			cfg, err := LoadConfig(path)
			So(err, ShouldBeNil)
			So(cfg.MaxQubits, ShouldEqual, 8)
			So(cfg.Shots, ShouldEqual, 64)
			So(cfg.Timeout, ShouldEqual, 5*time.Second)
			So(cfg.FactorAttempts, ShouldEqual, 20)
		})

		Convey("The environment wins over the file", func() {
			t.Setenv("QBENCH_SHOTS", "128")
			t.Setenv("QBENCH_SEED", "7")

			cfg, err := LoadConfig(path)
			So(err, ShouldBeNil)
			So(cfg.Shots, ShouldEqual, 128)
			So(cfg.Seed, ShouldEqual, uint64(7))
		})

		Convey("Invalid values fail to load", func() {
			t.Setenv("QBENCH_MAX_QUBITS", "64")
			_, err := LoadConfig(path)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("A missing file is an error", t, func() {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		So(err, ShouldNotBeNil)
	})
}
