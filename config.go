package qbench

import (
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LegacyConstantThreshold is the lenient all-zero share accepted as "constant"
// when results come from a noisy backend.
const LegacyConstantThreshold = 0.88

const (
	defaultEpsilon   = 1e-9
	defaultTolerance = 1e-9
)

// Config bounds every simulation and benchmark run.
type Config struct {
	// MaxQubits is the register ceiling. A register holds 2^n complex128 values.
	MaxQubits int `yaml:"max_qubits"`
	// Shots is the number of measurement samples drawn per circuit.
	Shots int `yaml:"shots"`
	// Tolerance is the normalization tolerance for amplitude vectors.
	Tolerance float64 `yaml:"tolerance"`
	// ConstantThreshold is the all-zero share required to call a function constant.
	ConstantThreshold float64 `yaml:"constant_threshold"`
	// FactorAttempts bounds the number of bases tried by the factorization.
	FactorAttempts int `yaml:"factor_attempts"`
	// Repeat is the default number of harness repeats.
	Repeat int `yaml:"repeat"`
	// MaxRepeat caps any requested repeat count.
	MaxRepeat int `yaml:"max_repeat"`
	// Timeout bounds a single benchmark, all repeats included.
	Timeout time.Duration `yaml:"timeout"`
	// Epsilon guards the speedup ratio against near-instant runs, in seconds.
	Epsilon float64 `yaml:"epsilon"`
	// ClassicalSamples is the sample count of the sampling phase baseline.
	ClassicalSamples int `yaml:"classical_samples"`
	// Seed feeds the explicit random source.
	Seed uint64 `yaml:"seed"`
}

func NewConfig() *Config {
	return &Config{
		MaxQubits:         16,
		Shots:             1024,
		Tolerance:         defaultTolerance,
		ConstantThreshold: 1.0,
		FactorAttempts:    20,
		Repeat:            3,
		MaxRepeat:         100,
		Timeout:           30 * time.Second,
		Epsilon:           defaultEpsilon,
		ClassicalSamples:  100,
	}
}

/*
LoadConfig reads a yaml config file on top of the defaults, then applies
QBENCH_* environment overrides. An empty path only applies the environment.
*/
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}

		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := envInt("QBENCH_MAX_QUBITS"); ok {
		c.MaxQubits = v
	}
	if v, ok := envInt("QBENCH_SHOTS"); ok {
		c.Shots = v
	}
	if v, ok := envInt("QBENCH_FACTOR_ATTEMPTS"); ok {
		c.FactorAttempts = v
	}
	if v, ok := envInt("QBENCH_REPEAT"); ok {
		c.Repeat = v
	}
	if v := os.Getenv("QBENCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("QBENCH_CONSTANT_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ConstantThreshold = f
		}
	}
	if v := os.Getenv("QBENCH_SEED"); v != "" {
		if s, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = s
		}
	}
}

// Validate rejects configurations no run could satisfy.
func (c *Config) Validate() error {
	switch {
	case c.MaxQubits < 1 || c.MaxQubits > 30:
		return errors.Errorf("max_qubits must be within [1, 30], got %d", c.MaxQubits)
	case c.Shots < 1:
		return errors.Errorf("shots must be positive, got %d", c.Shots)
	case c.Tolerance <= 0:
		return errors.Errorf("tolerance must be positive, got %g", c.Tolerance)
	case c.ConstantThreshold <= 0 || c.ConstantThreshold > 1:
		return errors.Errorf("constant_threshold must be within (0, 1], got %g", c.ConstantThreshold)
	case c.FactorAttempts < 1:
		return errors.Errorf("factor_attempts must be positive, got %d", c.FactorAttempts)
	case c.Repeat < 1 || c.MaxRepeat < 1:
		return errors.Errorf("repeat and max_repeat must be positive")
	case c.ClassicalSamples < 1:
		return errors.Errorf("classical_samples must be positive, got %d", c.ClassicalSamples)
	case c.Epsilon <= 0 || math.IsNaN(c.Epsilon):
		return errors.Errorf("epsilon must be positive, got %g", c.Epsilon)
	case c.Timeout < 0:
		return errors.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	return nil
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}

	return i, true
}
