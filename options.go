package qbench

import "time"

// BenchmarkOption configures a single Benchmark call.
type BenchmarkOption func(*benchmarkSettings)

type benchmarkSettings struct {
	repeat    int
	timeout   time.Duration
	regulator Regulator
}

func newBenchmarkSettings(cfg *Config, opts []BenchmarkOption) *benchmarkSettings {
	s := &benchmarkSettings{repeat: cfg.Repeat, timeout: cfg.Timeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithRepeat overrides Config.Repeat.
func WithRepeat(n int) BenchmarkOption {
	return func(s *benchmarkSettings) {
		s.repeat = n
	}
}

// WithTimeout bounds the whole benchmark, all repeats included. Zero disables it.
func WithTimeout(d time.Duration) BenchmarkOption {
	return func(s *benchmarkSettings) {
		s.timeout = d
	}
}

func WithRegulator(r Regulator) BenchmarkOption {
	return func(s *benchmarkSettings) {
		s.regulator = r
	}
}
