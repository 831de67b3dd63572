// Package main provides the qbench CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/theapemachine/errnie"

	"github.com/theapemachine/qbench"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qbench",
		Short: "qbench - quantum versus classical complexity benchmarks",
		Long: `qbench simulates quantum circuits on a state vector and benchmarks
five algorithms against instrumented classical baselines:

  • Shor factorization (classical order finding) vs trial division
  • Grover search vs linear search
  • Deutsch-Jozsa vs worst-case classical queries
  • Grover extremum finding vs linear scan
  • Phase estimation vs sampling`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", getEnvStr("QBENCH_CONFIG", ""), "YAML config file")
	rootCmd.PersistentFlags().Uint64("seed", getEnvUint("QBENCH_SEED", 0), "Random seed (runs are reproducible per seed)")
	rootCmd.PersistentFlags().String("out", "", "Output file (default stdout)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qbench v%s (%s)\n", version, commit)
		},
	})

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random scenario dataset",
		RunE:  runGenerate,
	}
	generateCmd.Flags().Int("composites", 5, "Number of composites to factor")
	generateCmd.Flags().Int("search-cases", 4, "Number of search scenarios")
	generateCmd.Flags().Int("function-cases", 6, "Number of function-type scenarios")
	generateCmd.Flags().Int("extremum-sets", 4, "Number of extremum data sets (each run for min and max)")
	generateCmd.Flags().Int("array-size", 8, "Extremum data set size, rounded up to a power of two")
	generateCmd.Flags().Int("phase-cases", 6, "Number of phase estimation scenarios")
	rootCmd.AddCommand(generateCmd)

	runCmd := &cobra.Command{
		Use:   "run [dataset.yaml]",
		Short: "Benchmark a dataset (a generated one when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBenchmarks,
	}
	runCmd.Flags().Int("repeat", getEnvInt("QBENCH_REPEAT", 0), "Repeats per benchmark (0 = config default)")
	runCmd.Flags().Duration("timeout", 0, "Timeout per benchmark (0 = config default)")
	runCmd.Flags().String("max-heap", getEnvStr("QBENCH_MAX_HEAP", ""), "Heap ceiling per benchmark (e.g. 512MB, 0 for unlimited)")
	runCmd.Flags().Duration("max-cpu", 0, "Cumulative CPU time ceiling per benchmark (0 for unlimited)")
	runCmd.Flags().Bool("lenient", false, "Accept a lenient all-zero share as a constant function")
	runCmd.Flags().Bool("internal", false, "Benchmark the built-in reference case suite")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*qbench.Config, uint64, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := qbench.LoadConfig(path)
	if err != nil {
		return nil, 0, err
	}

	seed := cfg.Seed
	if cmd.Flags().Changed("seed") || os.Getenv("QBENCH_SEED") != "" {
		seed, _ = cmd.Flags().GetUint64("seed")
	}

	return cfg, seed, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, seed, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := qbench.DefaultGeneratorOptions()
	opts.Composites, _ = cmd.Flags().GetInt("composites")
	opts.SearchCases, _ = cmd.Flags().GetInt("search-cases")
	opts.FunctionCases, _ = cmd.Flags().GetInt("function-cases")
	opts.ExtremumSets, _ = cmd.Flags().GetInt("extremum-sets")
	opts.ArraySize, _ = cmd.Flags().GetInt("array-size")
	opts.PhaseCases, _ = cmd.Flags().GetInt("phase-cases")

	ds := qbench.GenerateDataset(qbench.NewRand(seed), seed, opts)
	errnie.Info("generated %d scenarios with seed %d", ds.Size(), seed)

	return withOutput(cmd, ds.Encode)
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	cfg, seed, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		cfg.ConstantThreshold = qbench.LegacyConstantThreshold
	}

	var opts []qbench.BenchmarkOption

	if repeat, _ := cmd.Flags().GetInt("repeat"); repeat > 0 {
		opts = append(opts, qbench.WithRepeat(repeat))
	}

	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		opts = append(opts, qbench.WithTimeout(timeout))
	}

	maxHeap, _ := cmd.Flags().GetString("max-heap")
	maxCPU, _ := cmd.Flags().GetDuration("max-cpu")

	heap, err := parseMemorySize(maxHeap)
	if err != nil {
		return errors.Wrap(err, "--max-heap")
	}

	if heap > 0 || maxCPU > 0 {
		opts = append(opts, qbench.WithRegulator(qbench.NewResourceGovernor(uint64(heap), maxCPU)))
	}

	rng := qbench.NewRand(seed)

	internal, _ := cmd.Flags().GetBool("internal")
	if internal && len(args) == 1 {
		return errors.Wrap(qbench.ErrInvalidParameter, "--internal takes no dataset file")
	}

	var ds *qbench.Dataset
	switch {
	case internal:
		ds = qbench.InternalDataset()
		ds.Seed = seed
	case len(args) == 1:
		if ds, err = qbench.LoadDataset(args[0]); err != nil {
			return err
		}
	default:
		ds = qbench.GenerateDataset(rng, seed, qbench.DefaultGeneratorOptions())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	report, runErr := qbench.NewRunner(cfg, rng, opts...).Run(ctx, ds)

	errnie.Info("run finished in %s with %d failures", time.Since(started).Round(time.Millisecond), report.Failures)

	if err := withOutput(cmd, report.Encode); err != nil {
		return err
	}

	return runErr
}

func withOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// parseMemorySize parses sizes like "1024", "512MB" or "2GB". Empty, "0" and
// "unlimited" mean no limit; anything else unparseable is an error.
func parseMemorySize(raw string) (int64, error) {
	s := strings.TrimSpace(strings.ToUpper(raw))
	if s == "" || s == "0" || s == "UNLIMITED" {
		return 0, nil
	}

	s = strings.TrimSuffix(s, "B")

	var multiplier int64 = 1
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1 << 10
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		multiplier = 1 << 20
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "G"):
		multiplier = 1 << 30
		s = strings.TrimSuffix(s, "G")
	}

	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil || val < 0 || val > math.MaxInt64/multiplier {
		return 0, errors.Wrapf(qbench.ErrInvalidParameter, "memory size %q", raw)
	}
	return val * multiplier, nil
}

func getEnvStr(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvUint(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if u, err := strconv.ParseUint(val, 10, 64); err == nil {
			return u
		}
	}
	return defaultVal
}
