// Package config defines the application configuration, its command-line
// flags and the FIBMEMO_ environment overrides.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci/memory"
)

const (
	// EnvPrefix is prepended to every environment variable read by the CLI.
	EnvPrefix = "FIBMEMO_"

	// DefaultN is the index computed when -n is not given.
	DefaultN int64 = 100
	// DefaultAlgo selects the memoized recursion.
	DefaultAlgo = "memo"
	// DefaultTimeout bounds a single run.
	DefaultTimeout = 5 * time.Minute
	// DefaultMemoryLimit keeps the memo table, which grows quadratically with
	// n, within a typical workstation.
	DefaultMemoryLimit = "8G"
)

// AppConfig aggregates the parsed configuration.
type AppConfig struct {
	N           int64
	Algo        string
	Timeout     time.Duration
	ShowValue   bool
	Verbose     bool
	Details     bool
	Quiet       bool
	OutputFile  string
	MemoryLimit string
	GCMode      string
	MetricsFile string
	LogLevel    string
	Interactive bool
	NoColor     bool
}

// Validate checks the semantic consistency of the configuration.
// A negative N is not rejected here: it is the calculator's job to report
// it as an invalid argument.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: fmt.Sprintf("must be strictly positive, got %s", c.Timeout)}
	}
	for _, algo := range strings.Split(strings.ToLower(c.Algo), ",") {
		algo = strings.TrimSpace(algo)
		if algo != "all" && !slices.Contains(availableAlgos, algo) {
			return apperrors.ValidationError{Field: "algo", Message: fmt.Sprintf("unknown algorithm %q (available: all, %s; lists are comma separated)", algo, strings.Join(availableAlgos, ", "))}
		}
	}
	switch memory.GCMode(c.GCMode) {
	case "", memory.GCModeAuto, memory.GCModeAggressive, memory.GCModeDisabled:
	default:
		return apperrors.ValidationError{Field: "gc", Message: fmt.Sprintf("invalid mode %q (auto, aggressive, disabled)", c.GCMode)}
	}
	if c.MemoryLimit != "" {
		if _, err := memory.ParseMemoryLimit(c.MemoryLimit); err != nil {
			return apperrors.ValidationError{Field: "memory-limit", Message: err.Error()}
		}
	}
	if c.Quiet && c.Interactive {
		return apperrors.ValidationError{Field: "interactive", Message: "cannot be combined with --quiet"}
	}
	return nil
}

// ParseConfig parses args into an AppConfig. Priority is CLI flags, then
// FIBMEMO_ environment variables, then defaults.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var cfg AppConfig
	fs.Int64Var(&cfg.N, "n", DefaultN, "Index of the Fibonacci number to compute (must be >= 0).")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Algorithm: all, %s, or a comma separated list.", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "Display the computed value.")
	fs.BoolVar(&cfg.ShowValue, "c", false, "Shorthand for -calculate.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Display the full value instead of a truncated one.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.Details, "details", false, "Display result details and memory statistics.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for -details.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the value, for scripting.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", DefaultMemoryLimit, "Refuse runs whose estimated memory exceeds this budget (e.g. 512M, 2G).")
	fs.StringVar(&cfg.GCMode, "gc", string(memory.GCModeAuto), "GC mode during computation: auto, aggressive, disabled.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run.")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start the interactive prompt.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	// Handled before parsing by app.HasVersionFlag; declared so that the
	// flag set does not reject it.
	fs.Bool("version", false, "Print version information and exit.")
	fs.Bool("V", false, "Shorthand for -version.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	err := applyEnvOverrides(&cfg, fs)
	cfg.Algo = strings.ToLower(cfg.Algo)
	if err == nil {
		err = cfg.Validate(availableAlgos)
	}
	if err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	return cfg, nil
}
