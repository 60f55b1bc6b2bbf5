package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fibmemo/internal/errors"
)

// envBinding ties FIBMEMO_<key> to the flags it stands in for. The variable
// is consulted only when none of those flags was given on the command line.
type envBinding struct {
	key   string
	flags []string
	apply func(cfg *AppConfig, raw string) error
}

// bind returns an apply function that parses raw and stores it in the field
// selected by field.
func bind[T any](parse func(string) (T, error), field func(*AppConfig) *T) func(*AppConfig, string) error {
	return func(cfg *AppConfig, raw string) error {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	}
}

func parseString(s string) (string, error) { return s, nil }

func parseInt64(s string) (int64, error) { return strconv.ParseInt(strings.TrimSpace(s), 10, 64) }

// parseBool accepts true/1/yes and false/0/no in any case.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}

var envBindings = []envBinding{
	{"N", []string{"n"}, bind(parseInt64, func(c *AppConfig) *int64 { return &c.N })},
	{"ALGO", []string{"algo"}, bind(parseString, func(c *AppConfig) *string { return &c.Algo })},
	{"TIMEOUT", []string{"timeout"}, bind(time.ParseDuration, func(c *AppConfig) *time.Duration { return &c.Timeout })},
	{"OUTPUT", []string{"output", "o"}, bind(parseString, func(c *AppConfig) *string { return &c.OutputFile })},
	{"MEMORY_LIMIT", []string{"memory-limit"}, bind(parseString, func(c *AppConfig) *string { return &c.MemoryLimit })},
	{"GC", []string{"gc"}, bind(parseString, func(c *AppConfig) *string { return &c.GCMode })},
	{"METRICS_FILE", []string{"metrics-file"}, bind(parseString, func(c *AppConfig) *string { return &c.MetricsFile })},
	{"LOG_LEVEL", []string{"log-level"}, bind(parseString, func(c *AppConfig) *string { return &c.LogLevel })},
	{"CALCULATE", []string{"calculate", "c"}, bind(parseBool, func(c *AppConfig) *bool { return &c.ShowValue })},
	{"VERBOSE", []string{"verbose", "v"}, bind(parseBool, func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"details", "d"}, bind(parseBool, func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, bind(parseBool, func(c *AppConfig) *bool { return &c.Quiet })},
	{"INTERACTIVE", []string{"interactive"}, bind(parseBool, func(c *AppConfig) *bool { return &c.Interactive })},
	{"NO_COLOR", []string{"no-color"}, bind(parseBool, func(c *AppConfig) *bool { return &c.NoColor })},
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyEnvOverrides fills cfg from FIBMEMO_* variables for every setting
// not given as a flag, so the precedence is flags, then environment, then
// defaults. Empty variables are ignored; unparsable ones are a
// ValidationError naming the variable.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) error {
	set := setFlags(fs)
	for _, b := range envBindings {
		if anySet(set, b.flags) {
			continue
		}
		name := EnvPrefix + b.key
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := b.apply(cfg, raw); err != nil {
			return apperrors.ValidationError{Field: name, Message: err.Error()}
		}
	}
	return nil
}

func anySet(set map[string]bool, names []string) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}
