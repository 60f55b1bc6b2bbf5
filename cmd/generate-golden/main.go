// Command generate-golden writes the reference values used by the fibonacci
// golden tests. It uses its own naive loop so that the golden file does not
// depend on the code under test.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/agbru/fibmemo/internal/logging"
)

type goldenEntry struct {
	N     int64  `json:"n"`
	Value string `json:"value"`
}

type goldenFile struct {
	Description string        `json:"description"`
	Entries     []goldenEntry `json:"entries"`
}

// goldenIndices covers the base cases, 0 through 30, the uint64 boundary
// and a few multi-hundred-digit values.
var goldenIndices = func() []int64 {
	idx := make([]int64, 0, 40)
	for n := int64(0); n <= 30; n++ {
		idx = append(idx, n)
	}
	return append(idx, 50, 92, 93, 94, 100, 200, 500, 1000, 2000)
}()

// fibBig is the oracle: a plain loop on big.Int.
func fibBig(n int64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := int64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func build() goldenFile {
	g := goldenFile{Description: "Reference Fibonacci values generated by cmd/generate-golden"}
	for _, n := range goldenIndices {
		g.Entries = append(g.Entries, goldenEntry{N: n, Value: fibBig(n).String()})
	}
	return g
}

func main() {
	out := flag.String("out", filepath.Join("internal", "fibonacci", "testdata", "fibonacci_golden.json"), "output path")
	flag.Parse()

	logger := logging.NewStdLoggerAdapter(log.New(os.Stderr, "generate-golden: ", 0))

	data, err := json.MarshalIndent(build(), "", "  ")
	if err != nil {
		logger.Error("marshal failed", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		logger.Error("creating output directory failed", err, logging.String("path", *out))
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		logger.Error("writing golden file failed", err, logging.String("path", *out))
		os.Exit(1)
	}
	logger.Info("golden file written", logging.Int("entries", len(goldenIndices)), logging.String("path", *out))
}
