package main

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestOracleKnownValues(t *testing.T) {
	t.Parallel()
	known := map[int64]string{
		0:   "0",
		1:   "1",
		2:   "1",
		10:  "55",
		15:  "610",
		20:  "6765",
		50:  "12586269025",
		92:  "7540113804746346429",
		93:  "12200160415121876738",
		100: "354224848179261915075",
	}
	for n, want := range known {
		if got := fibBig(n).String(); got != want {
			t.Errorf("fibBig(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestOracleRecurrence(t *testing.T) {
	t.Parallel()
	a, b := fibBig(0), fibBig(1)
	for n := int64(2); n <= 120; n++ {
		want := new(big.Int).Add(a, b)
		got := fibBig(n)
		if got.Cmp(want) != 0 {
			t.Fatalf("F(%d) = %s, want F(%d)+F(%d) = %s", n, got, n-1, n-2, want)
		}
		a, b = b, got
	}
}

func TestBuildCoversIndicesInOrder(t *testing.T) {
	t.Parallel()
	g := build()
	if len(g.Entries) != len(goldenIndices) {
		t.Fatalf("got %d entries, want %d", len(g.Entries), len(goldenIndices))
	}
	for i, e := range g.Entries {
		if e.N != goldenIndices[i] {
			t.Errorf("entry %d: n = %d, want %d", i, e.N, goldenIndices[i])
		}
		if e.Value != fibBig(e.N).String() {
			t.Errorf("entry %d: value does not match the oracle", i)
		}
	}
}

func TestBuildRoundTripsAsJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(build())
	if err != nil {
		t.Fatal(err)
	}
	var decoded goldenFile
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	last := decoded.Entries[len(decoded.Entries)-1]
	if last.N != 2000 || len(last.Value) != 418 {
		t.Errorf("last entry = F(%d) with %d digits, want F(2000) with 418 digits", last.N, len(last.Value))
	}
}
