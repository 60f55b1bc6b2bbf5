package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{500 * time.Nanosecond, "500ns"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2*time.Second + 345678*time.Microsecond, "2.346s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"":                      "",
		"0":                     "0",
		"610":                   "610",
		"6765":                  "6,765",
		"832040":                "832,040",
		"354224848179261915075": "354,224,848,179,261,915,075",
		"-1234":                 "-1,234",
	}
	for in, want := range tests {
		if got := FormatNumberString(in); got != want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		keep int
		want string
	}{
		{"6765", 5, "6765"},
		{"354224848179261915075", 5, "35422...15075"},
		{"1234567890123", 5, "1234567890123"},
		{"12345678901234", 5, "12345...01234"},
		{"354224848179261915075", 0, "354224848179261915075"},
	}
	for _, tt := range tests {
		if got := TruncateDigits(tt.in, tt.keep); got != tt.want {
			t.Errorf("TruncateDigits(%q, %d) = %q, want %q", tt.in, tt.keep, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
