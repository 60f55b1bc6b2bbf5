// Package format holds the text formatting helpers shared by the CLI and the
// interactive prompt: durations, ETAs, progress bars and digit grouping.
package format
