// Package tui implements the --interactive prompt: the user types an index,
// enter computes F(n) with the selected calculator and the prompt keeps a
// short history of results.
package tui
