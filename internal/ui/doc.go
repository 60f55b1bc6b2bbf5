// Package ui holds the color themes shared by the CLI output and the
// interactive prompt. NO_COLOR and --no-color switch every color off.
package ui
