// Package orchestration runs one or more Fibonacci calculators concurrently
// and compares their results. Presentation is delegated through the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
