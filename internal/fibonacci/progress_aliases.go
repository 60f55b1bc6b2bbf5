package fibonacci

import "github.com/agbru/fibmemo/internal/progress"

// Calculators speak in these progress types; the concrete definitions are in
// internal/progress so the CLI can render updates without importing this
// package.
type (
	ProgressUpdate   = progress.ProgressUpdate
	ProgressCallback = progress.ProgressCallback
	ProgressSubject  = progress.ProgressSubject
)

var (
	NewProgressSubject = progress.NewProgressSubject
	NewChannelObserver = progress.NewChannelObserver
)
