// Package logging provides the logging interface shared by fibmemo components.
// The default backend is zerolog; a stdlib log adapter exists for callers that
// already own a *log.Logger.
package logging
