// Package logging provides the structured logging interface shared by the
// largeint engine, the calculator front-ends and the HTTP server. zerolog is
// the default backend; a standard library adapter exists for callers that
// already own a *log.Logger.
package logging
