// Package server exposes the expression evaluator over HTTP.
//
// Endpoints:
//
//	GET /eval?expr=...  evaluate an expression, returning EvalResponse as JSON
//	GET /health         liveness probe
//	GET /metrics        Prometheus exposition
//
// Every request is evaluated in a fresh environment, so assignments do not
// persist between requests. Successful results are kept in an LRU cache
// keyed by the expression text.
package server
