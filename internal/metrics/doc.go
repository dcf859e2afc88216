// Package metrics exposes Prometheus counters for largeint evaluation, the
// HTTP server and oracle verification, plus lightweight runtime memory
// snapshots used in verification reports.
package metrics
