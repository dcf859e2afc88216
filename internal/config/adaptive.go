package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (LARGEINT_WORKERS)
//   3. TOML config file (workers = N)
//   4. Adaptive hardware estimation (this file)

// ApplyAdaptiveDefaults fills in settings left at zero with values derived
// from the hardware. User-specified values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers provides a heuristic worker count for verification.
// The bit-serial arithmetic is CPU bound, so one worker per core is the
// ceiling; very large machines are capped to keep the progress channel and
// scheduler overhead reasonable.
func EstimateOptimalWorkers() int {
	return workersFor(runtime.NumCPU())
}

func workersFor(numCPU int) int {
	switch {
	case numCPU <= 1:
		return 1
	case numCPU <= 4:
		return numCPU
	case numCPU <= 16:
		return numCPU - 1 // Leave a core for the progress display
	default:
		return 16
	}
}
