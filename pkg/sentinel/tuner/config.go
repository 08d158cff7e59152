package tuner

// sequentialThreshold is the worklist size below which the snapshot
// builder hashes sequentially rather than spawning workers.
const sequentialThreshold = 64

// WorkerCount implements the builder's worker-count formula: the number
// of workers is min(worklistSize, hardware_parallelism), clamped to at
// least 1. If override is positive, it takes precedence over
// resources.CPUCores (still clamped by worklistSize).
func WorkerCount(resources SystemResources, worklistSize, override int) int {
	parallelism := resources.CPUCores
	if override > 0 {
		parallelism = override
	}
	if parallelism < 1 {
		parallelism = 1
	}

	workers := min(worklistSize, parallelism)
	if workers < 1 {
		workers = 1
	}
	return workers
}

// ShouldParallelize reports whether the snapshot builder should spawn
// the worker pool at all, rather than hashing the worklist sequentially
// on the calling goroutine.
func ShouldParallelize(worklistSize, workers int) bool {
	return worklistSize >= sequentialThreshold && workers > 1
}
