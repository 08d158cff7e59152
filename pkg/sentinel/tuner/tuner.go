// Package tuner detects host resources and sizes the snapshot builder's
// hashing worker pool accordingly.
package tuner

// SystemResources contains detected system resources.
type SystemResources struct {
	// CPUCores is the number of logical CPU cores available, used as
	// the hardware_parallelism figure in the worker-count formula.
	CPUCores int

	// TotalRAM is the total physical RAM in bytes, surfaced for doctor
	// health checks.
	TotalRAM int64

	// AvailableRAM is the available (free) RAM in bytes. May be an
	// estimate based on system heuristics.
	AvailableRAM int64
}
