// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.
//
// Per-CPU executors pin their hosting thread through this package so that
// core-local tasks stay core-local.

package affinity

// SetAffinity pins current OS thread to a given logical CPU/core on supported platforms.
// On unsupported platforms returns an error. Callers should hold
// runtime.LockOSThread for the pin to remain meaningful.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}
