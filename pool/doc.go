// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pool provides small object and byte-buffer pools used by the
// buffered I/O layer to avoid per-refill allocations.
package pool
