// File: core/iox/iox.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Capability-composition async I/O. Reading, writing and buffering are
// separate capabilities; wrappers hold any object satisfying a capability
// and forward or intercept calls. No inheritance, no deep hierarchies.

package iox

import (
	"github.com/momentics/hioload-async/api"
)

// Reader is the readable capability: each call starts one read of up to
// len(p) bytes into p and returns a future resolving to the byte count.
type Reader interface {
	Read(p []byte) api.Future[api.Result[int]]
}

// Writer is the writable capability.
type Writer interface {
	Write(p []byte) api.Future[api.Result[int]]
}

// ReadWriter combines both capabilities.
type ReadWriter interface {
	Reader
	Writer
}
