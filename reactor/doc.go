// File: reactor/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package reactor brokers async I/O: call sites submit tagged operations
// and receive single-resolution futures; a pluggable backend performs the
// operations on its own schedule and the reactor routes each completion to
// the slot keyed by its request identifier. The reactor holds pending slots
// loosely: a future cancelled before completion is swept from the pending
// table on the next poll instead of leaking.
package reactor
