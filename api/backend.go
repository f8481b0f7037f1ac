// File: api/backend.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reactor backend contract: the pluggable boundary between async I/O call
// sites and whatever actually performs the operations. A backend may be
// purely synchronous (performing each operation on submit and queuing its
// result) or hardware-interrupt driven; both look identical to the reactor.

package api

// RequestID identifies one submitted operation. IDs are assigned by the
// reactor, monotonically increasing, and never reused within a process.
type RequestID uint64

// OpKind tags an I/O operation request.
type OpKind uint8

const (
	OpRead OpKind = iota
	OpWrite
	OpConnect
	OpAccept
	OpSend
	OpRecv
	OpSendTo
	OpRecvFrom
)

// String returns the operation tag name.
func (k OpKind) String() string {
	switch k {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpConnect:
		return "connect"
	case OpAccept:
		return "accept"
	case OpSend:
		return "send"
	case OpRecv:
		return "recv"
	case OpSendTo:
		return "send_to"
	case OpRecvFrom:
		return "recv_from"
	}
	return "unknown"
}

// SockAddr is an opaque endpoint address carried through the reactor.
type SockAddr struct {
	Host string
	Port uint16
}

// Operation is a tagged request carrying a target resource and a buffer
// descriptor. Buf aliases caller memory for the duration of the operation.
type Operation struct {
	Kind OpKind
	Conn Conn
	Buf  []byte
	Addr SockAddr
}

// Completion is the tagged result of one operation, delivered at most once
// per request identifier.
type Completion struct {
	Kind OpKind
	// N is the byte count for data-moving operations.
	N int
	// Conn carries the accepted resource for OpAccept.
	Conn Conn
	// Addr carries the source address for OpRecvFrom.
	Addr SockAddr
	// Err is non-nil when the operation failed.
	Err *Error
}

// CompletionEntry pairs a completion with the request it answers.
type CompletionEntry struct {
	ID RequestID
	C  Completion
}

// Backend performs operations on its own schedule and reports completions
// when polled. Submit must not block; Poll drains everything currently
// available and returns immediately.
type Backend interface {
	Submit(id RequestID, op Operation)
	Poll() []CompletionEntry
}

// Conn is the synchronous, fallible device operation surface the reactor
// treats as opaque. Implementations sit outside this module (network stacks,
// loopback fakes); the runtime never programs device registers itself.
type Conn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Connect(addr SockAddr) error
	Accept() (Conn, error)
	Send(p []byte) (int, error)
	Recv(p []byte) (int, error)
	SendTo(p []byte, addr SockAddr) (int, error)
	RecvFrom(p []byte) (int, SockAddr, error)
	Close() error
}
