// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"

	"github.com/momentics/hioload-async/api"
)

// Conn is an in-memory connection with scripted inbound data and captured
// outbound data, satisfying the synchronous device operation surface.
type Conn struct {
	mu       sync.Mutex
	inbound  []byte
	outbound []byte
	peerAddr api.SockAddr
	accepted []*Conn
	closed   bool

	readErr  error
	writeErr error
}

// NewConn creates an open fake connection.
func NewConn() *Conn { return &Conn{} }

// Feed appends scripted inbound bytes served by Read/Recv/RecvFrom.
func (c *Conn) Feed(p []byte) {
	c.mu.Lock()
	c.inbound = append(c.inbound, p...)
	c.mu.Unlock()
}

// Outbound returns everything written or sent so far.
func (c *Conn) Outbound() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, len(c.outbound))
	copy(out, c.outbound)
	return out
}

// QueueAccept scripts the next connection Accept returns.
func (c *Conn) QueueAccept(peer *Conn) {
	c.mu.Lock()
	c.accepted = append(c.accepted, peer)
	c.mu.Unlock()
}

// SetPeerAddr scripts the address RecvFrom reports.
func (c *Conn) SetPeerAddr(addr api.SockAddr) {
	c.mu.Lock()
	c.peerAddr = addr
	c.mu.Unlock()
}

// FailReads makes every read-side operation return err.
func (c *Conn) FailReads(err error) {
	c.mu.Lock()
	c.readErr = err
	c.mu.Unlock()
}

// FailWrites makes every write-side operation return err.
func (c *Conn) FailWrites(err error) {
	c.mu.Lock()
	c.writeErr = err
	c.mu.Unlock()
}

// Read implements api.Conn.
func (c *Conn) Read(p []byte) (int, error) { return c.drain(p) }

// Recv implements api.Conn.
func (c *Conn) Recv(p []byte) (int, error) { return c.drain(p) }

// RecvFrom implements api.Conn.
func (c *Conn) RecvFrom(p []byte) (int, api.SockAddr, error) {
	n, err := c.drain(p)
	c.mu.Lock()
	addr := c.peerAddr
	c.mu.Unlock()
	return n, addr, err
}

// Write implements api.Conn.
func (c *Conn) Write(p []byte) (int, error) { return c.capture(p) }

// Send implements api.Conn.
func (c *Conn) Send(p []byte) (int, error) { return c.capture(p) }

// SendTo implements api.Conn.
func (c *Conn) SendTo(p []byte, _ api.SockAddr) (int, error) { return c.capture(p) }

// Connect implements api.Conn.
func (c *Conn) Connect(addr api.SockAddr) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return api.ErrConnClosed
	}
	c.peerAddr = addr
	return nil
}

// Accept implements api.Conn.
func (c *Conn) Accept() (api.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, api.ErrConnClosed
	}
	if len(c.accepted) == 0 {
		return nil, api.NewError(api.ErrCodeWouldBlock, "no pending connection")
	}
	peer := c.accepted[0]
	c.accepted = c.accepted[1:]
	return peer, nil
}

// Close implements api.Conn.
func (c *Conn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *Conn) drain(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, api.ErrConnClosed
	}
	if c.readErr != nil {
		return 0, c.readErr
	}
	n := copy(p, c.inbound)
	c.inbound = c.inbound[n:]
	return n, nil
}

func (c *Conn) capture(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, api.ErrConnClosed
	}
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	c.outbound = append(c.outbound, p...)
	return len(p), nil
}
