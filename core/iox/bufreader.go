// File: core/iox/bufreader.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package iox

import (
	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/pool"
)

// DefaultBufSize is the refill buffer size used when none is configured.
const DefaultBufSize = 4096

// BufReader is a buffered wrapper over any Reader capability. Short reads
// are served from its internal buffer; an empty buffer triggers exactly one
// refill read against the underlying reader at a time.
type BufReader struct {
	inner Reader
	pool  *pool.BytePool
	buf   []byte
	start int
	end   int

	// refill is the in-flight fill future, nil when the buffer has data
	// or no read has been started.
	refill api.Future[api.Result[int]]
}

// NewBufReader wraps inner with a DefaultBufSize buffer.
func NewBufReader(inner Reader) *BufReader {
	return NewBufReaderPool(inner, pool.NewBytePool(DefaultBufSize))
}

// NewBufReaderPool wraps inner, drawing refill buffers from p.
func NewBufReaderPool(inner Reader, p *pool.BytePool) *BufReader {
	return &BufReader{inner: inner, pool: p, buf: p.GetBuffer()}
}

// Buffered returns the number of bytes ready to serve without a read.
func (b *BufReader) Buffered() int { return b.end - b.start }

// Read returns a future resolving to the bytes copied into p. It serves
// buffered data immediately and otherwise drives one refill through the
// underlying reader.
func (b *BufReader) Read(p []byte) api.Future[api.Result[int]] {
	return api.PollFunc[api.Result[int]](func(w api.Waker) (api.Result[int], bool) {
		if len(p) == 0 {
			return api.Result[int]{Value: 0}, true
		}
		if b.Buffered() > 0 {
			n := copy(p, b.buf[b.start:b.end])
			b.start += n
			return api.Result[int]{Value: n}, true
		}
		if b.refill == nil {
			b.refill = b.inner.Read(b.buf)
		}
		res, ready := b.refill.Poll(w)
		if !ready {
			return api.Result[int]{}, false
		}
		b.refill = nil
		if res.Err != nil {
			return api.Result[int]{Err: res.Err}, true
		}
		b.start = 0
		b.end = res.Value
		if b.end == 0 {
			return api.Result[int]{Value: 0}, true
		}
		n := copy(p, b.buf[b.start:b.end])
		b.start += n
		return api.Result[int]{Value: n}, true
	})
}

// Close returns the refill buffer to its pool.
func (b *BufReader) Close() {
	if b.buf != nil {
		b.pool.PutBuffer(b.buf)
		b.buf = nil
	}
	b.start, b.end = 0, 0
}
