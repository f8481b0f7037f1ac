// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

package pool

// BytePool recycles fixed-size byte buffers.
type BytePool struct {
	inner *SyncPool[[]byte]
	size  int
}

// NewBytePool creates a pool of buffers of the given size.
func NewBytePool(size int) *BytePool {
	return &BytePool{
		inner: NewSyncPool(func() []byte { return make([]byte, size) }),
		size:  size,
	}
}

// Size returns the buffer size this pool hands out.
func (b *BytePool) Size() int { return b.size }

// GetBuffer returns a buffer from the pool.
func (b *BytePool) GetBuffer() []byte {
	return b.inner.Get()
}

// PutBuffer returns a buffer to the pool. Foreign-sized buffers are
// dropped for the GC instead of poisoning the pool.
func (b *BytePool) PutBuffer(buf []byte) {
	if len(buf) != b.size {
		return
	}
	b.inner.Put(buf)
}
