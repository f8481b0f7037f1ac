// File: pool/bytepool_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"testing"

	"github.com/momentics/hioload-async/pool"
)

func TestBytePoolBufferSize(t *testing.T) {
	p := pool.NewBytePool(128)
	buf := p.GetBuffer()
	if len(buf) != 128 {
		t.Fatalf("buffer length = %d, want 128", len(buf))
	}
	p.PutBuffer(buf)
	again := p.GetBuffer()
	if len(again) != 128 {
		t.Fatalf("recycled buffer length = %d, want 128", len(again))
	}
}

func TestBytePoolRejectsForeignSizes(t *testing.T) {
	p := pool.NewBytePool(64)
	p.PutBuffer(make([]byte, 16))
	buf := p.GetBuffer()
	if len(buf) != 64 {
		t.Fatalf("pool handed out foreign-sized buffer of length %d", len(buf))
	}
}

func TestSyncPoolRoundTrip(t *testing.T) {
	p := pool.NewSyncPool(func() *int { v := 7; return &v })
	v := p.Get()
	if *v != 7 {
		t.Fatalf("constructor value = %d, want 7", *v)
	}
	p.Put(v)
	if got := p.Get(); *got != 7 {
		t.Fatalf("recycled value = %d, want 7", *got)
	}
}
