// File: core/iox/iox_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package iox_test

import (
	"bytes"
	"testing"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/core/iox"
	"github.com/momentics/hioload-async/core/sched"
	"github.com/momentics/hioload-async/fake"
	"github.com/momentics/hioload-async/pool"
	"github.com/momentics/hioload-async/reactor"
)

// blockOnIO drives fut while pumping the reactor in the idle path.
func blockOnIO[T any](r *reactor.Reactor, fut api.Future[T]) T {
	e := sched.New(sched.Config{OnIdle: r.Poll})
	return sched.BlockOn(e, fut)
}

func TestAsyncConnReadWrite(t *testing.T) {
	r := reactor.New(reactor.NewSyncBackend())
	conn := fake.NewConn()
	conn.Feed([]byte("hello"))
	ac := iox.NewAsyncConn(r, conn)

	buf := make([]byte, 8)
	res := blockOnIO(r, ac.Read(buf))
	n, err := res.Get()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(buf[:n], []byte("hello")) {
		t.Fatalf("read %q, want %q", buf[:n], "hello")
	}

	res = blockOnIO(r, ac.Write([]byte("world")))
	if n, err := res.Get(); err != nil || n != 5 {
		t.Fatalf("write = (%d, %v), want (5, nil)", n, err)
	}
	if !bytes.Equal(conn.Outbound(), []byte("world")) {
		t.Fatalf("outbound = %q, want %q", conn.Outbound(), "world")
	}
}

func TestAsyncConnRecvFrom(t *testing.T) {
	r := reactor.New(reactor.NewSyncBackend())
	conn := fake.NewConn()
	conn.SetPeerAddr(api.SockAddr{Host: "10.0.0.7", Port: 9000})
	conn.Feed([]byte("dgram"))
	ac := iox.NewAsyncConn(r, conn)

	buf := make([]byte, 16)
	res := blockOnIO(r, ac.RecvFrom(buf))
	out, err := res.Get()
	if err != nil {
		t.Fatalf("recvfrom: %v", err)
	}
	if out.N != 5 {
		t.Fatalf("N = %d, want 5", out.N)
	}
	if out.Addr.Host != "10.0.0.7" || out.Addr.Port != 9000 {
		t.Fatalf("Addr = %v, want 10.0.0.7:9000", out.Addr)
	}
}

func TestAsyncConnConnect(t *testing.T) {
	r := reactor.New(reactor.NewSyncBackend())
	conn := fake.NewConn()
	ac := iox.NewAsyncConn(r, conn)

	res := blockOnIO(r, ac.Connect(api.SockAddr{Host: "example.com", Port: 80}))
	if _, err := res.Get(); err != nil {
		t.Fatalf("connect: %v", err)
	}
}

func TestAsyncConnAccept(t *testing.T) {
	r := reactor.New(reactor.NewSyncBackend())
	listener := fake.NewConn()
	peer := fake.NewConn()
	peer.Feed([]byte("hi"))
	listener.QueueAccept(peer)
	ac := iox.NewAsyncConn(r, listener)

	res := blockOnIO(r, ac.Accept())
	accepted, err := res.Get()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	buf := make([]byte, 4)
	rres := blockOnIO(r, accepted.Read(buf))
	n, err := rres.Get()
	if err != nil {
		t.Fatalf("read on accepted conn: %v", err)
	}
	if !bytes.Equal(buf[:n], []byte("hi")) {
		t.Fatalf("read %q on accepted conn, want %q", buf[:n], "hi")
	}
}

func TestBufReaderServesFromBuffer(t *testing.T) {
	r := reactor.New(reactor.NewSyncBackend())
	conn := fake.NewConn()
	conn.Feed([]byte("abcdef"))
	br := iox.NewBufReader(iox.NewAsyncConn(r, conn))
	defer br.Close()

	small := make([]byte, 2)
	res := blockOnIO(r, br.Read(small))
	if n, err := res.Get(); err != nil || n != 2 {
		t.Fatalf("first read = (%d, %v), want (2, nil)", n, err)
	}
	if !bytes.Equal(small, []byte("ab")) {
		t.Fatalf("first read %q, want %q", small, "ab")
	}
	if br.Buffered() != 4 {
		t.Fatalf("Buffered = %d, want 4", br.Buffered())
	}

	// The rest must come from the buffer without touching the conn.
	res = blockOnIO(r, br.Read(small))
	if n, _ := res.Get(); n != 2 || !bytes.Equal(small, []byte("cd")) {
		t.Fatalf("second read = (%d, %q), want (2, %q)", n, small, "cd")
	}
}

func TestBufReaderEmptySource(t *testing.T) {
	r := reactor.New(reactor.NewSyncBackend())
	conn := fake.NewConn()
	br := iox.NewBufReader(iox.NewAsyncConn(r, conn))
	defer br.Close()

	res := blockOnIO(r, br.Read(make([]byte, 4)))
	if n, err := res.Get(); err != nil || n != 0 {
		t.Fatalf("read on empty source = (%d, %v), want (0, nil)", n, err)
	}
}

func TestBufReaderPooledBufferReuse(t *testing.T) {
	p := pool.NewBytePool(64)
	r := reactor.New(reactor.NewSyncBackend())
	conn := fake.NewConn()
	conn.Feed([]byte("x"))
	br := iox.NewBufReaderPool(iox.NewAsyncConn(r, conn), p)

	res := blockOnIO(r, br.Read(make([]byte, 1)))
	if n, err := res.Get(); err != nil || n != 1 {
		t.Fatalf("read = (%d, %v), want (1, nil)", n, err)
	}
	br.Close()

	buf := p.GetBuffer()
	if len(buf) != 64 {
		t.Fatalf("pooled buffer length = %d, want 64", len(buf))
	}
}
