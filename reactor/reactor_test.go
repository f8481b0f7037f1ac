// File: reactor/reactor_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/core/sched"
	"github.com/momentics/hioload-async/fake"
	"github.com/momentics/hioload-async/reactor"
)

func TestSubmitAssignsIncreasingIDs(t *testing.T) {
	be := fake.NewBackend()
	r := reactor.New(be)

	f1 := r.SubmitOperation(api.Operation{Kind: api.OpRead})
	f2 := r.SubmitOperation(api.Operation{Kind: api.OpWrite})
	if f2.ID() <= f1.ID() {
		t.Fatalf("ids not increasing: %d then %d", f1.ID(), f2.ID())
	}
	if got := be.Submitted(); len(got) != 2 {
		t.Fatalf("backend saw %d submissions, want 2", len(got))
	}
}

func TestCompletionResolvesFuture(t *testing.T) {
	be := fake.NewBackend()
	r := reactor.New(be)
	f := r.SubmitOperation(api.Operation{Kind: api.OpRead})

	woken := false
	w := sched.NewSimpleWaker(func() { woken = true })
	if _, ready := f.Poll(w); ready {
		t.Fatal("future ready before completion")
	}

	be.Complete(f.ID(), api.Completion{Kind: api.OpRead, N: 16})
	r.Poll()
	if !woken {
		t.Fatal("completion did not wake the future")
	}
	res, ready := f.Poll(w)
	if !ready {
		t.Fatal("future pending after completion delivered")
	}
	c, err := res.Get()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if c.N != 16 {
		t.Fatalf("completion N = %d, want 16", c.N)
	}
	if r.PendingOperations() != 0 {
		t.Fatalf("pending = %d after resolve, want 0", r.PendingOperations())
	}
}

func TestFailedOperationSurfacesError(t *testing.T) {
	be := fake.NewBackend()
	r := reactor.New(be)
	f := r.SubmitOperation(api.Operation{Kind: api.OpWrite})

	be.Complete(f.ID(), api.Completion{
		Kind: api.OpWrite,
		Err:  api.NewError(api.ErrCodeInternal, "short write"),
	})
	r.Poll()

	res, ready := f.Poll(sched.DummyWaker())
	if !ready {
		t.Fatal("failed operation did not resolve")
	}
	if res.Err == nil {
		t.Fatal("failed operation resolved without error")
	}
}

// A cancelled future never resolves, and its table entry is reclaimed on
// the next reactor poll.
func TestCancelReclaimsPendingEntry(t *testing.T) {
	be := fake.NewBackend()
	r := reactor.New(be)
	f := r.SubmitOperation(api.Operation{Kind: api.OpRecv})

	f.Cancel()
	if r.PendingOperations() != 1 {
		t.Fatalf("pending = %d before sweep, want 1", r.PendingOperations())
	}
	r.Poll()
	if r.PendingOperations() != 0 {
		t.Fatalf("pending = %d after sweep, want 0", r.PendingOperations())
	}

	res, ready := f.Poll(sched.DummyWaker())
	if !ready {
		t.Fatal("cancelled future did not resolve")
	}
	if !errors.Is(res.Err, api.ErrTaskAbandoned) {
		t.Fatalf("Err = %v, want ErrTaskAbandoned", res.Err)
	}
}

// A completion arriving for an already-cancelled operation is dropped
// without disturbing later submissions.
func TestLateCompletionAfterCancelIgnored(t *testing.T) {
	be := fake.NewBackend()
	r := reactor.New(be)
	f := r.SubmitOperation(api.Operation{Kind: api.OpRead})
	f.Cancel()
	be.Complete(f.ID(), api.Completion{Kind: api.OpRead, N: 4})
	r.Poll()

	f2 := r.SubmitOperation(api.Operation{Kind: api.OpRead})
	be.Complete(f2.ID(), api.Completion{Kind: api.OpRead, N: 8})
	r.Poll()
	res, ready := f2.Poll(sched.DummyWaker())
	if !ready {
		t.Fatal("later submission blocked by cancelled predecessor")
	}
	if c, _ := res.Get(); c.N != 8 {
		t.Fatalf("completion N = %d, want 8", c.N)
	}
}

// staleBackend emits a completion for an identifier nobody submitted.
type staleBackend struct{}

func (staleBackend) Submit(api.RequestID, api.Operation) {}

func (staleBackend) Poll() []api.CompletionEntry {
	return []api.CompletionEntry{{ID: 999, C: api.Completion{Kind: api.OpRead, N: 1}}}
}

func TestUnknownCompletionIgnored(t *testing.T) {
	r := reactor.New(staleBackend{})
	r.Poll()
	if r.PendingOperations() != 0 {
		t.Fatalf("pending = %d, want 0", r.PendingOperations())
	}
}

func TestSyncBackendRead(t *testing.T) {
	be := reactor.NewSyncBackend()
	r := reactor.New(be)
	conn := fake.NewConn()
	conn.Feed([]byte("payload"))

	buf := make([]byte, 16)
	f := r.SubmitOperation(api.Operation{Kind: api.OpRead, Conn: conn, Buf: buf})
	r.Poll()

	res, ready := f.Poll(sched.DummyWaker())
	if !ready {
		t.Fatal("sync backend read did not complete in one poll")
	}
	c, err := res.Get()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if !bytes.Equal(buf[:c.N], []byte("payload")) {
		t.Fatalf("read %q, want %q", buf[:c.N], "payload")
	}
}

func TestSyncBackendWriteError(t *testing.T) {
	be := reactor.NewSyncBackend()
	r := reactor.New(be)
	conn := fake.NewConn()
	conn.FailWrites(errors.New("wire down"))

	f := r.SubmitOperation(api.Operation{Kind: api.OpWrite, Conn: conn, Buf: []byte("x")})
	r.Poll()

	res, ready := f.Poll(sched.DummyWaker())
	if !ready {
		t.Fatal("failing write did not complete")
	}
	if res.Err == nil {
		t.Fatal("failing write resolved without error")
	}
}
