package transport

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// blockingListener blocks in Start until Stop is called, recording
// both calls.
type blockingListener struct {
	started atomic.Bool
	stopped atomic.Bool
	done    chan struct{}
}

func newBlockingListener() *blockingListener {
	return &blockingListener{done: make(chan struct{})}
}

func (l *blockingListener) Start(context.Context) error {
	l.started.Store(true)
	<-l.done
	return nil
}

func (l *blockingListener) Stop(context.Context) error {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.done)
	}
	return nil
}

// failingListener fails immediately on Start.
type failingListener struct {
	err error
}

func (l *failingListener) Start(context.Context) error { return l.err }
func (l *failingListener) Stop(context.Context) error  { return nil }

func TestServe_StopsListenersOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	li := newBlockingListener()

	result := make(chan error, 1)
	go func() {
		result <- Serve(ctx, li)
	}()

	// Give Start time to block, then cancel.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve() = %v, want nil or context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if !li.started.Load() {
		t.Error("listener was never started")
	}
	if !li.stopped.Load() {
		t.Error("listener was never stopped")
	}
}

func TestServe_ListenerFailureStopsOthers(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	healthy := newBlockingListener()

	err := Serve(context.Background(), &failingListener{err: boom}, healthy)
	if !errors.Is(err, boom) {
		t.Fatalf("Serve() = %v, want %v", err, boom)
	}
	if !healthy.stopped.Load() {
		t.Error("healthy listener was not stopped after sibling failure")
	}
}
