package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeExpirer struct {
	sweeps  atomic.Int64
	expired int64
}

func (f *fakeExpirer) ExpireOverdue(_ context.Context, _ time.Time) (int64, error) {
	f.sweeps.Add(1)
	return f.expired, nil
}

func TestExpiryWorkerSweepsOnInterval(t *testing.T) {
	expirer := &fakeExpirer{expired: 2}
	w := NewExpiryWorker(expirer, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for expirer.sweeps.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d sweeps before deadline", expirer.sweeps.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestExpiryWorkerSweepsImmediatelyOnStart(t *testing.T) {
	expirer := &fakeExpirer{}
	w := NewExpiryWorker(expirer, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for expirer.sweeps.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no startup sweep before deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	if got := expirer.sweeps.Load(); got != 1 {
		t.Errorf("sweeps = %d, want exactly the startup sweep", got)
	}
}
