package util

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
	}

	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// Give a stray second invocation a chance to appear.
	time.Sleep(50 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call after burst, got %d", got)
	}
}

func TestDebouncerKeepsLatestCall(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var got atomic.Int32

	d.Trigger(func() { got.Store(1) })
	d.Trigger(func() { got.Store(2) })
	d.Flush()

	if got.Load() != 2 {
		t.Fatalf("expected latest call to win, got %d", got.Load())
	}
}

func TestDebouncerZeroDelayRunsSynchronously(t *testing.T) {
	d := NewDebouncer(0)
	ran := false
	d.Trigger(func() { ran = true })
	if !ran {
		t.Fatalf("expected synchronous call with zero delay")
	}
}

func TestDebouncerStopDiscardsPendingCall(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no calls after Stop, got %d", got)
	}
}

func TestDebouncerFlushWithoutPendingIsNoOp(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	d.Flush()
}
