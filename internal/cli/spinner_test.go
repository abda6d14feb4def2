package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), "Scanning Python sources...")
	time.Sleep(100 * time.Millisecond)

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	s := newSpinner(context.Background(), "Scanning Python sources...")
	s.SetMessage("Building import graph...")
	s.SetMessage("Rendering diagram...")
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerStopReturnsAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, "Scanning Python sources...")
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return after the context was cancelled")
	}
}
