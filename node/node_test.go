package node

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Topic != "t-chain-test-net" {
		t.Errorf("unexpected default topic %q", cfg.Topic)
	}
	if cfg.MineInterval != 10*time.Second {
		t.Errorf("unexpected default mine interval %v", cfg.MineInterval)
	}
	if len(cfg.Transport.ListenAddrs) != 2 {
		t.Errorf("expected a stream and a datagram listener, got %v", cfg.Transport.ListenAddrs)
	}
}

func TestReadLines(t *testing.T) {
	ctx := context.Background()
	lines := readLines(ctx, strings.NewReader("one\ntwo\n"))

	if got := <-lines; got != "one" {
		t.Errorf("Expected %q, got %q", "one", got)
	}
	if got := <-lines; got != "two" {
		t.Errorf("Expected %q, got %q", "two", got)
	}

	// EOF closes the channel.
	select {
	case _, ok := <-lines:
		if ok {
			t.Error("expected closed channel after EOF")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after EOF")
	}
}

func TestReadLinesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines := readLines(ctx, strings.NewReader("one\ntwo\nthree\n"))

	if got := <-lines; got != "one" {
		t.Errorf("Expected %q, got %q", "one", got)
	}
	cancel()

	// Lines already in flight may still be delivered; the channel must
	// close shortly after cancellation is observed.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancellation")
		}
	}
}
