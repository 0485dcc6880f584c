package execctx

import (
	"testing"

	"routined/internal/cancel"
	"routined/internal/emitter"
	"routined/pkg/types"
)

func TestTakeStateOnce(t *testing.T) {
	c := New(Seed[string]{State: 42})
	got, err := TakeState[int](c)
	if err != nil {
		t.Fatalf("first take: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if _, err := TakeState[int](c); !IsStateTaken(err) {
		t.Fatalf("second take: %v", err)
	}
}

func TestTakeStateMissing(t *testing.T) {
	c := New(Seed[string]{})
	if _, err := TakeState[int](c); !IsStateMissing(err) {
		t.Fatalf("take without state: %v", err)
	}
}

func TestTakeStateTypeMismatchDoesNotConsume(t *testing.T) {
	c := New(Seed[string]{State: "hello"})
	if _, err := TakeState[int](c); !IsStateType(err) {
		t.Fatalf("mismatched take: %v", err)
	}
	// Correctly typed take still works.
	s, err := TakeState[string](c)
	if err != nil {
		t.Fatalf("typed take after mismatch: %v", err)
	}
	if s != "hello" {
		t.Fatalf("got %q", s)
	}
}

func TestDevicesAreCopied(t *testing.T) {
	devs := []types.Device{{Kind: "cuda", Index: 0}, {Kind: "cuda", Index: 1}}
	c := New(Seed[string]{Devices: devs})
	got := c.Devices()
	got[0].Index = 99
	if c.Devices()[0].Index != 0 {
		t.Fatalf("caller mutation leaked into context")
	}
	if len(got) != 2 {
		t.Fatalf("device list truncated: %v", got)
	}
}

func TestCancelTokenIsShared(t *testing.T) {
	tok := cancel.New()
	c := New(Seed[string]{Cancel: tok})
	clone := c.CancelToken()
	tok.Cancel()
	if !clone.IsCancelled() {
		t.Fatalf("context clone misses cancellation")
	}
}

func TestEmitterHandle(t *testing.T) {
	col := emitter.NewCollector[string]()
	c := New(Seed[string]{Emitter: col})
	c.Emitter().Emit("x")
	if got := col.Drain(); len(got) != 1 || got[0] != "x" {
		t.Fatalf("emitted items: %v", got)
	}
}
