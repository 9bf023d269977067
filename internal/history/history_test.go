package history

import (
	"testing"

	"vnime/internal/buffer"
	"vnime/internal/keys"
)

func entry(key uint16) Entry {
	var e Entry
	e.Buffer.Push(buffer.NewChar(key, false))
	e.Raw.Push(key, false)
	return e
}

func TestPushPopOrder(t *testing.T) {
	var r Ring
	r.Push(entry(keys.A))
	r.Push(entry(keys.B))
	e, ok := r.Pop()
	if !ok || e.Buffer.Render() != "b" {
		t.Fatalf("expected b, got %q", e.Buffer.Render())
	}
	e, _ = r.Pop()
	if e.Raw.String() != "a" {
		t.Fatalf("expected a, got %q", e.Raw.String())
	}
	if _, ok := r.Pop(); ok {
		t.Fatalf("expected empty ring")
	}
}

func TestOverwritesOldest(t *testing.T) {
	var r Ring
	r.Push(entry(keys.Z))
	for i := 0; i < Capacity; i++ {
		r.Push(entry(keys.X))
	}
	if r.Len() != Capacity {
		t.Fatalf("expected %d entries, got %d", Capacity, r.Len())
	}
	for i := 0; i < Capacity; i++ {
		e, _ := r.Pop()
		if e.Buffer.Render() != "x" {
			t.Fatalf("oldest entry should have been evicted, got %q", e.Buffer.Render())
		}
	}
	if top, ok := r.Peek(); ok || top != nil {
		t.Fatalf("expected nothing to peek")
	}
}
