package vm

import (
	"testing"

	"github.com/fermian/wren/internal/value"
)

func TestHeapCollectsUnreachableObjects(t *testing.T) {
	m := New(DefaultOptions())

	// Unreachable: nothing roots this string.
	m.Heap.NewString(m, "garbage")
	if got := m.Heap.Stats().LiveObjects; got != 0 {
		t.Fatalf("LiveObjects before any sweep = %d, want 0 (sweep hasn't run yet)", got)
	}

	// Reachable: stored in a global slot.
	kept := m.Heap.NewString(m, "kept")
	id := m.DefineGlobal("g", value.FromObj(kept))

	m.Heap.collect(m)

	stats := m.Heap.Stats()
	if stats.LiveObjects != 1 {
		t.Fatalf("LiveObjects after sweep = %d, want 1 (only the rooted string)", stats.LiveObjects)
	}
	if stats.LastSwept == 0 {
		t.Fatalf("LastSwept = 0, want the garbage string's byte size to have been reclaimed")
	}

	v, ok := m.Global("g")
	if !ok || AsString(v).String() != "kept" {
		t.Fatalf("global %d did not survive collection", id)
	}
}

func TestPinProtectsAcrossCollection(t *testing.T) {
	m := New(DefaultOptions())

	pinned := m.Heap.NewString(m, "pinned")
	m.Heap.Pin(value.FromObj(pinned))

	m.Heap.collect(m)

	if m.Heap.Stats().LiveObjects != 1 {
		t.Fatalf("a pinned object must survive a collection with no other roots")
	}

	m.Heap.Unpin(value.FromObj(pinned))
	m.Heap.collect(m)

	if m.Heap.Stats().LiveObjects != 0 {
		t.Fatalf("unpinning should make the object collectible again")
	}
}

func TestUnpinOutOfOrderFaults(t *testing.T) {
	m := New(DefaultOptions())
	a := value.FromObj(m.Heap.NewString(m, "a"))
	b := value.FromObj(m.Heap.NewString(m, "b"))

	m.Heap.Pin(a)
	m.Heap.Pin(b)

	defer func() {
		r := recover()
		f, ok := r.(*Fault)
		if !ok {
			t.Fatalf("Unpin out of stack order should raise a Fault, got %v", r)
		}
		if f.Kind != BadDowncast {
			t.Fatalf("Fault.Kind = %s, want %s", f.Kind, BadDowncast)
		}
	}()
	m.Heap.Unpin(a) // b is on top; unpinning a first is out of order
}
