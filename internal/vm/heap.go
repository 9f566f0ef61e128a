package vm

import "github.com/fermian/wren/internal/value"

// MaxPinned bounds the pin stack (spec.md §4.C).
const MaxPinned = 256

// Heap is the allocator and mark-and-sweep collector (spec.md §4.C). It
// owns the object-list thread (the sole enumerator sweep uses) and the pin
// stack (extra GC roots for objects under construction).
//
// Go's runtime already garbage-collects Heap's own memory; Heap instead
// models the *scripted language's* heap discipline on top of it — bump
// accounting, a tracing mark phase over the object graph described by
// spec.md §3, and explicit sweep-driven "freeing" (here, unlinking so Go's
// own GC can reclaim the Go-level struct). This mirrors how
// internal/gocore in the teacher repo builds a heap abstraction (heapTable,
// ForEachObject, mark bits) entirely on top of an already-managed process
// image, just inverted: gocore observes someone else's heap discipline,
// this repo enforces its own.
type Heap struct {
	first value.Obj // head of the object-list thread

	totalAllocated int64
	nextGC         int64
	debugStress    bool // force a collection on every allocation

	pin []value.Value

	nObjects int // live objects as of the last sweep
	lastFreed int64 // bytes reclaimed by the last sweep
}

// NewHeap returns an empty heap. nextGC is the allocation threshold before
// the first collection; debugStress forces a collection on every
// allocation, for GC-stress testing (the runtime analogue of the C
// source's DEBUG_GC_STRESS build flag — see SPEC_FULL.md §4.C).
func NewHeap(nextGC int64, debugStress bool) *Heap {
	return &Heap{nextGC: nextGC, debugStress: debugStress}
}

// TotalAllocated returns the current accounted byte count.
func (h *Heap) TotalAllocated() int64 { return h.totalAllocated }

// NextGC returns the threshold totalAllocated must exceed to trigger the
// next collection.
func (h *Heap) NextGC() int64 { return h.nextGC }

// allocate accounts size bytes, running a full collection first if that
// would exceed nextGC (or always, under debugStress). It must be called
// before an object is linked via link, and — per the allocation-order
// hazard in spec.md §4.C/§5 — before allocating a composite object, every
// buffer or constituent object it owns must already be allocated and
// linked, so that a collection triggered here can never observe a
// half-built object.
func (h *Heap) allocate(vm *VM, size int64) {
	h.totalAllocated += size
	if h.debugStress || h.totalAllocated > h.nextGC {
		h.collect(vm)
		h.nextGC = h.totalAllocated * 3 / 2
	}
}

// link adds o to the object-list thread. Every object must be linked
// exactly once, immediately after allocate, before any reference to it
// escapes to a place the GC doesn't already treat as a root (spec.md §3,
// invariant 1).
func (h *Heap) link(o value.Obj) {
	hdr := value.HeaderOf(o)
	hdr.SetNext(h.first)
	h.first = o
}

// Pin registers v as an extra GC root. Pin/Unpin must be used in strict
// stack discipline: the mechanism by which a caller protects freshly
// allocated objects across subsequent allocations that might trigger
// collection (spec.md §4.C).
func (h *Heap) Pin(v value.Value) {
	if len(h.pin) >= MaxPinned {
		raise(StackOverflow, "pin stack exceeded %d entries", MaxPinned)
	}
	h.pin = append(h.pin, v)
}

// Unpin pops the most recently pinned value. It compares by identity
// (value.Is), not merely by type — tightened from the original C source's
// type-only equality assertion (spec.md §9 Open Question; DESIGN.md).
func (h *Heap) Unpin(v value.Value) {
	if len(h.pin) == 0 {
		raise(BadDowncast, "unpin with empty pin stack")
	}
	top := h.pin[len(h.pin)-1]
	if !value.Is(top, v) {
		raise(BadDowncast, "unpinning object out of stack order")
	}
	h.pin = h.pin[:len(h.pin)-1]
}

// mark performs the depth-first traversal described in spec.md §4.C,
// rooted at exactly the set listed there, in that order: globals, pin
// stack, active frame functions, then the value stack.
func (h *Heap) mark(vm *VM) {
	var markObj func(o value.Obj)
	var markValue func(v value.Value)

	markValue = func(v value.Value) {
		if o, ok := v.AsObj(); ok {
			markObj(o)
		}
	}
	markObj = func(o value.Obj) {
		hdr := value.HeaderOf(o)
		if hdr.Marked() {
			return
		}
		hdr.SetMarked(true)
		trace(o, markObj, markValue)
	}

	for i, g := range vm.globals {
		if vm.globalsSet[i] && !g.IsNull() {
			markValue(g)
		}
	}
	for _, p := range h.pin {
		markValue(p)
	}
	for _, f := range vm.fiber.frames[:vm.fiber.numFrames] {
		markObj(f.fn)
	}
	for _, sv := range vm.fiber.stack[:vm.fiber.stackSize] {
		markValue(sv)
	}
}

// collect runs one full mark-and-sweep cycle. Between collections — and
// indeed between any two bytecode instructions — no object has its mark
// bit set (spec.md §8, invariant 1); sweep always clears it on live
// objects and removes it entirely (by unlinking) on garbage.
func (h *Heap) collect(vm *VM) {
	h.mark(vm)

	var freed int64
	live := 0
	var head value.Obj
	var tail *value.Header
	for o := h.first; o != nil; {
		hdr := value.HeaderOf(o)
		next := hdr.Next()
		if !hdr.Marked() {
			// Unreached: drop it from the thread and release its
			// accounted size. Go's own GC reclaims the struct itself
			// once nothing (including this thread) references it.
			freed += hdr.Size()
			o = next
			continue
		}
		hdr.SetMarked(false)
		live++
		if tail == nil {
			head = o
		} else {
			tail.SetNext(o)
		}
		tail = hdr
		o = next
	}
	if tail != nil {
		tail.SetNext(nil)
	}
	h.first = head

	h.totalAllocated -= freed
	h.lastFreed = freed
	h.nObjects = live
}

// ForEachObject calls fn with every object on the object-list thread,
// which includes any garbage not yet swept (spec.md §5, "mutators may not
// iterate it" refers to mutation; this is a read-only walk, used by the
// `wrenvm repl` "objects" command). The collector walks the thread itself
// in collect rather than through this method.
func (h *Heap) ForEachObject(fn func(o value.Obj) bool) {
	for o := h.first; o != nil; o = value.HeaderOf(o).Next() {
		if !fn(o) {
			return
		}
	}
}

// Stats is a breakdown of heap memory, grounded on
// internal/gocore's Stats/groupStat/leafStat tree (process.go) in the
// teacher repo, used by `wrenvm heap`.
type Stats struct {
	TotalAllocated int64
	NextGC         int64
	LiveObjects    int
	LastSwept      int64
}

// Stats reports the heap's current accounting.
func (h *Heap) Stats() Stats {
	return Stats{
		TotalAllocated: h.totalAllocated,
		NextGC:         h.nextGC,
		LiveObjects:    h.nObjects,
		LastSwept:      h.lastFreed,
	}
}

// --- typed constructors ---
//
// Each of these accounts the object's true size (resolving the Open
// Question about hard-coded C buffer sizes — see DESIGN.md) and links it
// into the object-list thread immediately after allocation.

// NewString allocates a String holding a copy of text's bytes.
func (h *Heap) NewString(vm *VM, text string) *String {
	buf := []byte(text)
	h.allocate(vm, int64(len(buf)))
	s := &String{Header: value.NewHeader(value.ObjString, int64(len(buf))), Bytes: buf}
	h.link(s)
	return s
}

// NewFn allocates a Fn wrapping already-assembled code and constants. Any
// Fn or String constants in constants must already be allocated and linked
// (built bottom-up by the assembler/decoder), satisfying the
// allocation-order hazard for composite objects that own other heap
// objects indirectly through their constant pool.
func (h *Heap) NewFn(vm *VM, name string, code []byte, constants []value.Value) *Fn {
	size := int64(cap(code)) + int64(cap(constants))*int64(valueSize)
	h.allocate(vm, size)
	fn := &Fn{
		Header:    value.NewHeader(value.ObjFn, size),
		Name:      name,
		Code:      code,
		Constants: constants,
	}
	h.link(fn)
	return fn
}

// valueSize approximates the in-memory footprint of a Value cell for GC
// accounting purposes.
const valueSize = 24

// NewInstance allocates a bare instance of class. Fields start empty;
// spec.md §3 explicitly defers field storage to future work but requires
// the collector already tolerate (and be ready to trace) them.
func (h *Heap) NewInstance(vm *VM, class *Class) *Instance {
	h.allocate(vm, 0)
	inst := &Instance{Header: value.NewHeader(value.ObjInstance, 0), Class: class}
	h.link(inst)
	return inst
}
