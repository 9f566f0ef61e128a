package vm

import "github.com/fermian/wren/internal/value"

// DefaultStackCapacity and DefaultFrameCapacity size a Fiber's two stacks
// when the host doesn't override them. cmd/wrenvm picks real defaults from
// hostenv.StackBudget; these are the fallback for embedders that construct
// a VM directly.
const (
	DefaultStackCapacity = 4096
	DefaultFrameCapacity = 256
)

// Frame records one in-flight function invocation: which function, the
// program counter (a byte index into fn.Code), and stackStart — the
// value-stack index at which this frame's locals begin. Slot 0 relative to
// stackStart is always the receiver; slots 1..arity-1 are the explicit
// arguments; higher slots are compiler-assigned locals/temporaries
// (spec.md §4.E).
type Frame struct {
	fn         *Fn
	ip         int
	stackStart int
}

// Fiber owns the value stack and frame stack for the single thread of
// execution a VM runs (spec.md §4.E; spec.md §5 — exactly one fiber
// exists at any time and runs synchronously on its caller, so Fiber has no
// concurrency control of its own).
type Fiber struct {
	stack     []value.Value
	stackSize int

	frames    []Frame
	numFrames int
}

// NewFiber returns a fiber with fixed-capacity stacks. Overflowing either
// is a StackOverflow Fault (spec.md §4.E, §7).
func NewFiber(stackCap, frameCap int) *Fiber {
	return &Fiber{
		stack:  make([]value.Value, stackCap),
		frames: make([]Frame, frameCap),
	}
}

func (f *Fiber) push(v value.Value) {
	if f.stackSize >= len(f.stack) {
		raise(StackOverflow, "value stack exceeded %d slots", len(f.stack))
	}
	f.stack[f.stackSize] = v
	f.stackSize++
}

func (f *Fiber) pop() value.Value {
	f.stackSize--
	return f.stack[f.stackSize]
}

func (f *Fiber) peek() value.Value {
	return f.stack[f.stackSize-1]
}

// call pushes a new frame for fn, overlaying the numArgs values already on
// top of the stack (the receiver plus explicit arguments) as that frame's
// initial locals. It does not move any values (spec.md §4.E).
func (f *Fiber) call(fn *Fn, numArgs int) {
	if f.numFrames >= len(f.frames) {
		raise(StackOverflow, "frame stack exceeded %d frames", len(f.frames))
	}
	f.frames[f.numFrames] = Frame{fn: fn, stackStart: f.stackSize - numArgs}
	f.numFrames++
}

// currentFrame returns the active frame. Only valid while numFrames > 0.
func (f *Fiber) currentFrame() *Frame {
	return &f.frames[f.numFrames-1]
}
