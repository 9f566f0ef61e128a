package vm

import "github.com/fermian/wren/internal/value"

// PrimitiveFn is a host function's signature (spec.md §4.G): args[0] is
// the receiver, args[1:] the explicit arguments. A primitive returns
// either an ordinary Value — which the interpreter integrates in place of
// the receiver and arguments — or value.NoValue, signalling that the
// primitive has itself pushed a new call frame (via Fiber.call) and the
// interpreter must re-enter the dispatch loop without touching the stack.
//
// Primitives may allocate; any Value they create and do not immediately
// return must be pinned (vm.Heap.Pin/Unpin) for the duration of any
// subsequent allocation that might run a collection.
type PrimitiveFn func(vm *VM, fiber *Fiber, args []value.Value) value.Value

// RegisterPrimitive installs fn as the implementation of methodName on
// class. This is the one entry point an embedding primitive library (see
// internal/corelib) or a compiler's runtime support uses to extend a
// class — the interpreter's dispatch loop (interp.go) never special-cases
// any selector.
func (vm *VM) RegisterPrimitive(class *Class, methodName string, fn PrimitiveFn) {
	sym := vm.Methods.Ensure(methodName)
	class.Methods[sym] = Method{Kind: MethodPrimitive, Prim: fn}
}
