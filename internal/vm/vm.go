// Package vm implements the execution core: the bytecode interpreter, the
// class/method dispatch it drives, and the heap and collector every
// allocation goes through. See SPEC_FULL.md for the full specification
// this package implements; DESIGN.md records what each file is grounded
// on.
package vm

import (
	"io"
	"os"

	"github.com/fermian/wren/internal/value"
)

// VM is the top-level object everything else hangs off: the method and
// global symbol tables, the heap, the five primitive-value singleton
// classes, the one fiber that's ever running, and the global variable
// slots. Nothing here is a hidden package-level singleton — every
// operation takes a *VM, exactly as spec.md §9 asks reimplementations to
// preserve.
type VM struct {
	Methods *SymbolTable
	Globals *SymbolTable

	Heap *Heap

	// Singleton classes for primitive-valued Values. objectClass is nil
	// until the first CLASS opcode runs, the other five until
	// SetSingletonClasses is called (corelib.Install does both); GetClass
	// on a primitive value before then is a programmer error.
	objectClass *Class
	boolClass   *Class
	nullClass   *Class
	numClass    *Class
	fnClass     *Class
	stringClass *Class

	globals    []value.Value
	globalsSet []bool

	fiber *Fiber

	// Out is where the "print" primitive (installed by corelib) writes.
	Out io.Writer
}

// Options configures a new VM.
type Options struct {
	StackCapacity int
	FrameCapacity int
	NextGC        int64
	DebugGCStress bool
	Out           io.Writer
}

// DefaultOptions returns the Options a VM uses when none are given.
func DefaultOptions() Options {
	return Options{
		StackCapacity: DefaultStackCapacity,
		FrameCapacity: DefaultFrameCapacity,
		NextGC:        1024 * 1024,
		Out:           os.Stdout,
	}
}

// New constructs a VM. It does not create the primitive singleton classes
// — Object comes into being the first time script bytecode executes CLASS,
// and the others are installed with SetSingletonClasses once a bootstrap
// program has defined them (see corelib.Install).
func New(opts Options) *VM {
	if opts.StackCapacity == 0 {
		opts.StackCapacity = DefaultStackCapacity
	}
	if opts.FrameCapacity == 0 {
		opts.FrameCapacity = DefaultFrameCapacity
	}
	if opts.NextGC == 0 {
		opts.NextGC = 1024 * 1024
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	vm := &VM{
		Methods: NewSymbolTable(),
		Globals: NewSymbolTable(),
		Heap:    NewHeap(opts.NextGC, opts.DebugGCStress),
		fiber:   NewFiber(opts.StackCapacity, opts.FrameCapacity),
		Out:     opts.Out,
	}
	vm.globals = make([]value.Value, MaxSymbols)
	vm.globalsSet = make([]bool, MaxSymbols)
	for i := range vm.globals {
		vm.globals[i] = value.Null
	}
	return vm
}

// Fiber returns the VM's single fiber.
func (vm *VM) Fiber() *Fiber { return vm.fiber }

// ObjectClass, BoolClass, NullClass, NumClass, FnClass, StringClass return
// the primitive singleton classes. They panic (BadDowncast) if called
// before CLASS or SetSingletonClasses has populated them, since that is always a host-code
// ordering bug, never a script-level error.
func (vm *VM) ObjectClass() *Class { return vm.requireSingleton(vm.objectClass, "Object") }
func (vm *VM) BoolClass() *Class   { return vm.requireSingleton(vm.boolClass, "Bool") }
func (vm *VM) NullClass() *Class   { return vm.requireSingleton(vm.nullClass, "Null") }
func (vm *VM) NumClass() *Class    { return vm.requireSingleton(vm.numClass, "Num") }
func (vm *VM) FnClass() *Class     { return vm.requireSingleton(vm.fnClass, "Fn") }
func (vm *VM) StringClass() *Class { return vm.requireSingleton(vm.stringClass, "String") }

func (vm *VM) requireSingleton(c *Class, name string) *Class {
	if c == nil {
		raise(BadDowncast, "singleton class %q accessed before bootstrap", name)
	}
	return c
}

// SetSingletonClasses installs the classes that represent Bool, Null, Num,
// Fn and String values, once a bootstrap program (see corelib.Install) has
// defined them at the script level. objectClass is not among them: the
// CLASS opcode sets it automatically the first time it runs (spec.md
// §4.F — "if vm.objectClass is null, the new class *is* Object"), which a
// bootstrap program triggers simply by defining a class named Object
// first.
func (vm *VM) SetSingletonClasses(boolC, null, num, fn, str *Class) {
	vm.boolClass = boolC
	vm.nullClass = null
	vm.numClass = num
	vm.fnClass = fn
	vm.stringClass = str
}

// GetClass returns the class of a Value (spec.md §4.D): primitive variants
// map to the VM-held singleton classes, instances return their own class,
// and classes return their metaclass. NoValue must never reach here — it
// is strictly internal (spec.md §9 Open Question) — so this is a
// BadDowncast Fault, not the original C source's nullClass placeholder.
func (vm *VM) GetClass(v value.Value) *Class {
	switch v.Kind() {
	case value.KindFalse, value.KindTrue:
		return vm.BoolClass()
	case value.KindNull:
		return vm.NullClass()
	case value.KindNum:
		return vm.NumClass()
	case value.KindObj:
		o, _ := v.AsObj()
		switch t := o.(type) {
		case *Class:
			return t.Metaclass
		case *Fn:
			return vm.FnClass()
		case *String:
			return vm.StringClass()
		case *Instance:
			return t.Class
		default:
			raise(BadDowncast, "unknown heap object kind")
		}
	case value.KindNoValue:
		raise(BadDowncast, "NoValue has no class; it must never escape a primitive call")
	}
	panic("unreachable")
}

// DefineGlobal reserves (if needed) and writes a global slot, the
// embedder-facing half of LOAD_GLOBAL/STORE_GLOBAL (spec.md §6's "global
// reservation/read/write").
func (vm *VM) DefineGlobal(name string, v value.Value) int {
	id := vm.Globals.Ensure(name)
	vm.globals[id] = v
	vm.globalsSet[id] = true
	return id
}

// Global reads a global by name. The second return is false if the name
// was never defined, matching spec.md §3 invariant 6 (an undeclared slot
// reads as Null, but DefineGlobal distinguishes "never declared" from
// "declared as Null" for embedder bookkeeping).
func (vm *VM) Global(name string) (value.Value, bool) {
	id := vm.Globals.Find(name)
	if id == NoSymbol {
		return value.Null, false
	}
	return vm.globals[id], vm.globalsSet[id]
}
