// Package corelib is the primitive library: the small set of classes and
// methods that must exist before any interesting script can run at all
// (spec.md §4.H says the interpreter core is "complete and correct" without
// a compiler or library, but ships "enough scaffolding to exercise it
// end-to-end" — this package is that scaffolding, the Go equivalent of
// wren_core.wren + wren_core.c in the original source).
//
// Install defines Object, Bool, Null, Num, String, Fn and System as actual
// script-level classes (built and run as two bootstrap Fns, Object first and
// then its subclasses, the same way any other compiled program would
// define them — there is no special
// "native class" opcode) and then registers every primitive method onto
// them with vm.RegisterPrimitive. System is then instantiated once, and the
// global "System" is rebound from the class to that single instance, since
// scripts call System.print(...) on an instance rather than on the class.
package corelib

import (
	"fmt"

	"github.com/fermian/wren/internal/bytecode"
	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

// bootstrapClasses lists the classes Install defines as subclasses of
// Object in its second pass; Object itself is defined first, on its own.
// Order otherwise doesn't matter.
var bootstrapClasses = []string{"Bool", "Null", "Num", "String", "Fn", "System"}

// Install defines the core classes and wires up their primitives. It must
// run before any other script on m, since CLASS's auto-assignment of
// vm.objectClass (interp.go) only works the first time CLASS ever
// executes.
//
// Object is defined and given its primitives in a first bootstrap pass
// before any subclass is created in a second pass: vm.NewClass copies the
// superclass's method table at the moment SUBCLASS runs, so Object's
// methods must already be registered before Bool, Num and the rest come
// into being, or they would inherit an empty table.
func Install(m *vm.VM) error {
	objectIdx := byte(m.Globals.Ensure("Object"))

	objectBoot := bytecode.NewBuilder("core bootstrap: Object")
	objectBoot.Class()
	objectBoot.StoreGlobal(objectIdx)
	objectBoot.Pop()
	objectBoot.Null()
	objectBoot.End()
	if _, err := vm.Interpret(m, objectBoot.Finish(m)); err != nil {
		return fmt.Errorf("corelib: bootstrapping Object: %w", err)
	}

	object, err := requireClass(m, "Object")
	if err != nil {
		return err
	}
	installObject(m, object)

	rest := bytecode.NewBuilder("core bootstrap: subclasses")
	for _, name := range bootstrapClasses {
		idx := byte(m.Globals.Ensure(name))
		rest.LoadGlobal(objectIdx)
		rest.Subclass()
		rest.StoreGlobal(idx)
		rest.Pop()
	}
	rest.Null()
	rest.End()
	if _, err := vm.Interpret(m, rest.Finish(m)); err != nil {
		return fmt.Errorf("corelib: bootstrapping subclasses: %w", err)
	}

	boolClass, err := requireClass(m, "Bool")
	if err != nil {
		return err
	}
	nullClass, err := requireClass(m, "Null")
	if err != nil {
		return err
	}
	numClass, err := requireClass(m, "Num")
	if err != nil {
		return err
	}
	stringClass, err := requireClass(m, "String")
	if err != nil {
		return err
	}
	fnClass, err := requireClass(m, "Fn")
	if err != nil {
		return err
	}
	systemClass, err := requireClass(m, "System")
	if err != nil {
		return err
	}

	m.SetSingletonClasses(boolClass, nullClass, numClass, fnClass, stringClass)

	installBool(m, boolClass)
	installNum(m, numClass)
	installString(m, stringClass)
	installSystem(m, systemClass)

	// System is "a single instance installed as a global" (SPEC_FULL.md
	// §4.H), not the class itself: the bootstrap above only needed the
	// class to exist so installSystem had somewhere to register "print";
	// now that it does, replace the global's class binding with the one
	// instance scripts actually call System.print on.
	m.DefineGlobal("System", value.FromObj(m.Heap.NewInstance(m, systemClass)))

	return nil
}

func requireClass(m *vm.VM, name string) (c *vm.Class, err error) {
	v, ok := m.Global(name)
	if !ok {
		return nil, fmt.Errorf("corelib: bootstrap never defined %q", name)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corelib: global %q is not a class: %v", name, r)
		}
	}()
	return vm.AsClass(v), nil
}
