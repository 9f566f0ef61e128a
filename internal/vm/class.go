package vm

import "github.com/fermian/wren/internal/value"

// NewClass creates a class and its metaclass as a linked pair (spec.md
// §4.D). The metaclass is pinned across the second allocation — the
// textbook case the allocation-order hazard exists for: without the pin,
// allocating classObj could trigger a collection that, not finding
// metaclass reachable from any root yet (it's sitting in a local variable,
// not yet stored anywhere the mark phase walks), would sweep it out from
// under us.
//
// If superclass is non-nil its method table is copied slot-wise into the
// new class — flat, compile-time inheritance; there is no BETA-style late
// binding, so the collector never needs to trace Superclass (see
// objects.go).
func (vm *VM) NewClass(superclass *Class) *Class {
	metaclass := vm.newSingleClass(nil, nil)

	vm.Heap.Pin(value.FromObj(metaclass))
	classObj := vm.newSingleClass(metaclass, superclass)
	vm.Heap.Unpin(value.FromObj(metaclass))

	if superclass != nil {
		classObj.Methods = superclass.Methods
	}

	newSym := vm.Methods.Ensure("new")
	metaclass.Methods[newSym] = Method{Kind: MethodPrimitive, Prim: primitiveMetaclassNew}

	return classObj
}

func (vm *VM) newSingleClass(metaclass, superclass *Class) *Class {
	size := int64(0) // the method table is fixed-size and not separately accounted
	vm.Heap.allocate(vm, size)
	c := &Class{
		Header:     value.NewHeader(value.ObjClass, size),
		Metaclass:  metaclass,
		Superclass: superclass,
	}
	vm.Heap.link(c)
	return c
}

// primitiveMetaclassNew is the sole built-in method every metaclass gets:
// `new`, which allocates a fresh, fieldless instance of the class it was
// called on (spec.md §4.D).
func primitiveMetaclassNew(vm *VM, fiber *Fiber, args []value.Value) value.Value {
	class := AsClass(args[0])
	return value.FromObj(vm.Heap.NewInstance(vm, class))
}
