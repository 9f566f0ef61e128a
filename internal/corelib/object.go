package corelib

import (
	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

// installObject registers the fallback methods every class inherits unless
// it overrides them — the flat method-table copy in vm.NewClass means
// these land in every subclass's table at the moment it's defined, exactly
// like any other inherited method.
func installObject(m *vm.VM, class *vm.Class) {
	m.RegisterPrimitive(class, "==", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.Bool(value.Is(args[0], args[1]))
	})
	m.RegisterPrimitive(class, "!=", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.Bool(!value.Is(args[0], args[1]))
	})
	m.RegisterPrimitive(class, "to_s", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.FromObj(m.Heap.NewString(m, vm.Print(args[0])))
	})
}
