package corelib

import (
	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

func installBool(m *vm.VM, class *vm.Class) {
	m.RegisterPrimitive(class, "!", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.Bool(!vm.AsBool(args[0]))
	})
	m.RegisterPrimitive(class, "&", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.Bool(vm.AsBool(args[0]) && vm.AsBool(args[1]))
	})
	m.RegisterPrimitive(class, "|", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.Bool(vm.AsBool(args[0]) || vm.AsBool(args[1]))
	})
	m.RegisterPrimitive(class, "==", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.Bool(value.Is(args[0], args[1]))
	})
	m.RegisterPrimitive(class, "to_s", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		text := "false"
		if vm.AsBool(args[0]) {
			text = "true"
		}
		return value.FromObj(m.Heap.NewString(m, text))
	})
}
