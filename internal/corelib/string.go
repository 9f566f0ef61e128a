package corelib

import (
	"bytes"

	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

func installString(m *vm.VM, class *vm.Class) {
	m.RegisterPrimitive(class, "+", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		a, b := vm.AsString(args[0]), vm.AsString(args[1])
		return value.FromObj(m.Heap.NewString(m, a.String()+b.String()))
	})
	m.RegisterPrimitive(class, "length", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.Num(float64(len(vm.AsString(args[0]).Bytes)))
	})
	m.RegisterPrimitive(class, "==", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		b, ok := args[1].AsObj()
		if !ok {
			return value.False
		}
		other, ok := b.(*vm.String)
		if !ok {
			return value.False
		}
		return value.Bool(bytes.Equal(vm.AsString(args[0]).Bytes, other.Bytes))
	})
	m.RegisterPrimitive(class, "to_s", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return args[0]
	})
}
