package corelib

import (
	"fmt"
	"strconv"

	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

// installNum registers Num's arithmetic and comparison primitives. Method
// names are this repo's own symbol scheme rather than Wren's mangled
// "name(_)" signatures — there is no compiler in scope to emit the mangled
// form, so unary and binary operators that would otherwise collide on the
// same selector ("-") get distinct names instead ("neg" for unary minus).
func installNum(m *vm.VM, class *vm.Class) {
	m.RegisterPrimitive(class, "+", numBinary(func(a, b float64) value.Value { return value.Num(a + b) }))
	m.RegisterPrimitive(class, "-", numBinary(func(a, b float64) value.Value { return value.Num(a - b) }))
	m.RegisterPrimitive(class, "*", numBinary(func(a, b float64) value.Value { return value.Num(a * b) }))
	m.RegisterPrimitive(class, "/", numBinary(func(a, b float64) value.Value { return value.Num(a / b) }))
	m.RegisterPrimitive(class, "<", numBinary(func(a, b float64) value.Value { return value.Bool(a < b) }))
	m.RegisterPrimitive(class, ">", numBinary(func(a, b float64) value.Value { return value.Bool(a > b) }))
	m.RegisterPrimitive(class, "<=", numBinary(func(a, b float64) value.Value { return value.Bool(a <= b) }))
	m.RegisterPrimitive(class, ">=", numBinary(func(a, b float64) value.Value { return value.Bool(a >= b) }))
	m.RegisterPrimitive(class, "==", numBinary(func(a, b float64) value.Value { return value.Bool(a == b) }))

	m.RegisterPrimitive(class, "neg", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return value.Num(-vm.AsNum(args[0]))
	})

	m.RegisterPrimitive(class, "to_s", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		n := vm.AsNum(args[0])
		return value.FromObj(m.Heap.NewString(m, formatNum(n)))
	})
}

func formatNum(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return fmt.Sprintf("%g", n)
}

func numBinary(op func(a, b float64) value.Value) vm.PrimitiveFn {
	return func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		return op(vm.AsNum(args[0]), vm.AsNum(args[1]))
	}
}
