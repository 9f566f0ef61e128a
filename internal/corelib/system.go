package corelib

import (
	"fmt"

	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

// installSystem registers "print" as an ordinary instance method on the
// System class: the global "System" name is bound to a singleton instance
// of it (see corelib.Install), so script code calls System.print(value) on
// that instance exactly like any other method call, and execCall looks the
// method up on class itself (see vm.GetClass for an Instance receiver).
func installSystem(m *vm.VM, class *vm.Class) {
	m.RegisterPrimitive(class, "print", func(m *vm.VM, f *vm.Fiber, args []value.Value) value.Value {
		fmt.Fprintln(m.Out, vm.Print(args[1]))
		return args[1]
	})
}
