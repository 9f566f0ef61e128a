package vm

import (
	"testing"

	"github.com/fermian/wren/internal/value"
)

func echoPrimitive(m *VM, f *Fiber, args []value.Value) value.Value { return args[0] }

func TestSubclassCopiesMethodTableAtDefinitionTime(t *testing.T) {
	m := New(DefaultOptions())
	sym := m.Methods.Ensure("greet")

	base := m.NewClass(nil)
	base.Methods[sym] = Method{Kind: MethodPrimitive, Prim: echoPrimitive}

	sub := m.NewClass(base)
	if sub.Methods[sym].Kind != MethodPrimitive {
		t.Fatalf("subclass did not inherit base's method table at definition time")
	}

	// Defining a new method on base afterward must NOT retroactively reach
	// sub: inheritance is a one-time, compile-time copy (flat dispatch),
	// not a live delegation chain.
	otherSym := m.Methods.Ensure("later")
	base.Methods[otherSym] = Method{Kind: MethodPrimitive, Prim: echoPrimitive}
	if sub.Methods[otherSym].Kind != MethodNone {
		t.Fatalf("subclass should not observe methods added to its superclass after it was defined")
	}
}

func TestNewClassPairsMetaclass(t *testing.T) {
	m := New(DefaultOptions())
	class := m.NewClass(nil)
	if class.Metaclass == nil {
		t.Fatalf("NewClass did not create a metaclass")
	}
	if class.Metaclass.Metaclass != nil {
		t.Fatalf("a metaclass should not itself have a metaclass")
	}

	newSym := m.Methods.Ensure("new")
	if class.Metaclass.Methods[newSym].Kind != MethodPrimitive {
		t.Fatalf("every metaclass should get a primitive 'new' method")
	}
}
