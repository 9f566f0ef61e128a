package vm

import (
	"fmt"

	"github.com/fermian/wren/internal/value"
)

// The As* functions are the "downcasts ... that fail loudly when the tag
// is wrong" spec.md §4.A requires. Failing loudly means raising a
// BadDowncast Fault: every call site here is either decoding a bytecode
// operand the compiler is contractually required to have gotten right
// (spec.md §1), or a primitive's own argument, so a mismatch is always a
// programmer error in the compiler or the primitive library, never a
// reachable script-level condition (spec.md §7).

func AsClass(v value.Value) *Class {
	o, ok := v.AsObj()
	if ok {
		if c, ok := o.(*Class); ok {
			return c
		}
	}
	raise(BadDowncast, "expected a class, got %s", Print(v))
	return nil
}

func AsFn(v value.Value) *Fn {
	o, ok := v.AsObj()
	if ok {
		if fn, ok := o.(*Fn); ok {
			return fn
		}
	}
	raise(BadDowncast, "expected a function, got %s", Print(v))
	return nil
}

func AsString(v value.Value) *String {
	o, ok := v.AsObj()
	if ok {
		if s, ok := o.(*String); ok {
			return s
		}
	}
	raise(BadDowncast, "expected a string, got %s", Print(v))
	return nil
}

func AsInstance(v value.Value) *Instance {
	o, ok := v.AsObj()
	if ok {
		if inst, ok := o.(*Instance); ok {
			return inst
		}
	}
	raise(BadDowncast, "expected an instance, got %s", Print(v))
	return nil
}

func AsNum(v value.Value) float64 {
	n, ok := v.AsNum()
	if !ok {
		raise(BadDowncast, fmt.Sprintf("expected a num, got kind %s", v.Kind()))
	}
	return n
}

func AsBool(v value.Value) bool {
	b, ok := v.AsBool()
	if !ok {
		raise(BadDowncast, fmt.Sprintf("expected a bool, got kind %s", v.Kind()))
	}
	return b
}
