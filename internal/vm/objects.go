package vm

import "github.com/fermian/wren/internal/value"

// MethodKind distinguishes the three states a method-table slot can be in.
type MethodKind uint8

const (
	MethodNone MethodKind = iota
	MethodPrimitive
	MethodBlock
)

// Method is one slot of a Class's method table.
type Method struct {
	Kind MethodKind
	Fn   *Fn         // valid when Kind == MethodBlock
	Prim PrimitiveFn // valid when Kind == MethodPrimitive
}

// Class is a heap object representing a class (or a metaclass — a
// metaclass is itself an ordinary Class, just one application of
// VM.GetClass away from the class it describes).
//
// Methods are copied slot-wise from the superclass at definition time
// (flat, compile-time inheritance — see NewClass); liveness of inherited
// method bodies therefore flows entirely through this class's own method
// table, which is why the collector does not need to trace Superclass.
type Class struct {
	value.Header
	Metaclass  *Class // nil for every metaclass (a metaclass has no metaclass)
	Superclass *Class // nil for Object and for every metaclass
	Methods    [MaxSymbols]Method
	Name       string // diagnostic only; not used for dispatch
}

// Fn is a compiled function: a flat instruction buffer plus its constant
// pool. No parameter count is stored — the calling opcode (CALL_N) encodes
// arity, per spec.md §3.
type Fn struct {
	value.Header
	Name      string
	Code      []byte
	Constants []value.Value
}

// String is a heap-allocated byte string.
type String struct {
	value.Header
	Bytes []byte
}

func (s *String) String() string { return string(s.Bytes) }

// Instance is a plain instance of a user-defined class. Fields are not yet
// specified by the language (spec.md §3 calls this "future"); the slice is
// always empty today, but GC tracing already walks it so adding fields
// later needs no collector change.
type Instance struct {
	value.Header
	Class  *Class
	Fields []value.Value
}

// trace reports the direct heap-object and Value edges out of o, for the
// collector's mark phase (spec.md §4.C). It does not recurse itself; the
// caller (Heap.mark) recurses through the visit callbacks it passes in.
func trace(o value.Obj, visitObj func(value.Obj), visitValue func(value.Value)) {
	switch t := o.(type) {
	case *Class:
		if t.Metaclass != nil {
			visitObj(t.Metaclass)
		}
		for i := range t.Methods {
			if t.Methods[i].Kind == MethodBlock {
				visitObj(t.Methods[i].Fn)
			}
		}
		// Superclass is intentionally not traced: see the doc comment on
		// Class.Superclass and spec.md §4.C.
	case *Fn:
		for _, c := range t.Constants {
			visitValue(c)
		}
	case *String:
		// No edges.
	case *Instance:
		for _, f := range t.Fields {
			visitValue(f)
		}
	}
}
