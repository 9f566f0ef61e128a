// Package value defines the tagged cell that every wren runtime value is
// stored in, and the minimal interface heap objects must satisfy to be
// referenced from one.
//
// The object variants themselves (Class, Fn, String, Instance) live in
// package vm, which is the only place that knows how to trace, print or
// downcast them. Keeping Obj here as a narrow interface, rather than value
// depending on vm, avoids an import cycle while still letting a Value cell
// be a single uniformly sized struct.
package value

// Kind distinguishes the variants a Value can hold.
type Kind uint8

const (
	KindFalse Kind = iota
	KindTrue
	KindNull
	KindNum
	// KindNoValue is a sentinel returned internally by primitives that have
	// instead pushed a new call frame. It must never be observable from
	// script code or returned from Interpret.
	KindNoValue
	KindObj
)

func (k Kind) String() string {
	switch k {
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindNull:
		return "null"
	case KindNum:
		return "num"
	case KindNoValue:
		return "novalue"
	case KindObj:
		return "obj"
	default:
		return "unknown"
	}
}

// ObjKind distinguishes the concrete heap object types.
type ObjKind uint8

const (
	ObjClass ObjKind = iota
	ObjFn
	ObjString
	ObjInstance
)

func (k ObjKind) String() string {
	switch k {
	case ObjClass:
		return "class"
	case ObjFn:
		return "fn"
	case ObjString:
		return "string"
	case ObjInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Header is the common prefix every heap object embeds. It carries the
// GC mark bit, the intrusive next-object link used by sweep, and the
// object's true allocated size (in bytes) for accounting — recorded here
// instead of assumed, which is what lets sweep report exact totals rather
// than the original C source's hard-coded buffer-size guesses.
type Header struct {
	kind   ObjKind
	marked bool
	next   Obj
	size   int64
}

// NewHeader constructs a header for an object of the given kind and size.
// size is the true number of bytes this object (and any buffers it owns)
// occupies, for GC accounting.
func NewHeader(kind ObjKind, size int64) Header {
	return Header{kind: kind, size: size}
}

func (h *Header) Kind() ObjKind  { return h.kind }
func (h *Header) Marked() bool   { return h.marked }
func (h *Header) SetMarked(m bool) { h.marked = m }
func (h *Header) Size() int64   { return h.size }
func (h *Header) Next() Obj     { return h.next }
func (h *Header) SetNext(o Obj) { h.next = o }

// header satisfies the unexported method of Obj. Because it is declared in
// this package, any type in another package that embeds *Header (or Header)
// promotes this method and thereby satisfies Obj, without package value
// needing to know the concrete type.
func (h *Header) header() *Header { return h }

// Obj is satisfied by every heap object variant. The single unexported
// method means only types embedding Header (from this package) can
// implement it, which keeps the object-list thread's invariant — every
// heap object has exactly one Header — structurally enforced.
type Obj interface {
	header() *Header
}

// HeaderOf returns the common header of any heap object.
func HeaderOf(o Obj) *Header {
	return o.(interface{ header() *Header }).header()
}

// Value is the uniformly sized tagged cell described in the spec: a kind
// tag, a float64 payload for Num, and an Obj payload for heap references.
// Exactly one of the payload fields is meaningful for a given Kind.
type Value struct {
	kind Kind
	num  float64
	obj  Obj
}

var (
	False   = Value{kind: KindFalse}
	True    = Value{kind: KindTrue}
	Null    = Value{kind: KindNull}
	NoValue = Value{kind: KindNoValue}
)

// Num returns a Value wrapping the given number.
func Num(n float64) Value { return Value{kind: KindNum, num: n} }

// FromObj returns a Value referencing a heap object.
func FromObj(o Obj) Value { return Value{kind: KindObj, obj: o} }

// Bool returns True or False.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsObj() bool     { return v.kind == KindObj }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsNum() bool     { return v.kind == KindNum }
func (v Value) IsNoValue() bool { return v.kind == KindNoValue }

// IsBool reports whether v is one of the two boolean singletons.
func (v Value) IsBool() bool { return v.kind == KindTrue || v.kind == KindFalse }

// IsFalsey reports whether v is the sole falsy value. Null, NoValue, Num(0)
// and every object are all truthy — only KindFalse is falsy.
func (v Value) IsFalsey() bool { return v.kind == KindFalse }

// AsNum returns the numeric payload. ok is false if v is not a Num.
func (v Value) AsNum() (n float64, ok bool) {
	if v.kind != KindNum {
		return 0, false
	}
	return v.num, true
}

// AsBool returns the boolean payload. ok is false if v is not a bool.
func (v Value) AsBool() (b bool, ok bool) {
	switch v.kind {
	case KindTrue:
		return true, true
	case KindFalse:
		return false, true
	default:
		return false, false
	}
}

// AsObj returns the object payload. ok is false if v does not hold one.
func (v Value) AsObj() (o Obj, ok bool) {
	if v.kind != KindObj {
		return nil, false
	}
	return v.obj, true
}

// Is reports whether a and b are the identical value: for objects, pointer
// identity; for everything else, equal kind and (for Num) equal payload.
// This is the "identity comparison" the pin stack uses, tightened from the
// original C source's type-only equality check (see DESIGN.md).
func Is(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNum:
		return a.num == b.num
	case KindObj:
		return a.obj == b.obj
	default:
		return true
	}
}
