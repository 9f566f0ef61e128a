package value

import "testing"

type fakeObj struct {
	h Header
}

func (f *fakeObj) header() *Header { return &f.h }

func newFakeObj() *fakeObj {
	return &fakeObj{h: NewHeader(ObjString, 0)}
}

func TestValueKinds(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"false", False, KindFalse},
		{"true", True, KindTrue},
		{"null", Null, KindNull},
		{"novalue", NoValue, KindNoValue},
		{"num", Num(3.5), KindNum},
	}
	for _, c := range cases {
		if got := c.v.Kind(); got != c.kind {
			t.Errorf("%s: Kind() = %s, want %s", c.name, got, c.kind)
		}
	}
}

func TestNumRoundTrip(t *testing.T) {
	v := Num(42)
	n, ok := v.AsNum()
	if !ok || n != 42 {
		t.Fatalf("AsNum() = (%v, %v), want (42, true)", n, ok)
	}
	if _, ok := True.AsNum(); ok {
		t.Fatalf("AsNum() on a bool should fail")
	}
}

func TestBoolHelpers(t *testing.T) {
	if b, ok := True.AsBool(); !ok || !b {
		t.Fatalf("True.AsBool() = (%v, %v)", b, ok)
	}
	if b, ok := False.AsBool(); !ok || b {
		t.Fatalf("False.AsBool() = (%v, %v)", b, ok)
	}
	if !False.IsFalsey() {
		t.Fatalf("False.IsFalsey() = false")
	}
	if Null.IsFalsey() {
		t.Fatalf("Null should not be falsey: only the literal false value is")
	}
	if Bool(true) != True || Bool(false) != False {
		t.Fatalf("Bool() did not round-trip through the canonical singletons")
	}
}

func TestObjIdentity(t *testing.T) {
	a := newFakeObj()
	b := newFakeObj()
	va, vb := FromObj(a), FromObj(b)

	if !Is(va, FromObj(a)) {
		t.Errorf("Is() should hold for the same underlying object")
	}
	if Is(va, vb) {
		t.Errorf("Is() should not hold across distinct objects")
	}
	if !va.IsObj() {
		t.Errorf("IsObj() should be true for a heap value")
	}
	if o, ok := va.AsObj(); !ok || o != Obj(a) {
		t.Errorf("AsObj() did not return the original object")
	}
}

func TestHeaderOf(t *testing.T) {
	o := newFakeObj()
	hdr := HeaderOf(o)
	if hdr.Kind() != ObjString {
		t.Fatalf("HeaderOf().Kind() = %s, want %s", hdr.Kind(), ObjString)
	}
	hdr.SetMarked(true)
	if !o.h.Marked() {
		t.Fatalf("HeaderOf() should return a pointer into the same object, not a copy")
	}
}
