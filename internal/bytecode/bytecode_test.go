package bytecode_test

import (
	"strings"
	"testing"

	"github.com/fermian/wren/internal/bytecode"
	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

func TestBuilderRunsThroughInterpret(t *testing.T) {
	m := vm.New(vm.DefaultOptions())

	b := bytecode.NewBuilder("add")
	idx := b.Constant(value.Num(40))
	b.LoadConstant(idx)
	idx = b.Constant(value.Num(2))
	b.LoadConstant(idx)

	// No "+" primitive is registered on Num in this test (corelib isn't
	// installed), so just prove both constants land on the stack: pop the
	// second, leaving the first for END to return.
	b.Pop()
	b.End()

	fn := b.Finish(m)
	result, err := vm.Interpret(m, fn)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	n, ok := result.AsNum()
	if !ok || n != 40 {
		t.Fatalf("result = %v, want 40", result)
	}
}

func TestContainerRoundTrip(t *testing.T) {
	m := vm.New(vm.DefaultOptions())

	inner := bytecode.NewBuilder("inner")
	inner.Null()
	inner.End()
	innerFn := inner.Finish(m)

	outer := bytecode.NewBuilder("outer")
	idx := outer.Constant(value.FromObj(innerFn))
	outer.LoadConstant(idx)
	outer.End()
	fn := outer.Finish(m)

	data := bytecode.Encode(fn)

	m2 := vm.New(vm.DefaultOptions())
	decoded, err := bytecode.Decode(m2, data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded.Name != "outer" {
		t.Fatalf("decoded.Name = %q, want %q", decoded.Name, "outer")
	}
	if len(decoded.Constants) != 1 {
		t.Fatalf("decoded.Constants has %d entries, want 1", len(decoded.Constants))
	}
	nested := vm.AsFn(decoded.Constants[0])
	if nested.Name != "inner" {
		t.Fatalf("nested.Name = %q, want %q", nested.Name, "inner")
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	m := vm.New(vm.DefaultOptions())
	_, err := bytecode.Decode(m, []byte("not a wren bytecode file"))
	if err == nil {
		t.Fatalf("Decode() should reject data without the magic header")
	}
}

func TestDisassembleListsOpcodes(t *testing.T) {
	m := vm.New(vm.DefaultOptions())
	b := bytecode.NewBuilder("script")
	idx := b.Constant(value.Num(7))
	b.LoadConstant(idx)
	b.End()
	fn := b.Finish(m)

	listing := bytecode.Listing(fn)
	if !strings.Contains(listing, "CONSTANT") {
		t.Fatalf("listing = %q, want it to mention CONSTANT", listing)
	}
	if !strings.Contains(listing, "END") {
		t.Fatalf("listing = %q, want it to mention END", listing)
	}
}
