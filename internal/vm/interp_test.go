package vm

import "testing"

// These tests hand-assemble bytecode directly (rather than going through
// internal/bytecode, which depends on this package) to exercise the
// dispatch loop in interp.go.

func TestClassDefinitionAndIs(t *testing.T) {
	m := New(DefaultOptions())
	newSym := byte(m.Methods.Ensure("new"))

	code := []byte{
		byte(OpClass),
		byte(OpStoreGlobal), 0, // globals[0] = Object
		byte(OpPop),
		byte(OpLoadGlobal), 0,
		byte(OpSubclass), // pops Object, pushes Sub
		byte(OpStoreGlobal), 1, // globals[1] = Sub
		byte(OpPop),
		byte(OpLoadGlobal), 1,
		byte(OpCall0), newSym, // Sub.new -> an Instance of Sub
		byte(OpLoadGlobal), 1,
		byte(OpIs),
		byte(OpEnd),
	}
	fn := m.Heap.NewFn(m, "test", code, nil)

	result, err := Interpret(m, fn)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	b, ok := result.AsBool()
	if !ok || !b {
		t.Fatalf("result = %v, want true (instance IS its own class)", result)
	}
}

func TestMethodNotFoundFaults(t *testing.T) {
	m := New(DefaultOptions())
	missingSym := byte(m.Methods.Ensure("nonexistentMethod"))

	code := []byte{
		byte(OpClass),
		byte(OpCall0), missingSym,
		byte(OpEnd),
	}
	fn := m.Heap.NewFn(m, "test", code, nil)

	_, err := Interpret(m, fn)
	fault, ok := err.(*Fault)
	if !ok {
		t.Fatalf("Interpret() error = %v (%T), want *Fault", err, err)
	}
	if fault.Kind != MethodNotFound {
		t.Fatalf("Fault.Kind = %s, want %s", fault.Kind, MethodNotFound)
	}
}

func TestJumpIfSkipsOnFalse(t *testing.T) {
	m := New(DefaultOptions())

	code := []byte{
		byte(OpNull),  // value END returns once the jump is taken
		byte(OpFalse), // condition
		byte(OpJumpIf), 2, // skip the TRUE/POP pair below
		byte(OpTrue),
		byte(OpPop),
		byte(OpEnd),
	}
	fn := m.Heap.NewFn(m, "test", code, nil)

	result, err := Interpret(m, fn)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if !result.IsNull() {
		t.Fatalf("result = %v, want null (the jump should have been taken)", result)
	}
}
