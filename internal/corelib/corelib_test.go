package corelib_test

import (
	"bytes"
	"testing"

	"github.com/fermian/wren/internal/bytecode"
	"github.com/fermian/wren/internal/corelib"
	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

func newInstalledVM(t *testing.T) *vm.VM {
	t.Helper()
	m := vm.New(vm.DefaultOptions())
	if err := corelib.Install(m); err != nil {
		t.Fatalf("corelib.Install() error = %v", err)
	}
	return m
}

func TestInstallDefinesSingletonClasses(t *testing.T) {
	m := newInstalledVM(t)

	if vm.Print(value.True) != "true" {
		t.Fatalf("sanity: Print(true) = %q", vm.Print(value.True))
	}

	n := value.Num(1)
	class := m.GetClass(n)
	if class != m.NumClass() {
		t.Fatalf("GetClass(1) did not return the installed Num class")
	}
}

func TestNumArithmeticPrimitive(t *testing.T) {
	m := newInstalledVM(t)
	plusSym := byte(m.Methods.Ensure("+"))

	b := bytecode.NewBuilder("add")
	idx := b.Constant(value.Num(40))
	b.LoadConstant(idx)
	idx = b.Constant(value.Num(2))
	b.LoadConstant(idx)
	b.Call(1, plusSym)
	b.End()

	result, err := vm.Interpret(m, b.Finish(m))
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	n, ok := result.AsNum()
	if !ok || n != 42 {
		t.Fatalf("result = %v, want 42", result)
	}
}

func TestStringConcatPrimitive(t *testing.T) {
	m := newInstalledVM(t)
	plusSym := byte(m.Methods.Ensure("+"))

	b := bytecode.NewBuilder("concat")
	idx := b.Constant(value.FromObj(m.Heap.NewString(m, "foo")))
	b.LoadConstant(idx)
	idx = b.Constant(value.FromObj(m.Heap.NewString(m, "bar")))
	b.LoadConstant(idx)
	b.Call(1, plusSym)
	b.End()

	result, err := vm.Interpret(m, b.Finish(m))
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if got := vm.AsString(result).String(); got != "foobar" {
		t.Fatalf("result = %q, want %q", got, "foobar")
	}
}

func TestSystemPrintWritesToOut(t *testing.T) {
	var out bytes.Buffer
	opts := vm.DefaultOptions()
	opts.Out = &out
	m := vm.New(opts)
	if err := corelib.Install(m); err != nil {
		t.Fatalf("corelib.Install() error = %v", err)
	}

	systemVal, ok := m.Global("System")
	if !ok {
		t.Fatalf("bootstrap did not define System")
	}
	// The global must hold a singleton *instance*, not the System class
	// itself: vm.AsInstance raises a BadDowncast Fault on anything else.
	_ = vm.AsInstance(systemVal)
	printSym := byte(m.Methods.Ensure("print"))

	b := bytecode.NewBuilder("printIt")
	idx := b.Constant(systemVal)
	b.LoadConstant(idx)
	idx = b.Constant(value.FromObj(m.Heap.NewString(m, "hello")))
	b.LoadConstant(idx)
	b.Call(1, printSym)
	b.End()

	if _, err := vm.Interpret(m, b.Finish(m)); err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if got := out.String(); got != "hello\n" {
		t.Fatalf("System.print output = %q, want %q", got, "hello\n")
	}
}
