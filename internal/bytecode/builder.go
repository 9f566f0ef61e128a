// Package bytecode provides the scaffolding the spec explicitly leaves to
// an external compiler: a way to assemble a Fn's instruction stream and
// constant pool (Builder), a binary container so compiled programs can be
// loaded from disk without writing Go (Container, see container.go), and a
// disassembler (see disasm.go) that restores the block-commented dumpCode
// function from original_source/src/vm.c as always-available diagnostics.
package bytecode

import (
	"github.com/fermian/wren/internal/value"
	"github.com/fermian/wren/internal/vm"
)

// Builder assembles one function's bytecode and constant pool. It is the
// minimum scaffolding needed to exercise the interpreter without a real
// compiler; the bytecode and corelib tests use it in place of hand-written
// byte slices (internal/vm's own tests cannot import this package and
// hand-assemble their bytecode).
type Builder struct {
	name      string
	code      []byte
	constants []value.Value
}

// NewBuilder starts assembling a function named name (diagnostic only).
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Len returns the number of bytes emitted so far — useful for computing
// jump offsets.
func (b *Builder) Len() int { return len(b.code) }

// Constant appends a value to the constant pool and returns its index.
func (b *Builder) Constant(v value.Value) byte {
	if len(b.constants) >= vm.MaxSymbols {
		panic("too many constants")
	}
	b.constants = append(b.constants, v)
	return byte(len(b.constants) - 1)
}

func (b *Builder) emit(op vm.Opcode, operands ...byte) {
	b.code = append(b.code, byte(op))
	b.code = append(b.code, operands...)
}

func (b *Builder) LoadConstant(idx byte)   { b.emit(vm.OpConstant, idx) }
func (b *Builder) Null()                   { b.emit(vm.OpNull) }
func (b *Builder) False()                  { b.emit(vm.OpFalse) }
func (b *Builder) True()                   { b.emit(vm.OpTrue) }
func (b *Builder) Class()                  { b.emit(vm.OpClass) }
func (b *Builder) Subclass()               { b.emit(vm.OpSubclass) }
func (b *Builder) Metaclass()              { b.emit(vm.OpMetaclass) }
func (b *Builder) Method(sym, cst byte)    { b.emit(vm.OpMethod, sym, cst) }
func (b *Builder) LoadLocal(idx byte)      { b.emit(vm.OpLoadLocal, idx) }
func (b *Builder) StoreLocal(idx byte)     { b.emit(vm.OpStoreLocal, idx) }
func (b *Builder) LoadGlobal(idx byte)     { b.emit(vm.OpLoadGlobal, idx) }
func (b *Builder) StoreGlobal(idx byte)    { b.emit(vm.OpStoreGlobal, idx) }
func (b *Builder) Dup()                    { b.emit(vm.OpDup) }
func (b *Builder) Pop()                    { b.emit(vm.OpPop) }
func (b *Builder) Is()                     { b.emit(vm.OpIs) }
func (b *Builder) End()                    { b.emit(vm.OpEnd) }

// Call emits CALL_N for numArgs explicit arguments (receiver not counted),
// per spec.md §6 (CALL_0 .. CALL_10).
func (b *Builder) Call(numArgs int, sym byte) {
	if numArgs < 0 || numArgs > vm.MaxCallArity {
		panic("call arity out of range")
	}
	b.emit(vm.OpCall0+vm.Opcode(numArgs), sym)
}

// Jump emits JUMP with a placeholder offset and returns the index of the
// operand byte, to be patched once the target is known.
func (b *Builder) Jump() int {
	b.emit(vm.OpJump, 0)
	return len(b.code) - 1
}

// JumpIf emits JUMP_IF with a placeholder offset, see Jump.
func (b *Builder) JumpIf() int {
	b.emit(vm.OpJumpIf, 0)
	return len(b.code) - 1
}

// PatchJump fills in the operand at operandPos (as returned by Jump or
// JumpIf) so it jumps to the current end of the instruction stream.
// Offsets are forward-only single bytes (spec.md §6).
func (b *Builder) PatchJump(operandPos int) {
	offset := len(b.code) - operandPos - 1
	if offset < 0 || offset > 0xFF {
		panic("jump offset out of range")
	}
	b.code[operandPos] = byte(offset)
}

// Finish allocates the assembled function on vm's heap.
func (b *Builder) Finish(m *vm.VM) *vm.Fn {
	return m.Heap.NewFn(m, b.name, b.code, b.constants)
}
