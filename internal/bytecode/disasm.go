package bytecode

import (
	"fmt"
	"io"
	"strings"

	"github.com/fermian/wren/internal/vm"
)

// Disassemble writes a human-readable instruction listing for fn to w, one
// line per instruction: its byte offset, mnemonic, and operands. This
// restores dumpCode from original_source/src/vm.c — in the original left
// commented out as a debugging aid, promoted here to an always-available
// diagnostic reachable from the host CLI's "disasm" subcommand.
//
// Constants of kind Fn are disassembled recursively after the enclosing
// function, the way dumpCode recurses into OP_METHOD bodies.
func Disassemble(w io.Writer, fn *vm.Fn) {
	fmt.Fprintf(w, "== %s ==\n", displayName(fn))

	code := fn.Code
	var nested []*vm.Fn

	for ip := 0; ip < len(code); {
		op := vm.Opcode(code[ip])
		start := ip
		ip++

		name, operands := mnemonic(op)
		operandVals := make([]int, operands)
		for i := 0; i < operands; i++ {
			operandVals[i] = int(code[ip])
			ip++
		}

		fmt.Fprintf(w, "%04d  %-14s", start, name)
		for _, o := range operandVals {
			fmt.Fprintf(w, " %d", o)
		}

		switch op {
		case vm.OpConstant, vm.OpMethod:
			idx := operandVals[len(operandVals)-1]
			if idx < len(fn.Constants) {
				c := fn.Constants[idx]
				fmt.Fprintf(w, "  ; %s", vm.Print(c))
				if bodyFn, ok := c.AsObj(); ok {
					if f, ok := bodyFn.(*vm.Fn); ok {
						nested = append(nested, f)
					}
				}
			}
		case vm.OpJump, vm.OpJumpIf:
			offset := operandVals[0]
			fmt.Fprintf(w, "  ; -> %04d", ip+offset)
		}

		fmt.Fprintln(w)
	}

	for _, f := range nested {
		Disassemble(w, f)
	}
}

func displayName(fn *vm.Fn) string {
	if fn.Name == "" {
		return "<script>"
	}
	return fn.Name
}

// mnemonic returns an opcode's printed name and how many single-byte
// operands follow it, per the table in spec.md §6.
func mnemonic(op vm.Opcode) (string, int) {
	switch op {
	case vm.OpConstant:
		return "CONSTANT", 1
	case vm.OpNull:
		return "NULL", 0
	case vm.OpFalse:
		return "FALSE", 0
	case vm.OpTrue:
		return "TRUE", 0
	case vm.OpClass:
		return "CLASS", 0
	case vm.OpSubclass:
		return "SUBCLASS", 0
	case vm.OpMetaclass:
		return "METACLASS", 0
	case vm.OpMethod:
		return "METHOD", 2
	case vm.OpLoadLocal:
		return "LOAD_LOCAL", 1
	case vm.OpStoreLocal:
		return "STORE_LOCAL", 1
	case vm.OpLoadGlobal:
		return "LOAD_GLOBAL", 1
	case vm.OpStoreGlobal:
		return "STORE_GLOBAL", 1
	case vm.OpDup:
		return "DUP", 0
	case vm.OpPop:
		return "POP", 0
	case vm.OpJump:
		return "JUMP", 1
	case vm.OpJumpIf:
		return "JUMP_IF", 1
	case vm.OpIs:
		return "IS", 0
	case vm.OpEnd:
		return "END", 0
	default:
		if op >= vm.OpCall0 && op <= vm.OpCall0+vm.Opcode(vm.MaxCallArity) {
			return fmt.Sprintf("CALL_%d", op-vm.OpCall0), 1
		}
		return fmt.Sprintf("UNKNOWN(%d)", op), 0
	}
}

// Listing returns Disassemble's output as a string, for tests.
func Listing(fn *vm.Fn) string {
	var b strings.Builder
	Disassemble(&b, fn)
	return b.String()
}
