package vm

import "github.com/fermian/wren/internal/value"

// Opcode is a single bytecode instruction. The numeric values match the
// table in spec.md §6; what the contract actually depends on is that
// OpCall0..OpCall10 stay contiguous, since dispatch computes the argument
// count as instruction-OpCall0.
type Opcode byte

const (
	OpConstant Opcode = iota // idx
	OpNull                   // --
	OpFalse                  // --
	OpTrue                   // --
	OpClass                  // --
	OpSubclass               // --
	OpMetaclass              // --
	OpMethod                 // symbol, constant-index
	OpLoadLocal              // idx
	OpStoreLocal             // idx
	OpLoadGlobal             // idx
	OpStoreGlobal            // idx
	OpDup                    // --
	OpPop                    // --
	OpCall0                  // symbol
	OpCall1
	OpCall2
	OpCall3
	OpCall4
	OpCall5
	OpCall6
	OpCall7
	OpCall8
	OpCall9
	OpCall10
	OpJump   // offset
	OpJumpIf // offset
	OpIs     // --
	OpEnd    // --
)

// MaxCallArity is the highest N in CALL_N (spec.md §6).
const MaxCallArity = 10

// Interpret pushes a new top-level frame for fn with zero arguments and
// runs the dispatch loop to completion, returning the value the top-level
// frame's END produces.
//
// Unlike the original C source (which exits the process on any fatal
// condition), this funnels every fatal condition — method-not-found,
// stack overflow, bad downcast, allocation failure — through a single
// recover site here and returns it as an error, per the REDESIGN FLAG in
// spec.md §7/§9 (see fault.go, DESIGN.md).
func Interpret(vm *VM, fn *Fn) (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*Fault); ok {
				err = f
				return
			}
			panic(r)
		}
	}()

	fiber := vm.fiber
	fiber.call(fn, 0)
	return run(vm, fiber), nil
}

// run is the dispatch loop proper: read one opcode, advance ip, execute.
// It never returns except via the OpEnd case that pops the outermost
// frame.
func run(vm *VM, fiber *Fiber) value.Value {
	for {
		frame := fiber.currentFrame()
		code := frame.fn.Code
		instruction := Opcode(code[frame.ip])
		frame.ip++

		switch {
		case instruction == OpConstant:
			idx := readArg(frame)
			fiber.push(frame.fn.Constants[idx])

		case instruction == OpNull:
			fiber.push(value.Null)
		case instruction == OpFalse:
			fiber.push(value.False)
		case instruction == OpTrue:
			fiber.push(value.True)

		case instruction == OpClass || instruction == OpSubclass:
			execDefineClass(vm, fiber, instruction == OpSubclass)

		case instruction == OpMetaclass:
			classObj := AsClass(fiber.peek())
			fiber.push(value.FromObj(classObj.Metaclass))

		case instruction == OpMethod:
			symbol := readArg(frame)
			constant := readArg(frame)
			classObj := AsClass(fiber.peek())
			body := AsFn(frame.fn.Constants[constant])
			classObj.Methods[symbol] = Method{Kind: MethodBlock, Fn: body}

		case instruction == OpLoadLocal:
			local := readArg(frame)
			fiber.push(fiber.stack[frame.stackStart+local])

		case instruction == OpStoreLocal:
			local := readArg(frame)
			fiber.stack[frame.stackStart+local] = fiber.peek()

		case instruction == OpLoadGlobal:
			global := readArg(frame)
			fiber.push(vm.globals[global])

		case instruction == OpStoreGlobal:
			global := readArg(frame)
			vm.globals[global] = fiber.peek()
			vm.globalsSet[global] = true

		case instruction == OpDup:
			fiber.push(fiber.peek())
		case instruction == OpPop:
			fiber.pop()

		case instruction >= OpCall0 && instruction <= OpCall10:
			execCall(vm, fiber, int(instruction-OpCall0)+1)

		case instruction == OpJump:
			offset := readArg(frame)
			frame.ip += offset

		case instruction == OpJumpIf:
			offset := readArg(frame)
			condition := fiber.pop()
			if condition.IsFalsey() {
				frame.ip += offset
			}

		case instruction == OpIs:
			classVal := fiber.pop()
			obj := fiber.pop()
			expected := AsClass(classVal)
			actual := vm.GetClass(obj)
			fiber.push(value.Bool(actual == expected))

		case instruction == OpEnd:
			result := fiber.pop()
			fiber.numFrames--
			if fiber.numFrames == 0 {
				return result
			}
			fiber.stack[frame.stackStart] = result
			fiber.stackSize = frame.stackStart + 1

		default:
			raise(BadDowncast, "unknown opcode %d", instruction)
		}
	}
}

func readArg(frame *Frame) int {
	b := frame.fn.Code[frame.ip]
	frame.ip++
	return int(b)
}

// execDefineClass implements CLASS and SUBCLASS (spec.md §4.F).
func execDefineClass(vm *VM, fiber *Fiber, isSubclass bool) {
	var superclass *Class
	if isSubclass {
		superclass = AsClass(fiber.pop())
	} else {
		superclass = vm.objectClass
	}

	classObj := vm.NewClass(superclass)

	// Assume the first class ever defined is Object.
	if vm.objectClass == nil {
		vm.objectClass = classObj
	}

	fiber.push(value.FromObj(classObj))
}

// execCall implements CALL_N's dispatch (spec.md §4.F): look up the
// receiver's class, then its method-table slot for symbol.
func execCall(vm *VM, fiber *Fiber, numArgs int) {
	frame := fiber.currentFrame()
	symbol := readArg(frame)

	receiver := fiber.stack[fiber.stackSize-numArgs]
	classObj := vm.GetClass(receiver)
	method := &classObj.Methods[symbol]

	switch method.Kind {
	case MethodNone:
		raise(MethodNotFound, "receiver %s does not implement method %q",
			Print(receiver), vm.Methods.Name(symbol))

	case MethodPrimitive:
		args := fiber.stack[fiber.stackSize-numArgs : fiber.stackSize]
		result := method.Prim(vm, fiber, args)
		if !result.IsNoValue() {
			fiber.stack[fiber.stackSize-numArgs] = result
			fiber.stackSize -= numArgs - 1
		}
		// If the primitive returned NoValue, it has already pushed a new
		// frame (spec.md §4.G); the next loop iteration runs the callee
		// without the interpreter touching the stack itself.

	case MethodBlock:
		fiber.call(method.Fn, numArgs)
	}
}
