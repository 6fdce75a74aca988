package vm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/loxbytes/corelox/debug"
	e "github.com/loxbytes/corelox/errors"
	"github.com/sirupsen/logrus"
)

// VM owns a Chunk and a value stack and interprets one expression at a
// time. Its dispatch loop is the only place the stack is ever mutated.
type VM struct {
	chunk *Chunk
	ip    int
	stack []Value
}

func NewVM() *VM { return &VM{} }

func (vm *VM) push(val Value) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop() (last Value) {
	len_ := len(vm.stack)
	debug.Assertf(len_ > 0, "pop on an empty VM stack")
	vm.stack, last = vm.stack[:len_-1], vm.stack[len_-1]
	return
}

func (vm *VM) peek() Value { return vm.stack[len(vm.stack)-1] }

func (vm *VM) resetStack() { vm.stack = vm.stack[:0] }

// REPL reads lines from standard input via a readline editor (history,
// ctrl-D-as-EOF) and interprets each one, printing errors to stderr. It
// returns nil once EOF is signaled.
func (vm *VM) REPL() error {
	rl, err := readline.NewEx(&readline.Config{Prompt: ">> "})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case err != nil:
			return err
		}

		if _, ierr := vm.Interpret(line); ierr != nil {
			fmt.Fprintln(os.Stderr, ierr)
		}
	}
}

// Interpret compiles source and, on success, runs it. A CompileError
// leaves the VM untouched; a RuntimeError clears the value stack before
// being returned.
func (vm *VM) Interpret(source string) (Value, error) {
	parser := NewParser()
	chunk, err := parser.Compile(source)
	if err != nil {
		return nil, err
	}
	vm.chunk = chunk
	vm.ip = 0
	return vm.run()
}

func (vm *VM) run() (Value, error) {
	readByte := func() (res byte) {
		res = vm.chunk.code[vm.ip]
		vm.ip++
		return
	}

	for {
		if vm.ip >= len(vm.chunk.code) {
			logrus.Panicln("instruction pointer ran past the end of the chunk: the compiler must always emit a terminal Return")
		}

		if debug.TraceExecution() {
			logrus.Debugln(vm.stackTrace())
			instDump, _ := vm.chunk.DisassembleInst(vm.ip)
			logrus.Debugln(instDump)
		}

		switch inst := OpCode(readByte()); inst {
		case OpConstant:
			vm.push(vm.chunk.consts[readByte()])

		case OpNil:
			vm.push(VNil{})
		case OpTrue:
			vm.push(VBool(true))
		case OpFalse:
			vm.push(VBool(false))

		case OpNegate:
			res, ok := VNeg(vm.peek())
			if !ok {
				vm.resetStack()
				return nil, &e.RuntimeError{Line: vm.chunk.lines[vm.ip-1], Message: "Operand must be a number."}
			}
			vm.stack[len(vm.stack)-1] = res

		case OpNot:
			vm.stack[len(vm.stack)-1] = VBool(!VTruthy(vm.peek()))

		case OpAdd, OpSubtract, OpMultiply, OpDivide:
			rhs, lhs := vm.pop(), vm.pop()
			var res Value
			var ok bool
			switch inst {
			case OpAdd:
				res, ok = VAdd(lhs, rhs)
			case OpSubtract:
				res, ok = VSub(lhs, rhs)
			case OpMultiply:
				res, ok = VMul(lhs, rhs)
			case OpDivide:
				res, ok = VDiv(lhs, rhs)
			}
			if !ok {
				vm.resetStack()
				return nil, &e.RuntimeError{Line: vm.chunk.lines[vm.ip-1], Message: "Operands must be numbers."}
			}
			vm.push(res)

		case OpGreater, OpLess:
			rhs, lhs := vm.pop(), vm.pop()
			var res Value
			var ok bool
			if inst == OpGreater {
				res, ok = VGreater(lhs, rhs)
			} else {
				res, ok = VLess(lhs, rhs)
			}
			if !ok {
				vm.resetStack()
				return nil, &e.RuntimeError{Line: vm.chunk.lines[vm.ip-1], Message: "Operands must be numbers."}
			}
			vm.push(res)

		case OpEqual:
			rhs, lhs := vm.pop(), vm.pop()
			vm.push(VEq(lhs, rhs))

		case OpReturn:
			result := vm.pop()
			fmt.Printf("%s\n", result)
			return result, nil

		default:
			logrus.Panicln(fmt.Sprintf("unknown instruction '%d'", inst))
		}
	}
}

func (vm *VM) stackTrace() string {
	res := "          "
	for _, slot := range vm.stack {
		res += fmt.Sprintf("[ %s ]", slot)
	}
	return res
}
