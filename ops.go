package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Each operation returns true only if the program should end.

//// Stack Manipulation

// Tokens            Name      Function
// Blank Blank n     push      push n
func (vm *VM) pushNum() bool { vm.push(vm.cur.Num); return false }

// Tokens            Name      Function
// Blank Break Blank dup       push a copy of the top of stack
func (vm *VM) dup() bool { vm.push(vm.peek()); return false }

// Tokens            Name      Function
// Blank Tab Blank n copy      push a copy of the n-th item down the stack
//
// Not yet implemented; decoded programs may contain it, but it halts.
func (vm *VM) copyNth() bool { vm.halt(errNotImplemented); return false }

// Tokens            Name      Function
// Blank Break Tab   swap      exchange the top two items
func (vm *VM) swap() bool {
	i := len(vm.stack) - 1
	if i < 1 {
		vm.halt(fmt.Errorf("%w: swap needs 2 values, have %v", errStackUnderflow, len(vm.stack)))
	}
	vm.stack[i], vm.stack[i-1] = vm.stack[i-1], vm.stack[i]
	return false
}

// Tokens            Name      Function
// Blank Break Break discard   pop and drop the top of stack
func (vm *VM) discard() bool { vm.pop(); return false }

// Tokens            Name      Function
// Blank Tab Break n slide     drop n items from under the top of stack
//
// Not yet implemented; decoded programs may contain it, but it halts.
func (vm *VM) slideN() bool { vm.halt(errNotImplemented); return false }

//// Arithmetic

// Every arithmetic operation pops left, then pops right, then pushes
// "left op right": the most recently pushed value is the left operand.
// Results wrap around at 32 bits.

// Tokens                Name   Function
// Tab Blank Blank Blank add    left + right
func (vm *VM) add() bool { left, right := vm.pop(), vm.pop(); vm.push(left + right); return false }

// Tokens                Name   Function
// Tab Blank Blank Tab   sub    left - right
func (vm *VM) sub() bool { left, right := vm.pop(), vm.pop(); vm.push(left - right); return false }

// Tokens                Name   Function
// Tab Blank Blank Break mul    left * right
func (vm *VM) mul() bool { left, right := vm.pop(), vm.pop(); vm.push(left * right); return false }

// Tokens                Name   Function
// Tab Blank Tab Blank   div    left / right, truncated
func (vm *VM) div() bool {
	left, right := vm.pop(), vm.pop()
	if right == 0 {
		vm.halt(divideError(left))
	}
	vm.push(left / right)
	return false
}

// Tokens                Name   Function
// Tab Blank Tab Tab     mod    remainder of left / right, truncated
func (vm *VM) mod() bool {
	left, right := vm.pop(), vm.pop()
	if right == 0 {
		vm.halt(divideError(left))
	}
	vm.push(left % right)
	return false
}

//// Heap Access

// Tokens          Name      Function
// Tab Tab Blank   store     pop value, pop address, store value at address
func (vm *VM) store() bool { val, addr := vm.pop(), vm.pop(); vm.stor(addr, val); return false }

// Tokens          Name      Function
// Tab Tab Tab     retrieve  pop address, push the value stored there
func (vm *VM) retrieve() bool { addr := vm.pop(); vm.push(vm.load(addr)); return false }

//// Flow Control

// Tokens                Name   Function
// Break Blank Blank l   mark   mark a location with l; does nothing when run
func (vm *VM) mark() bool { return false }

// Tokens                Name   Function
// Break Blank Tab l     call   push the instruction pointer, jump to l
func (vm *VM) call() bool { vm.push(int32(vm.ip)); vm.jump(vm.cur.Label); return false }

// Tokens                Name   Function
// Break Blank Break l   jump   jump to l
func (vm *VM) jumpTo() bool { vm.jump(vm.cur.Label); return false }

// Tokens                Name   Function
// Break Tab Blank l     jz     jump to l if the top of stack is zero; it is not popped
func (vm *VM) jz() bool {
	if vm.peek() == 0 {
		vm.jump(vm.cur.Label)
	}
	return false
}

// Tokens                Name   Function
// Break Tab Tab l       jn     jump to l if the top of stack is negative; it is not popped
func (vm *VM) jn() bool {
	if vm.peek() < 0 {
		vm.jump(vm.cur.Label)
	}
	return false
}

// Tokens                Name   Function
// Break Tab Break       ret    pop an address pushed by call, resume after it
func (vm *VM) ret() bool {
	addr := vm.pop()
	if addr < 0 || int(addr) >= len(vm.prog) {
		vm.halt(fmt.Errorf("%w %v", errInvalidReturn, addr))
	}
	vm.ip = int(addr)
	return false
}

// Tokens                Name   Function
// Break Break Break     end    end the program
func (vm *VM) end() bool { return true }

// Since call pushes the address of the call itself, and every instruction
// advances the pointer after it runs, ret lands on the instruction right
// after the call.

//// Input/Output

// Tokens                Name   Function
// Tab Break Blank Blank putc   pop a character code, write the character
func (vm *VM) putc() bool {
	val := vm.pop()
	r := rune(val)
	if !utf8.ValidRune(r) {
		vm.halt(fmt.Errorf("%w %v", errInvalidChar, val))
	}
	vm.haltif(vm.writeRune(r))
	return false
}

// Tokens                Name   Function
// Tab Break Blank Tab   putn   pop a number, write it in decimal
func (vm *VM) putn() bool { vm.haltif(vm.writeNumber(vm.pop())); return false }

// Tokens                Name   Function
// Tab Break Tab Blank   getc   read a character, push its code
func (vm *VM) getc() bool {
	r, err := vm.readRune()
	if err != nil {
		vm.halt(fmt.Errorf("reading a character: %w", err))
	}
	vm.push(int32(r))
	return false
}

// Tokens                Name   Function
// Tab Break Tab Tab     getn   read a line, push it parsed as a decimal number
func (vm *VM) getn() bool {
	line, err := vm.readLine()
	if err != nil {
		vm.halt(fmt.Errorf("reading line: %w", err))
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if err != nil {
		vm.halt(fmt.Errorf("%w: %v", errInvalidNumber, err))
	}
	vm.push(int32(n))
	return false
}

var opTable [opMax]func(vm *VM) bool

func init() {
	opTable = [...]func(vm *VM) bool{
		(*VM).pushNum,
		(*VM).dup,
		(*VM).copyNth,
		(*VM).swap,
		(*VM).discard,
		(*VM).slideN,

		(*VM).add,
		(*VM).sub,
		(*VM).mul,
		(*VM).div,
		(*VM).mod,

		(*VM).store,
		(*VM).retrieve,

		(*VM).mark,
		(*VM).call,
		(*VM).jumpTo,
		(*VM).jz,
		(*VM).jn,
		(*VM).ret,
		(*VM).end,

		(*VM).putc,
		(*VM).putn,
		(*VM).getc,
		(*VM).getn,
	}
}
