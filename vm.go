package main

import (
	"context"
	"fmt"

	"github.com/jcorbin/gowhite/internal/mem"
	"github.com/jcorbin/gowhite/internal/panicerr"
)

// VM executes a decoded program. It exclusively owns its stack, heap, and
// label table for its entire lifetime.
type VM struct {
	ioCore

	prog []Instruction
	ip   int         // instruction pointer
	cur  Instruction // instruction being executed

	// The label table is built by scanning the whole program once, before
	// the first instruction executes; it does not change after that.
	labels labelTable

	// The stack holds operands, and also return addresses for calls.
	stack []int32

	// The heap is a fixed number of cells, all initially zero; addressing
	// outside of it halts the VM, rather than growing or clamping.
	heap mem.Cells

	ran bool
}

func (vm *VM) run(ctx context.Context) error {
	vm.init()
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}
	for !vm.step() {
		if err := ctx.Err(); err != nil {
			vm.fault(err)
		}
	}
	vm.logf("end @%v", vm.ip)
	return vm.out.Flush()
}

func (vm *VM) init() {
	// stack and heap set up before the first run are kept
	if vm.ran {
		vm.stack = vm.stack[:0]
		vm.heap = mem.Cells{PagedCore: mem.PagedCore{
			PageSize: vm.heap.PageSize,
			Size:     vm.heap.Size,
		}}
	}
	vm.ran = true
	vm.ip = 0
	vm.labels.reset()
	for i, in := range vm.prog {
		if in.Op != OpMark {
			continue
		}
		if prior, redefined := vm.labels.mark(in.Label, i); redefined {
			vm.logf("mark %v @%v replaces @%v", in.Label, i, prior)
		} else {
			vm.logf("mark %v @%v", in.Label, i)
		}
	}
}

// step executes the instruction at the instruction pointer, returning true if
// the program ended. The pointer advances by one after every instruction, even
// ones that just set it.
func (vm *VM) step() bool {
	if vm.ip < 0 || vm.ip >= len(vm.prog) {
		vm.fault(errNoMoreInstructions)
	}
	vm.cur = vm.prog[vm.ip]
	if vm.cur.Op >= opMax {
		vm.halt(codeError(vm.cur.Op))
	}
	if vm.logfn != nil {
		vm.logf("exec @%v %v -- s:%v", vm.ip, vm.cur, vm.stack)
	}
	if opTable[vm.cur.Op](vm) {
		return true
	}
	vm.ip++
	return false
}

// halt stops the VM with err, attributed to the current instruction.
func (vm *VM) halt(err error) {
	cur := vm.cur
	vm.stop(&ProgramError{IP: vm.ip, Instr: &cur, Err: err})
}

// fault stops the VM with err, when there is no instruction to blame.
func (vm *VM) fault(err error) {
	vm.stop(&ProgramError{IP: vm.ip, Err: err})
}

func (vm *VM) stop(err error) {
	// flush whatever output the program made before failing; any flush error
	// is secondary to the halt cause
	if ferr := vm.out.Flush(); ferr != nil {
		vm.logf("flush error: %v", ferr)
	}
	vm.logf("halt error: %v", err)
	panic(panicerr.Halt{Err: err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

func (vm *VM) push(val int32) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop() (val int32) {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(errEmptyPop)
	}
	val, vm.stack = vm.stack[i], vm.stack[:i]
	return val
}

func (vm *VM) peek() int32 {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(errEmptyPeek)
	}
	return vm.stack[i]
}

func (vm *VM) jump(l Label) {
	at, defined := vm.labels.target(l)
	if !defined {
		vm.halt(labelError(l))
	}
	vm.ip = at
}

func (vm *VM) load(addr int32) int32 {
	val, err := vm.heap.Load(int(addr))
	if err != nil {
		vm.halt(fmt.Errorf("%w: %v", errHeapOverflow, err))
	}
	return val
}

func (vm *VM) stor(addr, val int32) {
	if err := vm.heap.Stor(int(addr), val); err != nil {
		vm.halt(fmt.Errorf("%w: %v", errHeapOverflow, err))
	}
}
