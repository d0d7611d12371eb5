package main

import (
	"context"
	"io"

	"github.com/jcorbin/gowhite/internal/panicerr"
)

// New creates a VM; without options it has an empty program, empty input,
// discarded output, and DefaultHeapSize heap cells.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run executes the program from its first instruction until it ends, or
// until an error halts it. A program that ends normally returns nil; any
// other halt returns a *ProgramError, leaving stack and heap as they were at
// the point of failure. The context is checked between instructions.
//
// Running the same VM again starts over with an empty stack and an all-zero
// heap.
func (vm *VM) Run(ctx context.Context) error {
	return panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
}

// IP returns the current instruction pointer.
func (vm *VM) IP() int { return vm.ip }

// Stack returns a copy of the data stack, bottom first.
func (vm *VM) Stack() []int32 { return append(make([]int32, 0, len(vm.stack)), vm.stack...) }

// Heap returns a copy of every heap cell.
func (vm *VM) Heap() []int32 {
	heap := make([]int32, vm.heap.Size)
	if err := vm.heap.LoadInto(0, heap); err != nil {
		// heap spans exactly [0, Size), so only a broken memory gets here
		panic(err)
	}
	return heap
}

// Program returns the VM's program.
func (vm *VM) Program() []Instruction { return vm.prog }

func WithProgram(prog []Instruction) VMOption { return withProgram(prog) }
func WithInput(r io.Reader) VMOption          { return withInput(r) }
func WithOutput(w io.Writer) VMOption         { return withOutput(w) }
func WithTee(w io.Writer) VMOption            { return withTee(w) }
func WithHeapSize(size int) VMOption          { return withHeapSize(size) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
