package main

import (
	"io"
	"strings"

	"github.com/jcorbin/gowhite/internal/flushio"
	"github.com/jcorbin/gowhite/internal/mem"
	"github.com/jcorbin/gowhite/internal/runeio"
)

// DefaultHeapSize is the number of heap cells when WithHeapSize is not given.
const DefaultHeapSize = 1024

// VMOption configures a VM.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withInput(strings.NewReader("")),
	withOutput(io.Discard),
	withHeapSize(DefaultHeapSize),
)

// VMOptions combines any number of options, applied in order; nils are
// ignored.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type programOption []Instruction
type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type heapSizeOption int

func withProgram(prog []Instruction) programOption { return programOption(prog) }
func withInput(r io.Reader) inputOption            { return inputOption{r} }
func withOutput(w io.Writer) outputOption          { return outputOption{w} }
func withTee(w io.Writer) teeOption                { return teeOption{w} }
func withHeapSize(size int) heapSizeOption         { return heapSizeOption(size) }

func (prog programOption) apply(vm *VM) {
	vm.prog = prog
}

func (i inputOption) apply(vm *VM) {
	vm.in = runeio.NewReader(i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

// A non-positive size selects DefaultHeapSize; any cells already stored are
// discarded.
func (size heapSizeOption) apply(vm *VM) {
	if size <= 0 {
		size = DefaultHeapSize
	}
	vm.heap = mem.Cells{}
	vm.heap.Size = uint(size)
}
