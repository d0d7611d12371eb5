package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gowhite/internal/logio"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name     string
	opts     []interface{}
	expect   []func(t *testing.T, vm *VM)
	timeout  time.Duration
	wantErr  error
	wantMess string

	exclusive bool
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withProgram(prog ...Instruction) vmTestCase {
	vmt.opts = append(vmt.opts, WithProgram(prog))
	return vmt
}

// withSource decodes whitespace program text, failing the test if it does
// not decode.
func (vmt vmTestCase) withSource(text string) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		src, err := Tokenize(strings.NewReader(text))
		require.NoError(t, err, "must tokenize program")
		prog, err := Decode(src)
		require.NoError(t, err, "must decode program")
		return WithProgram(prog)
	})
	return vmt
}

func (vmt vmTestCase) withStack(values ...int32) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	}))
	return vmt
}

func (vmt vmTestCase) withHeapSize(size int) vmTestCase {
	vmt.opts = append(vmt.opts, WithHeapSize(size))
	return vmt
}

func (vmt vmTestCase) withHeapAt(addr int, values ...int32) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return optFunc(func(vm *VM) {
			require.NoError(t, vm.heap.Stor(addr, values...), "must stor @%v", addr)
		})
	})
	return vmt
}

func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.opts = append(vmt.opts, WithInput(strings.NewReader(input)))
	return vmt
}

func (vmt vmTestCase) withRuneReader(rr io.RuneReader) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.in = rr
	}))
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectHalt(mess string) vmTestCase {
	vmt.wantMess = mess
	return vmt
}

func (vmt vmTestCase) expectIP(ip int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, ip, vm.IP(), "expected instruction pointer")
	})
	return vmt
}

func (vmt vmTestCase) expectStack(values ...int32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int32{}
		}
		assert.Equal(t, values, vm.Stack(), "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectHeapAt(addr int, values ...int32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		buf := make([]int32, len(values))
		if assert.NoError(t, vm.heap.LoadInto(addr, buf), "unexpected heap load error") {
			assert.Equal(t, values, buf, "expected heap values @%v", addr)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}})
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	// trace every run, but only show it when the test fails
	var trace strings.Builder
	tl := lineLogger{Writer: &trace}
	defer func() {
		if t.Failed() {
			lw := logio.Writer{Logf: t.Logf}
			io.WriteString(&lw, trace.String())
			lw.Close()
		}
	}()

	vm := vmt.buildVM(t)
	WithLogf(tl.printf).apply(vm)
	vmt.runVMTest(context.Background(), t, vm)
}

func (vmt vmTestCase) runVMTest(ctx context.Context, t *testing.T, vm *VM) {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	err := vmt.runVM(ctx, vm)
	if vmt.wantErr != nil || vmt.wantMess != "" {
		if !assert.Error(t, err, "expected VM error") {
			return
		}
		if vmt.wantErr != nil {
			assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
		}
		if vmt.wantMess != "" {
			assert.EqualError(t, err, vmt.wantMess, "expected error message")
		}
		var pe *ProgramError
		assert.True(t, errors.As(err, &pe), "expected a *ProgramError, got %T", err)
	} else {
		assert.NoError(t, err, "unexpected VM run error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()
	return vm.Run(ctx)
}

func (vmt vmTestCase) buildVM(t *testing.T) *VM {
	var opt VMOption
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opt = VMOptions(opt, impl(&vmt, t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opt)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

type lineLogger struct {
	io.Writer
	prior bool
}

func (ll *lineLogger) printf(mess string, args ...interface{}) {
	if ll.prior {
		io.WriteString(ll.Writer, "\n")
	} else {
		ll.prior = true
	}
	fmt.Fprintf(ll.Writer, mess, args...)
}
