package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f in a new goroutine, converting any abnormal exit into a
// non-nil error return:
// - a Halt panic returns its wrapped error (which may be nil)
// - any other panic returns an error that retains the panic value and stack
// - runtime.Goexit returns an error naming the exit
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExit(name, errch)
		defer recoverPanic(name, errch)
		errch <- f()
	}()
	return <-errch
}

// Halt may be panicked by code running under Recover to unwind with a
// normal error return, rather than a panic error.
type Halt struct{ Err error }

func (h Halt) Error() string {
	if h.Err != nil {
		return fmt.Sprintf("halted: %v", h.Err)
	}
	return "halted"
}

func (h Halt) Unwrap() error { return h.Err }

func recoverPanic(name string, errch chan<- error) {
	e := recover()
	if e == nil {
		return
	}
	var err error
	if h, ok := e.(Halt); ok {
		err = h.Err
	} else {
		err = panicError{name, e, debug.Stack()}
	}
	select {
	case errch <- err:
	default:
	}
}

func recoverExit(name string, errch chan<- error) {
	select {
	case errch <- exitError(name):
	default:
		// happy path (and recoverPanic) already sent
	}
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "paniced: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}

// IsPanic returns true if err indicates a recovered goroutine panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns a non-empty stacktrace string if err is a recovered
// goroutine panic.
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
