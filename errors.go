package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcorbin/gowhite/internal/fileinput"
)

// DecodeError reports a malformed program: an invalid token within an
// instruction family, a malformed literal, or premature end of input.
type DecodeError struct {
	Offset   int                // index of the offending token
	Location fileinput.Location // source location, zero if unknown
	Family   string             // instruction family being decoded, if known
	Err      error
}

func (de *DecodeError) Error() string {
	var sb strings.Builder
	if de.Location.Line > 0 {
		sb.WriteString(de.Location.String())
	} else {
		fmt.Fprintf(&sb, "token #%v", de.Offset)
	}
	sb.WriteString(": ")
	if de.Family != "" {
		sb.WriteString("invalid ")
		sb.WriteString(de.Family)
		sb.WriteString(" instruction: ")
	}
	sb.WriteString(de.Err.Error())
	return sb.String()
}

func (de *DecodeError) Unwrap() error { return de.Err }

// ProgramError reports a failure while executing a decoded program.
type ProgramError struct {
	IP    int          // instruction pointer at the time of failure
	Instr *Instruction // nil if no instruction could be fetched
	Err   error
}

func (pe *ProgramError) Error() string {
	if pe.Instr == nil {
		return fmt.Sprintf("@%v: %v", pe.IP, pe.Err)
	}
	return fmt.Sprintf("@%v %v: %v", pe.IP, pe.Instr, pe.Err)
}

func (pe *ProgramError) Unwrap() error { return pe.Err }

var (
	errPrematureEnd = errors.New("premature end of input")
	errOverflow     = errors.New("number overflows 32 bits")

	errNoMoreInstructions = errors.New("no more instructions")
	errNotImplemented     = errors.New("not implemented")
	errEmptyPop           = errors.New("empty stack during pop")
	errEmptyPeek          = errors.New("empty stack during peek")
	errStackUnderflow     = errors.New("stack underflow")
	errHeapOverflow       = errors.New("heap overflow")
	errInvalidChar        = errors.New("invalid character")
	errInvalidNumber      = errors.New("invalid number")
	errInvalidReturn      = errors.New("invalid return address")
)

type tokenError Token
type signError Token
type labelError Label
type divideError int32
type codeError Opcode

func (tok tokenError) Error() string { return fmt.Sprintf("unexpected %v", Token(tok)) }
func (tok signError) Error() string  { return fmt.Sprintf("invalid sign specifier %v", Token(tok)) }
func (l labelError) Error() string   { return fmt.Sprintf("label %v not found", Label(l)) }
func (n divideError) Error() string  { return fmt.Sprintf("trying to divide %v by zero", int32(n)) }
func (op codeError) Error() string   { return fmt.Sprintf("invalid opcode %v", uint8(op)) }
