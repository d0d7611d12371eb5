package main

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/gowhite/internal/runeio"
)

// Opcode selects what an Instruction does.
type Opcode uint8

const (
	// Stack Manipulation
	OpPush      Opcode = iota // Blank Blank <number>
	OpDuplicate               // Blank Break Blank
	OpCopy                    // Blank Tab Blank <number>
	OpSwap                    // Blank Break Tab
	OpDiscard                 // Blank Break Break
	OpSlide                   // Blank Tab Break <number>

	// Arithmetic
	OpAdd      // Tab Blank Blank Blank
	OpSubtract // Tab Blank Blank Tab
	OpMultiply // Tab Blank Blank Break
	OpDivide   // Tab Blank Tab Blank
	OpModulo   // Tab Blank Tab Tab

	// Heap Access
	OpHeapStore    // Tab Tab Blank
	OpHeapRetrieve // Tab Tab Tab

	// Flow Control
	OpMark           // Break Blank Blank <label>
	OpCall           // Break Blank Tab <label>
	OpJump           // Break Blank Break <label>
	OpJumpIfZero     // Break Tab Blank <label>
	OpJumpIfNegative // Break Tab Tab <label>
	OpEndSubroutine  // Break Tab Break
	OpEndProgram     // Break Break Break

	// Input/Output
	OpOutputChar   // Tab Break Blank Blank
	OpOutputNumber // Tab Break Blank Tab
	OpReadChar     // Tab Break Tab Blank
	OpReadNumber   // Tab Break Tab Tab

	opMax
)

type argKind uint8

const (
	argNone argKind = iota
	argNumber
	argLabel
)

var opNames = [opMax]string{
	"push", "dup", "copy", "swap", "discard", "slide",
	"add", "sub", "mul", "div", "mod",
	"store", "retrieve",
	"mark", "call", "jump", "jz", "jn", "ret", "end",
	"putc", "putn", "getc", "getn",
}

var opArgs = [opMax]argKind{
	OpPush:           argNumber,
	OpCopy:           argNumber,
	OpSlide:          argNumber,
	OpMark:           argLabel,
	OpCall:           argLabel,
	OpJump:           argLabel,
	OpJumpIfZero:     argLabel,
	OpJumpIfNegative: argLabel,
}

func (op Opcode) String() string {
	if op < opMax {
		return opNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(op))
}

// Label names a position in the program; its characters are only ever
// spaces and tabs.
type Label string

func (l Label) String() string {
	if l == "" {
		return "ø"
	}
	return runeio.Mnemonic(string(l))
}

// Instruction is one decoded program instruction. Num is only meaningful
// for push, copy, and slide; Label only for mark and the jumps.
type Instruction struct {
	Op    Opcode
	Num   int32
	Label Label
}

func (in Instruction) String() string {
	if in.Op >= opMax {
		return in.Op.String()
	}
	switch opArgs[in.Op] {
	case argNumber:
		return in.Op.String() + "(" + strconv.Itoa(int(in.Num)) + ")"
	case argLabel:
		return in.Op.String() + "(" + in.Label.String() + ")"
	default:
		return in.Op.String()
	}
}

// Push returns an instruction that pushes n.
func Push(n int32) Instruction { return Instruction{Op: OpPush, Num: n} }

// Copy returns an instruction that copies the n-th stack item to the top.
func Copy(n int32) Instruction { return Instruction{Op: OpCopy, Num: n} }

// Slide returns an instruction that slides n items off the stack, keeping the top.
func Slide(n int32) Instruction { return Instruction{Op: OpSlide, Num: n} }

// Mark returns an instruction that marks a location with l.
func Mark(l Label) Instruction { return Instruction{Op: OpMark, Label: l} }

// Call returns an instruction that calls the subroutine at l.
func Call(l Label) Instruction { return Instruction{Op: OpCall, Label: l} }

// Jump returns an instruction that jumps to l.
func Jump(l Label) Instruction { return Instruction{Op: OpJump, Label: l} }

// JumpIfZero returns an instruction that jumps to l if the top of stack is 0.
func JumpIfZero(l Label) Instruction { return Instruction{Op: OpJumpIfZero, Label: l} }

// JumpIfNegative returns an instruction that jumps to l if the top of stack is negative.
func JumpIfNegative(l Label) Instruction { return Instruction{Op: OpJumpIfNegative, Label: l} }

// Simple returns an argument-less instruction.
func Simple(op Opcode) Instruction { return Instruction{Op: op} }
