/* Package main: a Whitespace interpreter

Whitespace programs are written with only three characters: space, tab, and
line feed. Every other character is a comment. We call the three meaningful
characters tokens, and name them Blank, Tab, and Break respectively.

A program is a flat sequence of instructions. Each instruction starts with a
short prefix selecting its family, followed by a few more tokens selecting
the instruction within that family, followed by any argument:

	Prefix       Family
	Blank        Stack Manipulation
	Tab Blank    Arithmetic
	Tab Tab      Heap Access
	Tab Break    Input/Output
	Break        Flow Control

Arguments come in two kinds. Numbers are a sign token (Blank for positive,
Tab for negative) followed by binary digits (Blank 0, Tab 1), most
significant first, terminated by a Break. Labels are any sequence of Blank
and Tab tokens terminated by a Break; they name a position in the program,
and are only ever compared for equality.

Section 1: see token.go and decode.go for turning source text into
instructions.

Section 2: see vm.go and ops.go for the machine that runs them.

The machine has three pieces of state besides its instruction pointer:
"the stack", "the heap", and "the label table".  The stack is a LIFO of
signed 32-bit integers, used implicitly by nearly every instruction, and
also to hold return addresses for subroutine calls.  The heap is a fixed
size array of signed 32-bit integers, all zero initially, addressed by
index.  The label table maps every label marked in the program to the
index of its mark; it is built once before the program starts.

Any error halts the machine where it stands, leaving the stack and heap as
they were at the point of failure for diagnosis; see dumper.go.

*/
package main
