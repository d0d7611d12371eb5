package main

import "math"

// instruction families, as named in decode errors
const (
	familyStack = "stack manipulation"
	familyArith = "arithmetic"
	familyHeap  = "heap access"
	familyIO    = "i/o"
	familyFlow  = "flow control"
)

// Decode turns a token stream into a program, one instruction at a time,
// reading tokens greedily without backtracking. Decoding stops at the first
// error, returning any instructions decoded before it along with a
// *DecodeError.
func Decode(src Source) (prog []Instruction, err error) {
	dec := decoder{src: src}
	defer func() {
		if e := recover(); e != nil {
			de, ok := e.(*DecodeError)
			if !ok {
				panic(e)
			}
			prog, err = dec.prog, de
		}
	}()
	for dec.pos < len(dec.src.Tokens) {
		dec.prog = append(dec.prog, dec.instruction())
	}
	return dec.prog, nil
}

// DecodeTokens decodes bare tokens, which have no source locations.
func DecodeTokens(toks ...Token) ([]Instruction, error) {
	return Decode(Source{Tokens: toks})
}

type decoder struct {
	src  Source
	pos  int
	prog []Instruction
}

func (dec *decoder) fail(family string, at int, err error) {
	de := &DecodeError{Offset: at, Family: family, Err: err}
	de.Location, _ = dec.src.Location(at)
	panic(de)
}

func (dec *decoder) next(family string) Token {
	if dec.pos >= len(dec.src.Tokens) {
		dec.fail(family, dec.pos, errPrematureEnd)
	}
	tok := dec.src.Tokens[dec.pos]
	dec.pos++
	return tok
}

// invalid fails on the token just read.
func (dec *decoder) invalid(family string, tok Token) {
	dec.fail(family, dec.pos-1, tokenError(tok))
}

func (dec *decoder) instruction() Instruction {
	switch dec.next("") {
	case Blank:
		return dec.stack()
	case Break:
		return dec.flow()
	}
	switch dec.next("") {
	case Blank:
		return dec.arithmetic()
	case Tab:
		return dec.heap()
	default:
		return dec.io()
	}
}

func (dec *decoder) stack() Instruction {
	const family = familyStack
	switch dec.next(family) {
	case Blank:
		return Push(dec.number(family))
	case Tab:
		switch tok := dec.next(family); tok {
		case Blank:
			return Copy(dec.number(family))
		case Break:
			return Slide(dec.number(family))
		default:
			dec.invalid(family, tok)
		}
	default:
		switch dec.next(family) {
		case Blank:
			return Simple(OpDuplicate)
		case Tab:
			return Simple(OpSwap)
		default:
			return Simple(OpDiscard)
		}
	}
	panic("unreachable")
}

func (dec *decoder) arithmetic() Instruction {
	const family = familyArith
	switch tok := dec.next(family); tok {
	case Blank:
		switch dec.next(family) {
		case Blank:
			return Simple(OpAdd)
		case Tab:
			return Simple(OpSubtract)
		default:
			return Simple(OpMultiply)
		}
	case Tab:
		switch tok := dec.next(family); tok {
		case Blank:
			return Simple(OpDivide)
		case Tab:
			return Simple(OpModulo)
		default:
			dec.invalid(family, tok)
		}
	default:
		dec.invalid(family, tok)
	}
	panic("unreachable")
}

func (dec *decoder) heap() Instruction {
	const family = familyHeap
	switch tok := dec.next(family); tok {
	case Blank:
		return Simple(OpHeapStore)
	case Tab:
		return Simple(OpHeapRetrieve)
	default:
		dec.invalid(family, tok)
	}
	panic("unreachable")
}

func (dec *decoder) io() Instruction {
	const family = familyIO
	switch tok := dec.next(family); tok {
	case Blank:
		switch tok := dec.next(family); tok {
		case Blank:
			return Simple(OpOutputChar)
		case Tab:
			return Simple(OpOutputNumber)
		default:
			dec.invalid(family, tok)
		}
	case Tab:
		switch tok := dec.next(family); tok {
		case Blank:
			return Simple(OpReadChar)
		case Tab:
			return Simple(OpReadNumber)
		default:
			dec.invalid(family, tok)
		}
	default:
		dec.invalid(family, tok)
	}
	panic("unreachable")
}

func (dec *decoder) flow() Instruction {
	const family = familyFlow
	switch dec.next(family) {
	case Blank:
		switch dec.next(family) {
		case Blank:
			return Mark(dec.label(family))
		case Tab:
			return Call(dec.label(family))
		default:
			return Jump(dec.label(family))
		}
	case Tab:
		switch dec.next(family) {
		case Blank:
			return JumpIfZero(dec.label(family))
		case Tab:
			return JumpIfNegative(dec.label(family))
		default:
			return Simple(OpEndSubroutine)
		}
	default:
		if tok := dec.next(family); tok != Break {
			dec.invalid(family, tok)
		}
		return Simple(OpEndProgram)
	}
}

// number reads a sign token, then binary digits up to a Break. Values that
// do not fit in 32 signed bits are an error.
func (dec *decoder) number(family string) int32 {
	start := dec.pos
	neg := false
	switch tok := dec.next(family); tok {
	case Blank:
	case Tab:
		neg = true
	default:
		dec.fail(family, start, signError(tok))
	}

	var mag uint64
	for tok := dec.next(family); tok != Break; tok = dec.next(family) {
		mag <<= 1
		if tok == Tab {
			mag |= 1
		}
		if mag > -math.MinInt32 {
			dec.fail(family, start, errOverflow)
		}
	}

	if neg {
		return int32(-int64(mag))
	}
	if mag > math.MaxInt32 {
		dec.fail(family, start, errOverflow)
	}
	return int32(mag)
}

// label reads Blank and Tab tokens up to a Break, as spaces and tabs.
func (dec *decoder) label(family string) Label {
	var buf []byte
	for tok := dec.next(family); tok != Break; tok = dec.next(family) {
		if tok == Tab {
			buf = append(buf, '\t')
		} else {
			buf = append(buf, ' ')
		}
	}
	return Label(buf)
}
