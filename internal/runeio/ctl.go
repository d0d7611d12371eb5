package runeio

import "strings"

// ControlRune represents a named control unicode codepoint.
type ControlRune struct {
	N string
	R rune
}

// C0Ctls contains the classic ASCII control characters.
var C0Ctls = [32]ControlRune{
	{"<NUL>", 0x00},
	{"<SOH>", 0x01},
	{"<STX>", 0x02},
	{"<ETX>", 0x03},
	{"<EOT>", 0x04},
	{"<ENQ>", 0x05},
	{"<ACK>", 0x06},
	{"<BEL>", 0x07},
	{"<BS>", 0x08},
	{"<HT>", 0x09},
	{"<NL>", 0x0A},
	{"<VT>", 0x0B},
	{"<NP>", 0x0C},
	{"<CR>", 0x0D},
	{"<SO>", 0x0E},
	{"<SI>", 0x0F},
	{"<DLE>", 0x10},
	{"<DC1>", 0x11},
	{"<DC2>", 0x12},
	{"<DC3>", 0x13},
	{"<DC4>", 0x14},
	{"<NAK>", 0x15},
	{"<SYN>", 0x16},
	{"<ETB>", 0x17},
	{"<CAN>", 0x18},
	{"<EM>", 0x19},
	{"<SUB>", 0x1A},
	{"<ESC>", 0x1B},
	{"<FS>", 0x1C},
	{"<GS>", 0x1D},
	{"<RS>", 0x1E},
	{"<US>", 0x1F},
}

// PseudoCtls provides the typical mnemonics for space and delete.
var PseudoCtls = [2]ControlRune{
	{"<SP>", 0x20},
	{"<DEL>", 0x7F},
}

// Name returns the mnemonic for a C0 control rune, space, or delete; it
// returns "" for any other rune.
func Name(r rune) string {
	switch {
	case 0 <= r && r < 0x20:
		return C0Ctls[r].N
	case r == 0x20:
		return PseudoCtls[0].N
	case r == 0x7F:
		return PseudoCtls[1].N
	}
	return ""
}

// Mnemonic renders s with every control rune, space, and delete replaced by
// its Name; other runes are written as-is.
func Mnemonic(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if name := Name(r); name != "" {
			sb.WriteString(name)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
