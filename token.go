package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/gowhite/internal/fileinput"
)

// Token is one of the three characters that carry meaning in a program.
type Token uint8

const (
	Blank Token = iota // space
	Tab                // horizontal tab
	Break              // line feed
)

var tokenNames = [...]string{"Blank", "Tab", "Break"}
var tokenRunes = [...]rune{' ', '\t', '\n'}

func (tok Token) String() string {
	if int(tok) < len(tokenNames) {
		return tokenNames[tok]
	}
	return fmt.Sprintf("Token(%d)", uint8(tok))
}

func tokenFor(r rune) (Token, bool) {
	switch r {
	case ' ':
		return Blank, true
	case '\t':
		return Tab, true
	case '\n':
		return Break, true
	}
	return 0, false
}

// Source is a tokenized program, along with the location of each token.
// Locations may be nil, as when decoding tokens that did not come from text.
type Source struct {
	Tokens    []Token
	Locations []fileinput.Location
}

// Tokenize reads all of the given readers in order, keeping only the
// meaningful characters as tokens. Readers that implement io.Closer are
// closed once read.
func Tokenize(readers ...io.Reader) (src Source, err error) {
	in := fileinput.Input{Queue: readers}
	defer func() {
		if cerr := in.Close(); err == nil {
			err = cerr
		}
	}()
	for {
		r, _, rerr := in.ReadRune()
		if rerr == io.EOF {
			return src, nil
		} else if rerr != nil {
			return src, fmt.Errorf("%v: %w", in.Last, rerr)
		}
		if tok, ok := tokenFor(r); ok {
			src.Tokens = append(src.Tokens, tok)
			src.Locations = append(src.Locations, in.Last)
		}
	}
}

// Location returns the source location of the i-th token, if known.
func (src Source) Location(i int) (fileinput.Location, bool) {
	if i >= 0 && i < len(src.Locations) {
		return src.Locations[i], true
	}
	return fileinput.Location{}, false
}

// String renders the tokens back into program text.
func (src Source) String() string {
	buf := make([]rune, len(src.Tokens))
	for i, tok := range src.Tokens {
		buf[i] = tokenRunes[tok]
	}
	return string(buf)
}
