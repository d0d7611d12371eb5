package runeio

import (
	"bufio"
	"io"
	"strings"
)

// Reader is an io.Reader that also supports reading runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

// NewReader returns a Reader from r; if r already implements, it is simply returned.
// Otherwise bufio.Reader is used to provide rune reading around the given reader.
// If the r implements Name() string, so will the returned Reader.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	rr := runeReader{r, bufio.NewReader(r)}
	if impl, ok := r.(interface{ Name() string }); ok {
		return namedRuneReader{rr, impl.Name()}
	}
	return rr
}

type runeReader struct {
	io.Reader
	io.RuneReader
}

type namedRuneReader struct {
	Reader
	name string
}

func (nr namedRuneReader) Name() string { return nr.name }

// ReadLine reads runes up to and including the next line feed, returning the
// line without it. A final line not terminated by a line feed is returned
// without error; io.EOF is only returned if no runes could be read.
func ReadLine(rr io.RuneReader) (string, error) {
	var sb strings.Builder
	for {
		r, _, err := rr.ReadRune()
		if err == io.EOF && sb.Len() > 0 {
			return sb.String(), nil
		} else if err != nil {
			return sb.String(), err
		} else if r == '\n' {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}
