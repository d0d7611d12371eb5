package fileinput

import (
	"fmt"
	"io"

	"github.com/jcorbin/gowhite/internal/runeio"
)

// Location names a position within an Input file; Line and Column are 1-based.
type Location struct {
	Name   string
	Line   int
	Column int
}

func (loc Location) String() string {
	if loc.Name == "" && loc.Line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Column)
}

// Input implements sequential rune reading through a Queue of one or more
// input streams, tracking the Location of the last rune read.
type Input struct {
	Queue []io.Reader

	// Last is the location of the rune most recently returned by ReadRune.
	Last Location

	cur  io.Reader
	rr   io.RuneReader
	next Location
}

// ReadRune reads one rune from the current input stream, moving on to the
// next queued stream at io.EOF. Returns io.EOF only once every queued stream
// has been exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}

		r, n, err := in.rr.ReadRune()
		if err == io.EOF {
			in.closeIn()
			continue
		} else if err != nil {
			return r, n, err
		}

		in.Last = in.next
		if r == '\n' {
			in.next.Line++
			in.next.Column = 1
		} else {
			in.next.Column++
		}
		return r, n, nil
	}
}

// Close closes any remaining input streams that implement io.Closer.
func (in *Input) Close() (err error) {
	in.closeIn()
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeIn() {
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur, in.rr = nil, nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.cur, in.rr = r, runeio.NewReader(r)
		in.next = Location{Name: nameOf(r), Line: 1, Column: 1}
	}
	return in.rr != nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
