package main

import (
	"io"
	"strconv"

	"github.com/jcorbin/gowhite/internal/flushio"
	"github.com/jcorbin/gowhite/internal/runeio"
)

type ioCore struct {
	in  io.RuneReader
	out flushio.WriteFlusher

	logfn func(mess string, args ...interface{})
}

// Close flushes any buffered output.
func (ioc *ioCore) Close() error {
	if ioc.out != nil {
		return ioc.out.Flush()
	}
	return nil
}

func (ioc ioCore) logf(mess string, args ...interface{}) {
	if ioc.logfn != nil {
		ioc.logfn(mess, args...)
	}
}

func (ioc *ioCore) withLogPrefix(prefix string) func() {
	logfn := ioc.logfn
	ioc.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		ioc.logfn = logfn
	}
}

// writeRune and writeNumber flush after every write, so output is visible
// as soon as it is emitted, even while the program keeps running.
func (ioc *ioCore) writeRune(r rune) error {
	if _, err := runeio.WriteRune(ioc.out, r); err != nil {
		return err
	}
	return ioc.out.Flush()
}

func (ioc *ioCore) writeNumber(n int32) error {
	var buf [11]byte
	if _, err := ioc.out.Write(strconv.AppendInt(buf[:0], int64(n), 10)); err != nil {
		return err
	}
	return ioc.out.Flush()
}

// readRune flushes output, so that any prompt is visible, before blocking
// on input.
func (ioc *ioCore) readRune() (rune, error) {
	if err := ioc.out.Flush(); err != nil {
		return 0, err
	}
	r, _, err := ioc.in.ReadRune()
	return r, err
}

func (ioc *ioCore) readLine() (string, error) {
	if err := ioc.out.Flush(); err != nil {
		return "", err
	}
	return runeio.ReadLine(ioc.in)
}
