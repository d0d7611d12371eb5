package runeio_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing/iotest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jcorbin/gowhite/internal/runeio"
)

var _ = Describe("NewReader", func() {
	It("should pass through rune readers", func() {
		r := strings.NewReader("abc")
		Expect(runeio.NewReader(r)).To(BeIdenticalTo(r))
	})

	It("should buffer plain readers", func() {
		rr := runeio.NewReader(iotest.OneByteReader(strings.NewReader("ü!")))
		r, n, err := rr.ReadRune()
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(Equal('ü'))
		Expect(n).To(Equal(2))
	})

	It("should retain reader names", func() {
		f, err := os.Open(os.DevNull)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		rr := runeio.NewReader(struct {
			io.Reader
			name
		}{f, "prog.ws"})
		named, ok := rr.(interface{ Name() string })
		Expect(ok).To(BeTrue())
		Expect(named.Name()).To(Equal("prog.ws"))
	})
})

type name string

func (n name) Name() string { return string(n) }

var _ = Describe("ReadLine", func() {
	It("should read lines without their line feed", func() {
		rr := bufio.NewReader(strings.NewReader("42\n-7\r\nlast"))

		Expect(runeio.ReadLine(rr)).To(Equal("42"))
		Expect(runeio.ReadLine(rr)).To(Equal("-7\r"))
		Expect(runeio.ReadLine(rr)).To(Equal("last"))

		_, err := runeio.ReadLine(rr)
		Expect(err).To(MatchError(io.EOF))
	})

	It("should read empty lines", func() {
		rr := strings.NewReader("\n")
		Expect(runeio.ReadLine(rr)).To(Equal(""))
	})

	It("should return read errors", func() {
		boom := errors.New("boom")
		rr := bufio.NewReader(io.MultiReader(
			strings.NewReader("12"),
			iotest.ErrReader(boom),
		))
		line, err := runeio.ReadLine(rr)
		Expect(err).To(MatchError(boom))
		Expect(line).To(Equal("12"))
	})
})

var _ = Describe("WriteRune", func() {
	DescribeTable("encodes runes as utf8",
		func(r rune, want string) {
			var buf bytes.Buffer
			n, err := runeio.WriteRune(&buf, r)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(len(want)))
			Expect(buf.String()).To(Equal(want))

			// same through a plain writer
			var plain bytes.Buffer
			_, err = runeio.WriteRune(struct{ io.Writer }{&plain}, r)
			Expect(err).NotTo(HaveOccurred())
			Expect(plain.String()).To(Equal(want))
		},
		Entry("ascii", 'H', "H"),
		Entry("line feed", '\n', "\n"),
		Entry("latin", 'é', "é"),
		Entry("astral", '🙂', "🙂"),
	)
})

var _ = Describe("Mnemonic", func() {
	It("should name whitespace", func() {
		Expect(runeio.Name(' ')).To(Equal("<SP>"))
		Expect(runeio.Name('\t')).To(Equal("<HT>"))
		Expect(runeio.Name('\n')).To(Equal("<NL>"))
		Expect(runeio.Name(0x7f)).To(Equal("<DEL>"))
		Expect(runeio.Name('x')).To(Equal(""))
	})

	It("should render strings", func() {
		Expect(runeio.Mnemonic(" \t x")).To(Equal("<SP><HT><SP>x"))
		Expect(runeio.Mnemonic("")).To(Equal(""))
	})
})
