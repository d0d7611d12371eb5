// gen_vm_expects writes a wrapper function for every expectation method of a
// test case builder type, so that expectations can be passed around as
// values (e.g. to vmTestCase.apply).
//
// Usage: go run scripts/gen_vm_expects.go -- vm_test.go vm_expects_test.go
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout

	recvType   = flag.String("type", "vmTestCase", "builder type whose methods to wrap")
	methodBase = flag.String("base", "expect", "method name prefix to wrap")
	wrapInfix  = flag.String("infix", "VM", "inserted after the prefix in wrapper names")
	formatter  = flag.String("fmt", "goimports", "command used to format the output")
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	// pipe everything through the formatter, which writes the final output
	eg.Go(func() error {
		format := exec.CommandContext(ctx, *formatter)
		pipe, err := format.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		format.Stdout = out
		format.Stderr = os.Stderr

		out = pipe

		close(ready)
		if err := format.Run(); err != nil {
			return fmt.Errorf("%v run failed: %w", *formatter, err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		gen := wrapperGen{
			recv:  *recvType,
			base:  *methodBase,
			infix: *wrapInfix,
		}
		return gen.run(ctx, in, out)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

type wrapperGen struct {
	recv  string
	base  string
	infix string

	pattern *regexp.Regexp
	buf     bytes.Buffer
}

func (gen *wrapperGen) header(source string) {
	gen.buf.WriteString("package main\n\n")
	gen.buf.WriteString("// @generated from ")
	gen.buf.WriteString(source)
	gen.buf.WriteString("\n\n")
	if args := flag.Args(); len(args) >= 2 {
		gen.buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			gen.buf.WriteByte(' ')
			gen.buf.WriteString(arg)
		}
		gen.buf.WriteString("\n\n")
	}
}

// wrap writes a wrapper for the method named base+what; methods that take
// no arguments are matched out by the pattern.
func (gen *wrapperGen) wrap(what, params []byte) {
	fmt.Fprintf(&gen.buf, "func %s%s%s(%s) func(%s) %s {\n",
		gen.base, gen.infix, what, params, gen.recv, gen.recv)
	fmt.Fprintf(&gen.buf, "\treturn func(vmt %s) %s {\n", gen.recv, gen.recv)
	fmt.Fprintf(&gen.buf, "\t\treturn vmt.%s%s(", gen.base, what)
	for i, param := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			gen.buf.WriteString(", ")
		}
		fields := bytes.Fields(param)
		gen.buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			gen.buf.WriteString("...")
		}
	}
	gen.buf.WriteString(")\n\t}\n}\n\n")
}

func (gen *wrapperGen) run(ctx context.Context, in namedReader, out io.Writer) error {
	gen.pattern = regexp.MustCompile(fmt.Sprintf(
		`^func \(vmt %s\) %s(.+?)\((.+?)\) %s`,
		regexp.QuoteMeta(gen.recv), regexp.QuoteMeta(gen.base), regexp.QuoteMeta(gen.recv)))
	gen.buf.Grow(1024)
	gen.header(in.Name())

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := gen.pattern.FindSubmatch(sc.Bytes()); len(match) > 0 {
			gen.wrap(match[1], match[2])
		}
		if gen.buf.Len() > 0 {
			if _, err := gen.buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}
