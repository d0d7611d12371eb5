package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tebeka/atexit"

	"github.com/jcorbin/gowhite/internal/logio"
)

func main() {
	ctx := context.Background()

	var log logio.Logger
	log.SetOutput(os.Stderr)

	var timeout time.Duration
	var trace, list, dump bool
	var heapSize int
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&list, "list", false, "print the decoded program and exit")
	flag.BoolVar(&dump, "dump", false, "dump VM state after the program ends")
	flag.IntVar(&heapSize, "heap-size", DefaultHeapSize, "number of heap cells")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] program.ws [more.ws ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		atexit.Exit(2)
	}

	// load closes every file once it has been read
	readers := make([]io.Reader, 0, flag.NArg())
	for _, name := range flag.Args() {
		f, err := os.Open(name)
		if err != nil {
			log.Errorf("%v", err)
			atexit.Exit(log.ExitCode())
		}
		readers = append(readers, f)
	}

	prog, err := load(readers...)
	if err != nil {
		log.Errorf("%v", err)
		atexit.Exit(log.ExitCode())
	}

	if list {
		log.ErrorIf(listProgram(os.Stdout, prog))
		atexit.Exit(log.ExitCode())
	}

	var opts = []VMOption{
		WithProgram(prog),
		WithHeapSize(heapSize),
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	vm := New(opts...)
	atexit.Register(func() { vm.Close() })

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		atexit.Register(cancel)
	}
	if err := vm.Run(ctx); err != nil {
		log.Errorf("%+v", err)
		vmDumper{vm: vm, out: os.Stderr}.dump()
	} else if dump {
		vmDumper{vm: vm, out: os.Stderr}.dump()
	}
	log.ErrorIf(vm.Close())
	atexit.Exit(log.ExitCode())
}

// load tokenizes and decodes program text from every reader, in order.
func load(readers ...io.Reader) ([]Instruction, error) {
	src, err := Tokenize(readers...)
	if err != nil {
		return nil, err
	}
	return Decode(src)
}
