package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
	rowSize   int
}

func (dump vmDumper) dump() {
	if dump.rowSize == 0 {
		dump.rowSize = 8
	}
	fmt.Fprintf(dump.out, "# VM Dump\n")
	dump.dumpIP()
	dump.dumpLabels()
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	dump.dumpHeap()
}

func (dump vmDumper) dumpIP() {
	ip := dump.vm.ip
	if ip >= 0 && ip < len(dump.vm.prog) {
		fmt.Fprintf(dump.out, "  ip: %v %v\n", ip, dump.vm.prog[ip])
	} else {
		fmt.Fprintf(dump.out, "  ip: %v\n", ip)
	}
}

func (dump vmDumper) dumpLabels() {
	var sb strings.Builder
	sb.WriteString("  labels: [")
	for i, l := range dump.vm.labels.names {
		if i > 0 {
			sb.WriteByte(' ')
		}
		at, _ := dump.vm.labels.target(l)
		sb.WriteString(l.String())
		sb.WriteByte('@')
		sb.WriteString(strconv.Itoa(at))
	}
	sb.WriteString("]\n")
	io.WriteString(dump.out, sb.String())
}

// dumpHeap writes every heap cell, dump.rowSize to a line; runs of all-zero
// rows are collapsed into a single line. Rows past the last allocated page are
// all zero, and are not loaded.
func (dump vmDumper) dumpHeap() {
	size := int(dump.vm.heap.Size)
	alloc := int(dump.vm.heap.Allocated())
	fmt.Fprintf(dump.out, "# Heap [0, %v)\n", size)

	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(size))
	}

	row := make([]int32, dump.rowSize)
	var sb strings.Builder
	zeroFrom := -1
	flushZeros := func(end int) {
		if zeroFrom >= 0 {
			fmt.Fprintf(dump.out, "  @%*v-%v 0...\n", dump.addrWidth, zeroFrom, end-1)
			zeroFrom = -1
		}
	}
	for addr := 0; addr < size; addr += len(row) {
		if n := size - addr; n < len(row) {
			row = row[:n]
		}
		if addr >= alloc {
			if zeroFrom < 0 {
				zeroFrom = addr
			}
			continue
		}
		if err := dump.vm.heap.LoadInto(addr, row); err != nil {
			flushZeros(addr)
			fmt.Fprintf(dump.out, "  @%*v %v\n", dump.addrWidth, addr, err)
			continue
		}

		if allZero(row) {
			if zeroFrom < 0 {
				zeroFrom = addr
			}
			continue
		}
		flushZeros(addr)

		sb.Reset()
		fmt.Fprintf(&sb, "  @%*v", dump.addrWidth, addr)
		for _, val := range row {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(int(val)))
		}
		sb.WriteByte('\n')
		io.WriteString(dump.out, sb.String())
	}
	flushZeros(size)
}

func allZero(vals []int32) bool {
	for _, val := range vals {
		if val != 0 {
			return false
		}
	}
	return true
}

// listProgram writes one instruction per line, prefixed by its index.
func listProgram(out io.Writer, prog []Instruction) error {
	width := len(strconv.Itoa(len(prog)))
	for i, in := range prog {
		if _, err := fmt.Fprintf(out, "@%*v %v\n", width, i, in); err != nil {
			return err
		}
	}
	return nil
}
