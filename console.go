package main

import (
	"fmt"
	"io"
)

const (
	ansiReset   = "\033[0m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiDim     = "\033[2m"
	ansiBrightR = "\033[91m"
)

// console prints the per-file report, coloured unless plain is set.
type console struct {
	out   io.Writer
	err   io.Writer
	plain bool
}

func (c *console) paint(w io.Writer, colour, msg string) {
	if c.plain {
		fmt.Fprint(w, msg)
		return
	}
	fmt.Fprint(w, colour+msg+ansiReset)
}

// highlight prints name uncoloured in the middle of a coloured line.
func (c *console) highlight(w io.Writer, colour, before, name, after string) {
	if c.plain {
		fmt.Fprint(w, before+name+after)
		return
	}
	fmt.Fprint(w, colour+before+ansiReset+name+colour+after+ansiReset)
}

func (c *console) success(before, name, after string) {
	c.highlight(c.out, ansiGreen, before, name, after)
}

func (c *console) failure(before, name, after string) {
	c.highlight(c.err, ansiRed, before, name, after)
}

func (c *console) info(msg string) { c.paint(c.err, ansiDim, msg) }

func (c *console) warn(msg string) { c.paint(c.err, ansiBrightR, msg) }
