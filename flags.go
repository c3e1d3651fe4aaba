package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"ImageToBinary/structs"
)

// optionalBool remembers whether a command line flag touched the value, so
// the configuration file only supplies what the flags leave alone.
type optionalBool struct {
	value bool
	set   bool
}

// boolSetter is a boolean flag that writes value (or its negation for
// -flag=false) into a shared target. Several flags can share one target;
// the last one on the command line wins.
type boolSetter struct {
	target *optionalBool
	value  bool
}

func (b boolSetter) IsBoolFlag() bool { return true }

func (b boolSetter) String() string {
	if b.target == nil {
		return "false"
	}
	return strconv.FormatBool(b.target.set && b.target.value == b.value)
}

func (b boolSetter) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.target.value = b.value == on
	b.target.set = true
	return nil
}

// formatFlag keeps the first format given and warns about any later one on
// warn, or through log when warn is nil.
type formatFlag struct {
	opts structs.ConversionOptions
	set  bool
	warn io.Writer
}

func (f *formatFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return f.opts.Format.String()
}

func (f *formatFlag) Set(s string) error {
	format, err := structs.ParseFormat(s)
	if err != nil {
		return err
	}
	opts, err := f.opts.WithFormat(format)
	var conflict *structs.OptionConflictError
	if errors.As(err, &conflict) {
		if f.warn == nil {
			log.Printf("Warning: %v", conflict)
		} else {
			fmt.Fprintf(f.warn, "Warning: %v\n", conflict)
		}
		return nil
	}
	if err != nil {
		return err
	}
	f.opts = opts
	f.set = f.set || format != structs.FormatNone
	return nil
}
