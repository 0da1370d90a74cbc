package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// warnf writes a "Warning: ..." line to w.
func warnf(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "Warning: "+format+"\n", args...)
}

// infof writes a plain progress line to w.
func infof(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
