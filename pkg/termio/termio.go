// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package termio is the output boundary of the dispatch core: a small Sink
// interface, a colorizing console implementation, and an in-memory buffer for
// tests.
package termio

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Sink receives the core's user-facing output. Implementations are not
// required to be safe for concurrent use; the core writes from a single
// invocation at a time.
type Sink interface {
	WriteLine(s string)
	WriteError(s string)
}

// Console writes lines to stdout and errors to stderr, coloring errors red
// when stderr is a terminal, NO_COLOR is unset, and TERM is not dumb.
type Console struct {
	Stdout io.Writer
	Stderr io.Writer

	errColor *color.Color
}

// NewConsole returns a Console bound to the process streams.
func NewConsole() *Console {
	c := &Console{Stdout: os.Stdout, Stderr: os.Stderr}
	if colorEnabled() {
		c.errColor = color.New(color.FgRed)
	}
	return c
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// WriteLine implements Sink.
func (c *Console) WriteLine(s string) {
	fmt.Fprintln(c.Stdout, s)
}

// WriteError implements Sink.
func (c *Console) WriteError(s string) {
	if c.errColor != nil {
		c.errColor.Fprintln(c.Stderr, s)
		return
	}
	fmt.Fprintln(c.Stderr, s)
}

// Buffer is an in-memory Sink that records every line, useful in tests and
// for hosts that capture output.
type Buffer struct {
	Lines  []string
	Errors []string
}

// WriteLine implements Sink.
func (b *Buffer) WriteLine(s string) {
	b.Lines = append(b.Lines, s)
}

// WriteError implements Sink.
func (b *Buffer) WriteError(s string) {
	b.Errors = append(b.Errors, s)
}
