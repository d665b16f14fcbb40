// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package format renders parser events as JSON text.
package format

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jtok"
)

// flushSize is the amount of buffered output that triggers a write.
const flushSize = 4096

// A Writer is a jtok.Handler that writes the events it receives to an
// io.Writer as JSON text. The output is compact unless Indent is set.
//
// A Writer does not check that the events it receives are balanced; the
// parser guarantees that. Output is buffered: call Flush, or deliver EOF via
// jtok.Dispatch, to ensure it has all been written.
type Writer struct {
	w      io.Writer
	indent string
	buf    []byte
	stk    []frame
	key    bool // a field name was just written
	err    error
}

// frame records the state of an open object or array.
type frame struct {
	object bool
	n      int // number of elements or members written
}

// NewWriter constructs a Writer that writes to w. If indent is non-empty,
// each element of an object or array is written on its own line, prefixed by
// one copy of indent per level of nesting.
func NewWriter(w io.Writer, indent string) *Writer {
	return &Writer{w: w, indent: indent}
}

// Depth reports the number of objects and arrays currently open.
func (w *Writer) Depth() int { return len(w.stk) }

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	if w.err == nil && len(w.buf) != 0 {
		_, w.err = w.w.Write(w.buf)
		w.buf = w.buf[:0]
	}
	return w.err
}

// StartObject implements part of jtok.Handler.
func (w *Writer) StartObject() error {
	w.beginValue()
	w.buf = append(w.buf, '{')
	w.stk = append(w.stk, frame{object: true})
	return w.check()
}

// EndObject implements part of jtok.Handler.
func (w *Writer) EndObject() error { return w.end('}') }

// StartArray implements part of jtok.Handler.
func (w *Writer) StartArray() error {
	w.beginValue()
	w.buf = append(w.buf, '[')
	w.stk = append(w.stk, frame{})
	return w.check()
}

// EndArray implements part of jtok.Handler.
func (w *Writer) EndArray() error { return w.end(']') }

// FieldName implements part of jtok.Handler.
func (w *Writer) FieldName(name string) error {
	if len(w.stk) == 0 || !w.stk[len(w.stk)-1].object {
		return errors.New("field name outside an object")
	}
	w.beginElement()
	w.buf = jtok.AppendQuote(w.buf, name)
	w.buf = append(w.buf, ':')
	if w.indent != "" {
		w.buf = append(w.buf, ' ')
	}
	w.key = true
	return w.check()
}

// String implements part of jtok.Handler.
func (w *Writer) String(s string) error {
	w.beginValue()
	w.buf = jtok.AppendQuote(w.buf, s)
	return w.check()
}

// Int implements part of jtok.Handler.
func (w *Writer) Int(v int64) error {
	w.beginValue()
	w.buf = strconv.AppendInt(w.buf, v, 10)
	return w.check()
}

// Double implements part of jtok.Handler. The value is written so that it
// reads back as a number with a fraction or exponent.
func (w *Writer) Double(v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return errors.New("unsupported number " + strconv.FormatFloat(v, 'g', -1, 64))
	}
	w.beginValue()
	start := len(w.buf)
	w.buf = strconv.AppendFloat(w.buf, v, 'g', -1, 64)
	if !bytes.ContainsAny(w.buf[start:], ".e") {
		w.buf = append(w.buf, ".0"...)
	}
	return w.check()
}

// Bool implements part of jtok.Handler.
func (w *Writer) Bool(v bool) error {
	w.beginValue()
	w.buf = strconv.AppendBool(w.buf, v)
	return w.check()
}

// Null implements part of jtok.Handler.
func (w *Writer) Null() error {
	w.beginValue()
	w.buf = append(w.buf, "null"...)
	return w.check()
}

// EndOfInput implements jtok.EndOfInputHandler. It terminates indented
// output with a newline and flushes the buffer.
func (w *Writer) EndOfInput() {
	if w.indent != "" {
		w.buf = append(w.buf, '\n')
	}
	w.Flush()
}

// beginValue prepares to write a value, which is either the value of the
// most recent field name or a new element of the enclosing array.
func (w *Writer) beginValue() {
	if w.key {
		w.key = false
	} else if len(w.stk) != 0 {
		w.beginElement()
	}
}

// beginElement writes the separator before a new member or element of the
// innermost open object or array.
func (w *Writer) beginElement() {
	top := &w.stk[len(w.stk)-1]
	if top.n != 0 {
		w.buf = append(w.buf, ',')
	}
	top.n++
	w.newline(len(w.stk))
}

func (w *Writer) end(c byte) error {
	if len(w.stk) == 0 {
		return errors.New("unbalanced " + string(c))
	}
	top := w.stk[len(w.stk)-1]
	w.stk = w.stk[:len(w.stk)-1]
	if top.n != 0 {
		w.newline(len(w.stk))
	}
	w.buf = append(w.buf, c)
	return w.check()
}

// newline starts a new line at the given nesting depth, if indenting.
func (w *Writer) newline(depth int) {
	if w.indent != "" {
		w.buf = append(w.buf, '\n')
		w.buf = append(w.buf, strings.Repeat(w.indent, depth)...)
	}
}

// check flushes the buffer if it is large, and reports any write error.
func (w *Writer) check() error {
	if len(w.buf) >= flushSize {
		return w.Flush()
	}
	return w.err
}

// Copy parses the input of s and writes it to w as JSON text, indented as
// described by NewWriter.
func Copy(w io.Writer, s *jtok.Stream, indent string) error {
	fw := NewWriter(w, indent)
	if err := s.Parse(fw); err != nil {
		return err
	}
	return fw.Flush()
}
