// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
)

// A Handler handles events from a Parser. If a method reports an error,
// parsing stops and that error is returned to the caller. The parser ensures
// objects and arrays are correctly balanced.
type Handler interface {
	// Begin a new object.
	StartObject() error

	// End the most-recently-opened object.
	EndObject() error

	// Begin a new array.
	StartArray() error

	// End the most-recently-opened array.
	EndArray() error

	// Report an object key, with escapes decoded.
	FieldName(name string) error

	// Report a string value, with escapes decoded.
	String(s string) error

	// Report an integer value.
	Int(v int64) error

	// Report a number with a fraction or exponent, or an integer too large
	// to represent as an int64.
	Double(v float64) error

	// Report the constant true or false.
	Bool(v bool) error

	// Report the constant null.
	Null() error
}

// EndOfInputHandler is an optional interface that a Handler may implement to
// be notified when the input has been completely parsed.
type EndOfInputHandler interface {
	EndOfInput()
}

// Dispatch delivers event ev, just reported by p, to the corresponding
// method of h. For EOF, Dispatch calls EndOfInput if h implements
// EndOfInputHandler. For Error, Dispatch returns p.Err(). NeedMoreInput is
// ignored. An integer outside the range of an int64 is delivered to Double.
func Dispatch(p *Parser, ev Event, h Handler) error {
	switch ev {
	case NeedMoreInput:
		return nil
	case Error:
		return p.Err()
	case StartObject:
		return h.StartObject()
	case EndObject:
		return h.EndObject()
	case StartArray:
		return h.StartArray()
	case EndArray:
		return h.EndArray()
	case FieldName:
		return h.FieldName(p.CurrentString())
	case ValueString:
		return h.String(p.CurrentString())
	case ValueInt:
		v, err := p.CurrentInt64()
		if errors.Is(err, strconv.ErrRange) {
			return dispatchDouble(p, h)
		} else if err != nil {
			return fmt.Errorf("integer %s: %w", p.Text(), err)
		}
		return h.Int(v)
	case ValueDouble:
		return dispatchDouble(p, h)
	case ValueTrue, ValueFalse:
		return h.Bool(ev == ValueTrue)
	case ValueNull:
		return h.Null()
	case EOF:
		if eh, ok := h.(EndOfInputHandler); ok {
			eh.EndOfInput()
		}
		return nil
	default:
		return fmt.Errorf("unknown event %v", ev)
	}
}

func dispatchDouble(p *Parser, h Handler) error {
	v, err := p.CurrentFloat64()
	if err != nil {
		return fmt.Errorf("number %s: %w", p.Text(), err)
	}
	return h.Double(v)
}

// FeedAll feeds all of data to p and delivers the resulting events to h
// until the end of the input or an error. Whenever p's feeder is full, the
// pending events are drained before more data are fed.
func FeedAll(p *Parser, data []byte, h Handler) error {
	f := p.Feeder()
	for {
		ev := p.NextEvent()
		if ev == NeedMoreInput {
			n := f.Feed(data)
			data = data[n:]
			if len(data) == 0 {
				f.Done()
			}
			continue
		}
		if err := Dispatch(p, ev, h); err != nil {
			return err
		} else if ev == EOF {
			return nil
		}
	}
}

// DefaultChunkSize is the default number of bytes a Stream reads at once.
const DefaultChunkSize = 4096

// Stream drives a Parser with input read from an io.Reader. Input is read
// only when the parser reports that it needs more.
type Stream struct {
	r    io.Reader
	p    *Parser
	buf  []byte
	rest []byte // input read but not yet fed
	eof  bool   // r reported io.EOF
	err  error  // sticky read error
}

// NewStream constructs a Stream that reads input from r and parses it with a
// new Parser configured by opts.
func NewStream(r io.Reader, opts *Options) *Stream {
	return NewStreamWithParser(r, NewParser(opts))
}

// NewStreamWithParser constructs a Stream that reads input from r and feeds
// it to p.
func NewStreamWithParser(r io.Reader, p *Parser) *Stream {
	return &Stream{r: r, p: p, buf: make([]byte, DefaultChunkSize)}
}

// SetChunkSize sets the maximum number of bytes s reads from its input at
// once. If n <= 0, DefaultChunkSize is used.
func (s *Stream) SetChunkSize(n int) {
	if n <= 0 {
		n = DefaultChunkSize
	}
	s.buf = make([]byte, n)
}

// Parser returns the parser driven by s.
func (s *Stream) Parser() *Parser { return s.p }

// Next advances to the next event of the input and returns it. Next never
// returns NeedMoreInput; it reads more input instead. At the end of the
// input Next returns EOF. If the input is malformed or cannot be read, Next
// returns Error and a non-nil error.
func (s *Stream) Next() (Event, error) {
	for {
		switch ev := s.p.NextEvent(); ev {
		case NeedMoreInput:
			if err := s.fill(); err != nil {
				return Error, err
			}
		case Error:
			return ev, s.p.Err()
		default:
			return ev, nil
		}
	}
}

// fill feeds more input to the parser.
func (s *Stream) fill() error {
	if s.err != nil {
		return s.err
	}
	f := s.p.Feeder()
	if len(s.rest) == 0 && !s.eof {
		n, err := s.r.Read(s.buf)
		s.rest = s.buf[:n]
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else if err != nil {
			s.err = fmt.Errorf("read input: %w", err)
			return s.err
		}
	}
	n := f.Feed(s.rest)
	s.rest = s.rest[n:]
	if len(s.rest) == 0 && s.eof {
		f.Done()
	}
	return nil
}

// Parse parses the input and delivers events to h until the end of the input
// or an error. In case of a syntax error, the returned error has concrete
// type *SyntaxError.
func (s *Stream) Parse(h Handler) error {
	for {
		ev, err := s.Next()
		if err != nil {
			return err
		} else if err := Dispatch(s.p, ev, h); err != nil {
			return err
		} else if ev == EOF {
			return nil
		}
	}
}

// Events returns an iterator over the events of the input, ending with EOF
// or with Error and its error.
func (s *Stream) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := s.Next()
			if !yield(ev, err) || ev == EOF || ev == Error {
				return
			}
		}
	}
}
