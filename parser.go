// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/creachadair/jtok/internal/escape"

	"go4.org/mem"
	"golang.org/x/text/encoding"
)

// Options are settings for a Parser. A nil *Options is ready for use and
// provides default settings.
type Options struct {
	// Encoding is the character encoding of the input. If nil, UTF-8.
	Encoding encoding.Encoding

	// BufferSize is the capacity in bytes of the parser's feeder.
	// If zero, DefaultBufferSize is used.
	BufferSize int

	// MaxDepth is the maximum nesting of objects and arrays.
	// If zero, DefaultMaxDepth is used.
	MaxDepth int
}

func (o *Options) encoding() encoding.Encoding {
	if o == nil {
		return nil
	}
	return o.Encoding
}

func (o *Options) bufferSize() int {
	if o == nil || o.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return o.BufferSize
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// ErrMaxDepth is the underlying error reported when the input nests objects
// and arrays more deeply than the parser allows.
var ErrMaxDepth = errors.New("maximum nesting depth exceeded")

// A Parser is a non-blocking, incremental JSON tokenizer. It pulls decoded
// input from a Feeder and reports the structure of the input as a sequence of
// events. The caller pushes input into the feeder, and calls NextEvent until
// it reports NeedMoreInput, EOF, or Error:
//
//	p := jtok.NewParser(nil)
//	for {
//	   switch ev := p.NextEvent(); ev {
//	   case jtok.NeedMoreInput:
//	      // feed more input to p.Feeder(), or call Done
//	   case jtok.Error:
//	      return p.Err()
//	   case jtok.EOF:
//	      return nil
//	   default:
//	      // handle ev
//	   }
//	}
//
// A Parser is not safe for concurrent use by multiple goroutines.
type Parser struct {
	feeder Feeder
	modes  modeStack
	state  state
	buf    []byte // text of the current token

	count int64   // runes consumed
	loc   LineCol // location after the last rune consumed

	ev1, ev2 Event // pending events
	err      error // set when an Error event has been reported
	eof      bool  // set when an EOF event has been reported
}

// NewParser constructs a parser with a ByteFeeder configured by opts.
func NewParser(opts *Options) *Parser {
	f := NewByteFeeder(opts.encoding(), opts.bufferSize())
	return newParser(f, opts.maxDepth())
}

// NewParserWithFeeder constructs a parser that consumes input from f.
func NewParserWithFeeder(f Feeder) *Parser { return newParser(f, DefaultMaxDepth) }

func newParser(f Feeder, depth int) *Parser {
	return &Parser{
		feeder: f,
		modes:  newModeStack(depth),
		state:  sGO,
		buf:    make([]byte, 0, 128),
		loc:    LineCol{Line: 1},
	}
}

// Feeder returns the feeder that supplies input to p.
func (p *Parser) Feeder() Feeder { return p.feeder }

// SetMaxDepth sets the maximum nesting of objects and arrays. A value less
// than zero is treated as zero, which admits only scalar values.
func (p *Parser) SetMaxDepth(n int) { p.modes.max = max(n, 0) }

// MaxDepth reports the maximum nesting of objects and arrays.
func (p *Parser) MaxDepth() int { return p.modes.max }

// ParsedCharacterCount reports the number of runes consumed so far. Because
// an event is reported after all its input is consumed, the start of the
// input for the most recent event is before this offset. For example, after
// StartObject the "{" is at offset n-1, and after FieldName for "id" the
// opening quote is at offset n-4.
func (p *Parser) ParsedCharacterCount() int64 { return p.count }

// Location reports the location just after the last rune consumed.
func (p *Parser) Location() LineCol { return p.loc }

// Err returns the error that caused NextEvent to report Error, or nil.
// The concrete type of a non-nil error is *SyntaxError.
func (p *Parser) Err() error { return p.err }

// NextEvent advances the parser to the next event and returns it. If more
// input is needed to produce an event, NextEvent returns NeedMoreInput and
// the caller must feed more input (or call Done) before calling again.
//
// Error and EOF are terminal: once reported, each further call reports the
// same event again.
func (p *Parser) NextEvent() Event {
	if p.err != nil {
		return Error
	} else if p.eof {
		return EOF
	}
	for p.ev1 == NeedMoreInput {
		ok, err := p.feeder.HasInput()
		if err != nil {
			p.fail(err, "%v", err)
			return Error
		} else if !ok {
			if p.feeder.IsDone() {
				return p.finish()
			}
			return NeedMoreInput
		}
		p.parse(p.feeder.NextInput())
	}

	ev := p.ev1
	if ev != Error {
		p.ev1, p.ev2 = p.ev2, NeedMoreInput
	}
	return ev
}

// finish handles the end of the input.
func (p *Parser) finish() Event {
	if p.state != sOK {
		// A value ending exactly at the end of input has no delimiter.
		if ev := valueEvent(p.state); ev != NeedMoreInput {
			p.state = sOK
			return ev
		}
	}
	if p.state == sOK && p.modes.pop(modeDone) {
		p.eof = true
		return EOF
	}
	p.fail(nil, "unexpected end of input")
	return Error
}

// parse advances the state machine by a single rune.
// Precondition: p.ev1 == p.ev2 == NeedMoreInput.
func (p *Parser) parse(r rune) {
	p.count++
	pos := p.loc
	p.loc.advance(r)

	cls := classify(r)
	if cls == cInvalid {
		p.failAt(pos, nil, "invalid character %q", r)
		return
	}
	next := transitions[p.state][cls]
	if next == __ {
		p.failAt(pos, nil, "expected %s, got %q", expectLabel[p.state], r)
		return
	} else if next < 0 {
		p.perform(next, r, pos)
		return
	}

	ns := state(next)
	if ns.collects() {
		if !p.state.collects() {
			p.buf = p.buf[:0] // start of a new token
			if ns == sST {
				p.state = ns
				return // the opening quote is not part of the text
			}
		}
		p.buf = utf8.AppendRune(p.buf, r)
	} else if ns == sOK {
		p.ev1 = valueEvent(p.state)
	}
	p.state = ns
}

// perform executes a structural action of the state machine.
func (p *Parser) perform(action int8, r rune, pos LineCol) {
	switch action {
	case aCE: // } immediately after {
		if !p.modes.pop(modeKey) {
			p.failAt(pos, nil, "unexpected %q", r)
			return
		}
		p.state = sOK
		p.ev1 = EndObject

	case aCO: // }
		if !p.modes.pop(modeObject) {
			p.failAt(pos, nil, "unexpected %q", r)
			return
		}
		p.close(EndObject)

	case aCA: // ]
		if !p.modes.pop(modeArray) {
			p.failAt(pos, nil, "unexpected %q", r)
			return
		}
		p.close(EndArray)

	case aOO: // {
		if !p.modes.push(modeKey) {
			p.failAt(pos, ErrMaxDepth, "%v (%d)", ErrMaxDepth, p.modes.max)
			return
		}
		p.state = sOB
		p.ev1 = StartObject

	case aOA: // [
		if !p.modes.push(modeArray) {
			p.failAt(pos, ErrMaxDepth, "%v (%d)", ErrMaxDepth, p.modes.max)
			return
		}
		p.state = sAR
		p.ev1 = StartArray

	case aQU: // closing "
		if p.modes.top() == modeKey {
			p.state = sCO
			p.ev1 = FieldName
		} else {
			p.state = sOK
			p.ev1 = ValueString
		}

	case aCM: // ,
		switch p.modes.top() {
		case modeObject:
			// A comma in an object flips to expecting the next key.
			if !p.modes.pop(modeObject) || !p.modes.push(modeKey) {
				p.failAt(pos, nil, "unexpected %q", r)
				return
			}
			p.ev1 = valueEvent(p.state)
			p.state = sKE
		case modeArray:
			p.ev1 = valueEvent(p.state)
			p.state = sVA
		default:
			p.failAt(pos, nil, "unexpected %q", r)
		}

	case aCL: // :
		// A colon flips from expecting a key to expecting its value.
		if !p.modes.pop(modeKey) || !p.modes.push(modeObject) {
			p.failAt(pos, nil, "unexpected %q", r)
			return
		}
		p.state = sVA

	default:
		panic(fmt.Sprintf("jtok: invalid action %d", action))
	}
}

// close reports the end of a structure. If the structure was ended by the
// rune that also ends a pending value, the value is reported first and the
// end of the structure is held for the next call to NextEvent.
func (p *Parser) close(end Event) {
	if ev := valueEvent(p.state); ev != NeedMoreInput {
		p.ev1, p.ev2 = ev, end
	} else {
		p.ev1 = end
	}
	p.state = sOK
}

// Text returns the undecoded text of the current string or number. For a
// string, the enclosing quotes are not included and escape sequences are
// not decoded. The slice is only valid until the next call to NextEvent.
func (p *Parser) Text() []byte { return p.buf }

// CurrentString returns the text of the current field name or string value,
// with escape sequences decoded. It is valid only immediately after
// NextEvent reports FieldName or ValueString.
func (p *Parser) CurrentString() string {
	dec, err := escape.Unquote(mem.B(p.buf))
	if err != nil {
		// The parser accepts only complete escape sequences.
		panic(fmt.Sprintf("jtok: undecodable string %q: %v", p.buf, err))
	}
	return string(dec)
}

// CurrentInt returns the current integer value as an int. It is valid only
// immediately after NextEvent reports ValueInt.
func (p *Parser) CurrentInt() (int, error) { return strconv.Atoi(string(p.buf)) }

// CurrentInt64 returns the current integer value as an int64. It is valid
// only immediately after NextEvent reports ValueInt.
func (p *Parser) CurrentInt64() (int64, error) { return strconv.ParseInt(string(p.buf), 10, 64) }

// CurrentFloat64 returns the current numeric value as a float64. It is valid
// only immediately after NextEvent reports ValueDouble or ValueInt.
func (p *Parser) CurrentFloat64() (float64, error) { return strconv.ParseFloat(string(p.buf), 64) }

// fail records an error positioned after the last rune consumed.
func (p *Parser) fail(err error, msg string, args ...any) {
	p.setError(p.count, p.loc, err, msg, args...)
}

// failAt records an error for the last rune consumed, which began at pos.
func (p *Parser) failAt(pos LineCol, err error, msg string, args ...any) {
	p.setError(p.count-1, pos, err, msg, args...)
}

func (p *Parser) setError(off int64, pos LineCol, err error, msg string, args ...any) {
	p.err = &SyntaxError{
		Offset:   off,
		Location: pos,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
	p.ev1 = Error
}

// expectLabel describes the input expected in each state, for diagnostics.
var expectLabel = [numStates]string{
	sGO: "value",
	sOK: `",", "]", "}", or end of input`,
	sOB: `string or "}"`,
	sKE: "string",
	sCO: `":"`,
	sVA: "value",
	sAR: `value or "]"`,
	sST: "string character",
	sES: "escape character",
	sU1: "hex digit",
	sU2: "hex digit",
	sU3: "hex digit",
	sU4: "hex digit",
	sMI: "digit",
	sZE: `".", exponent, or delimiter`,
	sIN: `digit, ".", exponent, or delimiter`,
	sF0: "digit",
	sFR: "digit, exponent, or delimiter",
	sE1: "sign or digit",
	sE2: "digit",
	sE3: "digit or delimiter",
	sT1: "true",
	sT2: "true",
	sT3: "true",
	sF1: "false",
	sF2: "false",
	sF3: "false",
	sF4: "false",
	sN1: "null",
	sN2: "null",
	sN3: "null",
}

// SyntaxError is the concrete type of errors reported by Parser.Err.
type SyntaxError struct {
	Offset   int64   // rune offset of the error in the input
	Location LineCol // line and column of the error
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
