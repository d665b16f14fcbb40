// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// A Feeder supplies input to a Parser. The caller pushes raw input into the
// feeder, and the parser pulls decoded runes out of it.
//
// A feeder has bounded capacity. When IsFull reports true, the caller must
// stop feeding and call the parser's NextEvent until it reports
// NeedMoreInput, which means the parser has drained the feeder.
type Feeder interface {
	// Feed adds as much of data as will fit and reports how many bytes were
	// consumed. The caller should retry the remainder after draining.
	Feed(data []byte) int

	// FeedByte adds a single byte. It reports ErrFull if the feeder has no
	// room for the byte.
	FeedByte(b byte) error

	// IsFull reports whether the feeder has no remaining capacity.
	IsFull() bool

	// Done marks the end of the input. It cannot be undone.
	Done()

	// HasInput decodes pending input if necessary, and reports whether at
	// least one rune is available from NextInput. If the pending input cannot
	// be decoded, HasInput reports an error of concrete type *DecodeError.
	HasInput() (bool, error)

	// NextInput returns and consumes the next decoded rune. It panics if
	// HasInput would report false.
	NextInput() rune

	// IsDone reports whether Done has been called and all input has been
	// consumed.
	IsDone() bool
}

// ErrFull is reported by FeedByte when the feeder has no room.
var ErrFull = errors.New("feeder is full")

// DefaultBufferSize is the default capacity in bytes of a ByteFeeder.
const DefaultBufferSize = 2048

// minBufferSize is the smallest permitted feeder capacity. It must be large
// enough to hold any single encoded character.
const minBufferSize = 2 * utf8.UTFMax

// A DecodeError reports input that is not valid in the feeder's encoding.
type DecodeError struct {
	Offset int64 // byte offset of the start of the invalid input
	Err    error
}

// Error satisfies the error interface.
func (d *DecodeError) Error() string {
	return fmt.Sprintf("decoding input at byte %d: %v", d.Offset, d.Err)
}

// Unwrap supports error wrapping.
func (d *DecodeError) Unwrap() error { return d.Err }

var (
	errInvalidUTF8 = errors.New("invalid UTF-8 sequence")
	errTruncated   = errors.New("incomplete character at end of input")
	errInvalidInput = errors.New("invalid input for encoding")
)

// A ByteFeeder is a Feeder that decodes bytes in a configured character
// encoding. A sequence split across calls to Feed is held until the rest of
// it arrives, or until Done reports that it never will.
type ByteFeeder struct {
	in   []byte // undecoded input, len(in) <= cap(in)
	out  []rune // decoded runes
	opos int    // offset of the next rune in out
	done bool
	err  error // sticky decoding error

	consumed int64 // total bytes decoded so far

	dec  transform.Transformer // nil for native UTF-8
	repl []byte                // encoding of U+FFFD, nil if not representable
	tmp  []byte                // scratch output for dec
}

// NewByteFeeder constructs a feeder that decodes input in the given encoding,
// with capacity for size bytes of undecoded input. If enc == nil, UTF-8 is
// used. If size <= 0, DefaultBufferSize is used.
func NewByteFeeder(enc encoding.Encoding, size int) *ByteFeeder {
	if size <= 0 {
		size = DefaultBufferSize
	}
	size = max(size, minBufferSize)
	f := &ByteFeeder{in: make([]byte, 0, size)}
	if enc != nil && enc != unicode.UTF8 {
		f.dec = enc.NewDecoder()
		f.repl = replacement(enc)
	}
	return f
}

// replacement returns the encoding of U+FFFD in enc, or nil if enc cannot
// represent it. A prefix the encoder writes once per stream, such as a byte
// order mark, is not included.
func replacement(enc encoding.Encoding) []byte {
	one, err := enc.NewEncoder().String(string(utf8.RuneError))
	if err != nil {
		return nil
	}
	two, err := enc.NewEncoder().String(strings.Repeat(string(utf8.RuneError), 2))
	if err != nil || len(two) <= len(one) {
		return nil
	}
	return []byte(two[len(one):])
}

// Feed implements part of the Feeder interface.
func (f *ByteFeeder) Feed(data []byte) int {
	n := min(len(data), cap(f.in)-len(f.in))
	f.in = append(f.in, data[:n]...)
	return n
}

// FeedByte implements part of the Feeder interface.
func (f *ByteFeeder) FeedByte(b byte) error {
	if f.IsFull() {
		return ErrFull
	}
	f.in = append(f.in, b)
	return nil
}

// IsFull implements part of the Feeder interface.
func (f *ByteFeeder) IsFull() bool { return len(f.in) == cap(f.in) }

// Done implements part of the Feeder interface.
func (f *ByteFeeder) Done() { f.done = true }

// IsDone implements part of the Feeder interface.
func (f *ByteFeeder) IsDone() bool {
	return f.done && f.opos == len(f.out) && len(f.in) == 0
}

// HasInput implements part of the Feeder interface.
func (f *ByteFeeder) HasInput() (bool, error) {
	if f.opos < len(f.out) {
		return true, nil
	} else if f.err != nil {
		return false, f.err
	} else if len(f.in) == 0 {
		return false, nil
	}
	f.out, f.opos = f.out[:0], 0
	var err error
	if f.dec == nil {
		err = f.decodeUTF8()
	} else {
		err = f.decodeOther()
	}
	if err != nil {
		f.err = err

		// Runes decoded before the error are still delivered, so that the
		// error is reported at the position where it occurred.
		if len(f.out) != 0 {
			return true, nil
		}
		return false, err
	}
	return len(f.out) != 0, nil
}

// NextInput implements part of the Feeder interface.
func (f *ByteFeeder) NextInput() rune {
	if f.opos >= len(f.out) {
		panic("jtok: NextInput called without available input")
	}
	r := f.out[f.opos]
	f.opos++
	return r
}

// decodeUTF8 decodes as much of f.in as possible as UTF-8.
func (f *ByteFeeder) decodeUTF8() error {
	var i int
	defer func() { f.shift(i) }()
	for i < len(f.in) {
		rest := f.in[i:]
		if !utf8.FullRune(rest) {
			if f.done {
				return f.decodeError(i, errTruncated)
			}
			break
		}
		r, n := utf8.DecodeRune(rest)
		if r == utf8.RuneError && n <= 1 {
			return f.decodeError(i, errInvalidUTF8)
		}
		f.out = append(f.out, r)
		i += n
	}
	return nil
}

// decodeOther decodes as much of f.in as possible using f.dec.
//
// Decoders in x/text replace invalid input with U+FFFD rather than reporting
// an error, so input is decoded one character at a time and each U+FFFD in
// the output is checked against the bytes that produced it.
func (f *ByteFeeder) decodeOther() error {
	if f.tmp == nil {
		f.tmp = make([]byte, utf8.UTFMax*cap(f.in))
	}
	var i int
	defer func() { f.shift(i) }()
	for i < len(f.in) {
		end := i + 1
		nDst, nSrc, err := f.dec.Transform(f.tmp, f.in[i:end], f.done && end == len(f.in))
		for nSrc == 0 && end < len(f.in) && errors.Is(err, transform.ErrShortSrc) {
			end++
			nDst, nSrc, err = f.dec.Transform(f.tmp, f.in[i:end], f.done && end == len(f.in))
		}
		if f.replaced(f.in[i:i+nSrc], f.tmp[:nDst]) {
			return f.decodeError(i, errInvalidInput)
		}
		for _, r := range string(f.tmp[:nDst]) {
			f.out = append(f.out, r)
		}
		i += nSrc
		switch {
		case err == nil:
			if nSrc == 0 && nDst == 0 {
				return nil
			}
		case errors.Is(err, transform.ErrShortDst):
			if nSrc == 0 && nDst == 0 {
				return f.decodeError(i, err)
			}
		case errors.Is(err, transform.ErrShortSrc):
			if end < len(f.in) {
				continue // the window ended inside a character
			} else if f.done {
				return f.decodeError(i, errTruncated)
			}
			return nil
		default:
			return f.decodeError(i, err)
		}
	}
	return nil
}

// replaced reports whether out, decoded from src, contains a U+FFFD that the
// decoder substituted for invalid input. Only the first rune decoded from a
// window can be a genuine U+FFFD, and only if src begins with its encoding.
func (f *ByteFeeder) replaced(src, out []byte) bool {
	for j, r := range string(out) {
		if r != utf8.RuneError {
			continue
		}
		if j != 0 || f.repl == nil || !bytes.HasPrefix(src, f.repl) {
			return true
		}
	}
	return false
}

// shift discards the first n bytes of f.in, which have been decoded.
func (f *ByteFeeder) shift(n int) {
	if n == 0 {
		return
	}
	f.consumed += int64(n)
	m := copy(f.in, f.in[n:])
	f.in = f.in[:m]
}

func (f *ByteFeeder) decodeError(pos int, err error) error {
	return &DecodeError{Offset: f.consumed + int64(pos), Err: err}
}

// LookupEncoding returns the encoding with the given IANA name, for example
// "UTF-8", "ISO-8859-1", or "UTF-16LE". Matching is not case-sensitive.
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	} else if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}
