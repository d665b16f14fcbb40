// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"unicode/utf8"
)

// A RuneFeeder is a Feeder for input that is already decoded text. Its
// capacity is measured in runes rather than bytes.
//
// Each call to Feed must contain whole UTF-8 encoded runes; a RuneFeeder does
// not hold partial sequences across calls. Use a ByteFeeder for input that
// may be split at arbitrary byte boundaries.
type RuneFeeder struct {
	buf  []rune // ring of pending runes
	head int    // index of the next rune to read
	size int    // number of pending runes
	done bool

	nfed, nread int64 // total runes accepted and consumed
	bytes       int64 // total bytes accepted

	err   *DecodeError // first invalid input
	errAt int64        // rune index of the first invalid input
}

// NewRuneFeeder constructs a feeder with capacity for size runes.
// If size <= 0, DefaultBufferSize is used.
func NewRuneFeeder(size int) *RuneFeeder {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &RuneFeeder{buf: make([]rune, size)}
}

// FeedRune adds a single rune. It reports ErrFull if the feeder has no room.
func (f *RuneFeeder) FeedRune(r rune) error {
	if f.IsFull() {
		return ErrFull
	} else if !utf8.ValidRune(r) {
		f.invalid()
	}
	f.put(r, utf8.RuneLen(r))
	return nil
}

// FeedString adds as many runes from the front of s as will fit, and reports
// the number of bytes of s consumed.
func (f *RuneFeeder) FeedString(s string) int {
	var nb int
	for nb < len(s) && !f.IsFull() {
		r, n := utf8.DecodeRuneInString(s[nb:])
		if r == utf8.RuneError && n <= 1 {
			f.invalid()
		}
		f.put(r, n)
		nb += n
	}
	return nb
}

// Feed implements part of the Feeder interface. The input is treated as UTF-8
// encoded text.
func (f *RuneFeeder) Feed(data []byte) int {
	var nb int
	for nb < len(data) && !f.IsFull() {
		r, n := utf8.DecodeRune(data[nb:])
		if r == utf8.RuneError && n <= 1 {
			f.invalid()
		}
		f.put(r, n)
		nb += n
	}
	return nb
}

// FeedByte implements part of the Feeder interface. Only bytes in the ASCII
// range are whole runes; any other byte is recorded as invalid input.
func (f *RuneFeeder) FeedByte(b byte) error {
	if f.IsFull() {
		return ErrFull
	} else if b >= utf8.RuneSelf {
		f.invalid()
	}
	f.put(rune(b), 1)
	return nil
}

// IsFull implements part of the Feeder interface.
func (f *RuneFeeder) IsFull() bool { return f.size == len(f.buf) }

// Done implements part of the Feeder interface.
func (f *RuneFeeder) Done() { f.done = true }

// IsDone implements part of the Feeder interface.
func (f *RuneFeeder) IsDone() bool { return f.done && f.size == 0 }

// HasInput implements part of the Feeder interface. Invalid input is
// reported when the parser reaches it.
func (f *RuneFeeder) HasInput() (bool, error) {
	if f.err != nil && f.nread == f.errAt {
		return false, f.err
	}
	return f.size != 0, nil
}

// NextInput implements part of the Feeder interface.
func (f *RuneFeeder) NextInput() rune {
	if f.size == 0 {
		panic("jtok: NextInput called without available input")
	}
	r := f.buf[f.head]
	f.head = (f.head + 1) % len(f.buf)
	f.size--
	f.nread++
	return r
}

// put adds r, which was encoded in n bytes, to the buffer.
// Precondition: !f.IsFull().
func (f *RuneFeeder) put(r rune, n int) {
	f.buf[(f.head+f.size)%len(f.buf)] = r
	f.size++
	f.nfed++
	f.bytes += int64(max(n, 1))
}

// invalid records that the next rune to be added is not valid input, unless
// an earlier invalid rune is already recorded.
func (f *RuneFeeder) invalid() {
	if f.err == nil {
		f.err = &DecodeError{Offset: f.bytes, Err: errInvalidUTF8}
		f.errAt = f.nfed
	}
}
