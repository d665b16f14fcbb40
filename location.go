package jtok

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // rune offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// advance updates lc to account for consuming r.
func (lc *LineCol) advance(r rune) {
	if r == '\n' {
		lc.Line++
		lc.Column = 0
	} else {
		lc.Column++
	}
}
