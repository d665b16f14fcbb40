// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// A mode records the kind of structure the parser is currently inside.
type mode byte

const (
	modeArray  mode = iota // inside [ ... ]
	modeDone               // outside any structure
	modeKey                // inside { ... } expecting a key
	modeObject             // inside { ... } after a key
)

// DefaultMaxDepth is the default limit on nesting of objects and arrays.
const DefaultMaxDepth = 2048

// initModes is the initial capacity of the mode stack.
const initModes = 16

// A modeStack is a bounded stack of modes. The bottom element is modeDone,
// which does not count against the depth limit.
type modeStack struct {
	stk []mode
	max int // maximum number of nested structures
}

func newModeStack(max int) modeStack {
	s := modeStack{stk: make([]mode, 0, initModes), max: max}
	s.push(modeDone)
	return s
}

// push pushes m onto the stack and reports whether it fit.
func (s *modeStack) push(m mode) bool {
	if len(s.stk) > s.max {
		return false
	}
	if len(s.stk) == cap(s.stk) {
		n := min(2*cap(s.stk), s.max+1)
		stk := make([]mode, len(s.stk), max(n, len(s.stk)+1))
		copy(stk, s.stk)
		s.stk = stk
	}
	s.stk = append(s.stk, m)
	return true
}

// pop removes the top of the stack if it equals m, and reports whether it
// did so.
func (s *modeStack) pop(m mode) bool {
	n := len(s.stk)
	if n == 0 || s.stk[n-1] != m {
		return false
	}
	s.stk = s.stk[:n-1]
	return true
}

// top returns the top of the stack. If the stack is empty, top returns
// modeDone.
func (s *modeStack) top() mode {
	if len(s.stk) == 0 {
		return modeDone
	}
	return s.stk[len(s.stk)-1]
}

// depth reports the number of open structures.
func (s *modeStack) depth() int { return max(len(s.stk)-1, 0) }
