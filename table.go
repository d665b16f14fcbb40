// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// A state is the current state of the tokenizer's finite-state machine.
type state int8

// The states of the machine. The order matters: every state from sST to sE3
// collects its input into the token buffer, and sFR to sE3 are the states of
// a floating-point number.
const (
	sGO = iota // start
	sOK        // ok, between tokens
	sOB        // object
	sKE        // key
	sCO        // colon
	sVA        // value
	sAR        // array
	sST        // string
	sES        // escape
	sU1        // u1
	sU2        // u2
	sU3        // u3
	sU4        // u4
	sMI        // minus
	sZE        // zero
	sIN        // integer
	sF0        // frac0
	sFR        // fraction
	sE1        // e
	sE2        // ex
	sE3        // exp
	sT1        // tr
	sT2        // tru
	sT3        // true
	sF1        // fa
	sF2        // fal
	sF3        // fals
	sF4        // false
	sN1        // nu
	sN2        // nul
	sN3        // null

	numStates
)

// Actions are encoded in the transition table as negative values.
const (
	__  = -1 // no transition: syntax error
	aCL = -2 // colon
	aCM = -3 // comma
	aQU = -4 // string delimiter
	aOA = -5 // open array
	aOO = -6 // open object
	aCA = -7 // close array
	aCO = -8 // close object
	aCE = -9 // close empty object
)

// transitions maps the current state and the class of the next rune to either
// a new state (non-negative) or an action (negative). The input is accepted
// if at the end the machine is in sOK and the mode stack holds only modeDone.
var transitions = [numStates][numClasses]int8{
	// Columns: space white { } [ ] : , " \ / + - . 0 1-9 a b c d e f l n r s t u ABCDF E etc
	/*start */ {sGO, sGO, aOO, __, aOA, __, __, __, sST, __, __, __, sMI, __, sZE, sIN, __, __, __, __, __, sF1, __, sN1, __, __, sT1, __, __, __, __},
	/*ok    */ {sOK, sOK, __, aCO, __, aCA, __, aCM, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*object*/ {sOB, sOB, __, aCE, __, __, __, __, sST, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*key   */ {sKE, sKE, __, __, __, __, __, __, sST, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*colon */ {sCO, sCO, __, __, __, __, aCL, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*value */ {sVA, sVA, aOO, __, aOA, __, __, __, sST, __, __, __, sMI, __, sZE, sIN, __, __, __, __, __, sF1, __, sN1, __, __, sT1, __, __, __, __},
	/*array */ {sAR, sAR, aOO, __, aOA, aCA, __, __, sST, __, __, __, sMI, __, sZE, sIN, __, __, __, __, __, sF1, __, sN1, __, __, sT1, __, __, __, __},
	/*string*/ {sST, __, sST, sST, sST, sST, sST, sST, aQU, sES, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST, sST},
	/*escape*/ {__, __, __, __, __, __, __, __, sST, sST, sST, __, __, __, __, __, __, sST, __, __, __, sST, __, sST, sST, __, sST, sU1, __, __, __},
	/*u1    */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, sU2, sU2, sU2, sU2, sU2, sU2, sU2, sU2, __, __, __, __, __, __, sU2, sU2, __},
	/*u2    */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, sU3, sU3, sU3, sU3, sU3, sU3, sU3, sU3, __, __, __, __, __, __, sU3, sU3, __},
	/*u3    */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, sU4, sU4, sU4, sU4, sU4, sU4, sU4, sU4, __, __, __, __, __, __, sU4, sU4, __},
	/*u4    */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, sST, sST, sST, sST, sST, sST, sST, sST, __, __, __, __, __, __, sST, sST, __},
	/*minus */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, sZE, sIN, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*zero  */ {sOK, sOK, __, aCO, __, aCA, __, aCM, __, __, __, __, __, sF0, __, __, __, __, __, __, sE1, __, __, __, __, __, __, __, __, sE1, __},
	/*int   */ {sOK, sOK, __, aCO, __, aCA, __, aCM, __, __, __, __, __, sF0, sIN, sIN, __, __, __, __, sE1, __, __, __, __, __, __, __, __, sE1, __},
	/*frac0 */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, sFR, sFR, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*frac  */ {sOK, sOK, __, aCO, __, aCA, __, aCM, __, __, __, __, __, __, sFR, sFR, __, __, __, __, sE1, __, __, __, __, __, __, __, __, sE1, __},
	/*e     */ {__, __, __, __, __, __, __, __, __, __, __, sE2, sE2, __, sE3, sE3, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*ex    */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, sE3, sE3, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*exp   */ {sOK, sOK, __, aCO, __, aCA, __, aCM, __, __, __, __, __, __, sE3, sE3, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*tr    */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sT2, __, __, __, __, __, __},
	/*tru   */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sT3, __, __, __},
	/*true  */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sOK, __, __, __, __, __, __, __, __, __, __},
	/*fa    */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sF2, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/*fal   */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sF3, __, __, __, __, __, __, __, __},
	/*fals  */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sF4, __, __, __, __, __},
	/*false */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sOK, __, __, __, __, __, __, __, __, __, __},
	/*nu    */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sN2, __, __, __},
	/*nul   */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sN3, __, __, __, __, __, __, __, __},
	/*null  */ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, sOK, __, __, __, __, __, __, __, __},
}

// valueEvent reports the event for a value token that is complete in state s,
// or NeedMoreInput if s does not end a value. Strings are reported by the
// string-delimiter action instead.
func valueEvent(s state) Event {
	switch {
	case s == sZE || s == sIN:
		return ValueInt
	case s >= sFR && s <= sE3:
		return ValueDouble
	case s == sT3:
		return ValueTrue
	case s == sF4:
		return ValueFalse
	case s == sN3:
		return ValueNull
	}
	return NeedMoreInput
}

// collects reports whether s accumulates input runes into the token buffer.
func (s state) collects() bool { return s >= sST && s <= sE3 }
