// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// A class is the lexical category of an input rune. Runes are mapped into
// these classes to keep the transition table small.
type class int8

const (
	cInvalid class = -1 // non-whitespace control character

	cSpace class = iota - 1 // space
	cWhite                  // other whitespace
	cLCurB                  // {
	cRCurB                  // }
	cLSqrB                  // [
	cRSqrB                  // ]
	cColon                  // :
	cComma                  // ,
	cQuote                  // "
	cBackS                  // \
	cSlash                  // /
	cPlus                   // +
	cMinus                  // -
	cPoint                  // .
	cZero                   // 0
	cDigit                  // 123456789
	cLowA                   // a
	cLowB                   // b
	cLowC                   // c
	cLowD                   // d
	cLowE                   // e
	cLowF                   // f
	cLowL                   // l
	cLowN                   // n
	cLowR                   // r
	cLowS                   // s
	cLowT                   // t
	cLowU                   // u
	cABCDF                  // ABCDF
	cE                      // E
	cEtc                    // everything else

	numClasses = int(cEtc) + 1
)

// asciiClass maps the 128 ASCII runes to character classes.
// Runes outside ASCII are all cEtc.
var asciiClass = [128]class{
	cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid,
	cInvalid, cWhite, cWhite, cInvalid, cInvalid, cWhite, cInvalid, cInvalid,
	cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid,
	cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid, cInvalid,

	cSpace, cEtc, cQuote, cEtc, cEtc, cEtc, cEtc, cEtc,
	cEtc, cEtc, cEtc, cPlus, cComma, cMinus, cPoint, cSlash,
	cZero, cDigit, cDigit, cDigit, cDigit, cDigit, cDigit, cDigit,
	cDigit, cDigit, cColon, cEtc, cEtc, cEtc, cEtc, cEtc,

	cEtc, cABCDF, cABCDF, cABCDF, cABCDF, cE, cABCDF, cEtc,
	cEtc, cEtc, cEtc, cEtc, cEtc, cEtc, cEtc, cEtc,
	cEtc, cEtc, cEtc, cEtc, cEtc, cEtc, cEtc, cEtc,
	cEtc, cEtc, cEtc, cLSqrB, cBackS, cRSqrB, cEtc, cEtc,

	cEtc, cLowA, cLowB, cLowC, cLowD, cLowE, cLowF, cEtc,
	cEtc, cEtc, cEtc, cEtc, cLowL, cEtc, cLowN, cEtc,
	cEtc, cEtc, cLowR, cLowS, cLowT, cLowU, cEtc, cEtc,
	cEtc, cEtc, cEtc, cLCurB, cEtc, cRCurB, cEtc, cEtc,
}

// classify returns the character class of r, or cInvalid.
func classify(r rune) class {
	if r < 0 {
		return cInvalid
	} else if r >= 128 {
		return cEtc
	}
	return asciiClass[r]
}
