// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// Event is the type of a parser event reported by NextEvent.
type Event byte

// Constants defining the valid Event values.
const (
	NeedMoreInput Event = iota // the parser needs more input to proceed
	Error                      // syntax or decoding error (terminal)
	StartObject                // left brace "{"
	EndObject                  // right brace "}"
	StartArray                 // left square bracket "["
	EndArray                   // right square bracket "]"
	FieldName                  // object key; see CurrentString
	ValueString                // string value; see CurrentString
	ValueInt                   // number without fraction or exponent; see CurrentInt
	ValueDouble                // number with fraction and/or exponent; see CurrentFloat64
	ValueTrue                  // constant: true
	ValueFalse                 // constant: false
	ValueNull                  // constant: null
	EOF                        // end of input

	// Do not modify the order of these constants without updating IsValue.
)

var eventStr = [...]string{
	NeedMoreInput: "need more input",
	Error:         "error",
	StartObject:   "start object",
	EndObject:     "end object",
	StartArray:    "start array",
	EndArray:      "end array",
	FieldName:     "field name",
	ValueString:   "string",
	ValueInt:      "integer",
	ValueDouble:   "double",
	ValueTrue:     "true",
	ValueFalse:    "false",
	ValueNull:     "null",
	EOF:           "end of input",
}

func (e Event) String() string {
	v := int(e)
	if v >= len(eventStr) {
		return "invalid event"
	}
	return eventStr[v]
}

// IsValue reports whether e reports a scalar value.
func (e Event) IsValue() bool { return e >= ValueString && e <= ValueNull }
