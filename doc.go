// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtok implements a non-blocking, incremental JSON tokenizer.
//
// # Parsing
//
// The Parser type converts a stream of encoded bytes into a sequence of
// events. The parser never blocks waiting for input: the caller pushes input
// into the parser's Feeder, and pulls events from the parser by calling its
// NextEvent method. When the parser cannot proceed without more input,
// NextEvent reports NeedMoreInput:
//
//	p := jtok.NewParser(nil)
//	for {
//	   ev := p.NextEvent()
//	   if ev == jtok.NeedMoreInput {
//	      n := p.Feeder().Feed(input)
//	      input = input[n:]
//	      if len(input) == 0 {
//	         p.Feeder().Done()
//	      }
//	      continue
//	   } else if ev == jtok.Error {
//	      log.Fatalf("Parse failed: %v", p.Err())
//	   } else if ev == jtok.EOF {
//	      break
//	   }
//	   log.Printf("Event: %v", ev)
//	}
//
// Input may be fed in chunks of any size, split at any point, including in
// the middle of an encoded character. The sequence of events does not depend
// on how the input was split.
//
// # Events
//
// The events correspond to the syntax of JSON values:
//
//	JSON type  | Events                  | Value
//	---------- | ----------------------- | ------------------------------
//	object     | StartObject, EndObject  | { ... }
//	member     | FieldName               | CurrentString
//	array      | StartArray, EndArray    | [ ... ]
//	string     | ValueString             | CurrentString
//	number     | ValueInt, ValueDouble   | CurrentInt64, CurrentFloat64
//	constant   | ValueTrue, ValueFalse,  | --
//	           | ValueNull               |
//	--         | EOF                     | end of input
//
// The value accessors are valid only immediately after the corresponding
// event is reported.
//
// # Errors
//
// A syntax error, an encoding error, or nesting beyond the parser's maximum
// depth is reported as an Error event. Error is terminal: the parser does not
// recover, and reports Error for all further calls. The Err method returns an
// error of concrete type *SyntaxError describing the problem.
//
// # Handlers
//
// The Handler interface accepts events as method calls. Use Dispatch to
// deliver a single event, FeedAll to parse a buffer, or a Stream to parse
// input from an io.Reader:
//
//	s := jtok.NewStream(input, nil)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
package jtok
