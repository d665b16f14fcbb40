// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"encoding/json"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/creachadair/jtok/internal/testutil"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
		{"été 😀", `"été 😀"`},
	}
	for _, test := range tests {
		got := jtok.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
		if got := string(jtok.AppendQuote([]byte("x"), test.input)); got != "x"+test.want {
			t.Errorf("AppendQuote(%#q): got %#q, want %#q", test.input, got, "x"+test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                        // missing quotes
		{`"missing quote`, ``, true},          // missing quotes
		{`missing quote"`, ``, true},          // missing quotes
		{`""`, ``, false},                     // ok
		{`"ok go"`, "ok go", false},           // ok
		{`"abc\ndef"`, "abc\ndef", false},     // C escapes
		{`"\tabc\n"`, "\tabc\n", false},       // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a \u0026 b"`, "a & b", false},      // short Unicode escape
		{`"\u"`, ``, true},                    // incomplete Unicode escape
		{`"\u00"`, ``, true},                  // incomplete Unicode escape
		{`"\u00x9"`, "\ufffd", false},         // invalid Unicode escape
		{`"\u019 "`, "\ufffd", false},         // invalid Unicode escape
		{`"a\"b"`, `a"b`, false},              // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},       // ok
		{`"\/"`, `/`, false},                  // ok

		// Surrogate pairs
		{`"\ud83d\ude00"`, "😀", false},
		{`"x\ud83d\ude00y"`, "x😀y", false},
		{`"\ud83dx"`, "\ufffdx", false},
		{`"\ude00"`, "\ufffd", false},
		{`"\ud83d\u0041"`, "\ufffdA", false},
	}

	for _, test := range tests {
		got, err := jtok.Unquote([]byte(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if err == nil && test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	// Quoted strings are accepted by the parser, and decode to their input.
	inputs := []string{
		"", "plain", "a\tb\nc", "\x00\x1f\x7f", `"\/`, "été 😀", "\u2028\u2029",
	}
	for _, input := range inputs {
		q := jtok.Quote(input)

		var std string
		if err := json.Unmarshal([]byte(q), &std); err != nil {
			t.Errorf("Unmarshal %s: %v", q, err)
		} else if std != input {
			t.Errorf("Unmarshal %s: got %q, want %q", q, std, input)
		}

		p := jtok.NewParser(nil)
		got := testutil.Run(p, []byte(q))
		if len(got) != 2 || got[0] != testutil.Record(p, jtok.ValueString) {
			t.Errorf("Parse %s: got %q", q, got)
		}
		if p.CurrentString() != input {
			t.Errorf("Parse %s: got %q, want %q", q, p.CurrentString(), input)
		}
	}
}
