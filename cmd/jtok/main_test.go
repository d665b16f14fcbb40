// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/google/go-cmp/cmp"
)

func TestPrintEvents(t *testing.T) {
	st := jtok.NewStream(strings.NewReader(`{"a": [1, 2.5, "x\ty"], "b": null}`), nil)
	var sb strings.Builder
	if err := printEvents(&sb, st); err != nil {
		t.Fatalf("printEvents: unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"1\tstart object",
		"4\tfield name\t\"a\"",
		"7\tstart array",
		"9\tinteger\t1",
		"14\tdouble\t2.5",
		"21\tstring\t\"x\\ty\"",
		"22\tend array",
		"27\tfield name\t\"b\"",
		"33\tnull",
		"34\tend object",
		"34\tend of input",
		"",
	}, "\n")
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestCountElements(t *testing.T) {
	tests := []struct {
		input string
		want  int
		err   error
	}{
		{`[]`, 0, nil},
		{`[1, "two", null]`, 3, nil},
		{`[[1, 2], {"a": [3, 4]}, []]`, 3, nil},
		{`{"a": 1}`, 0, errNotArray},
		{`"str"`, 0, errNotArray},
	}
	for _, test := range tests {
		st := jtok.NewStream(strings.NewReader(test.input), nil)
		got, err := countElements(st)
		if !errors.Is(err, test.err) {
			t.Errorf("countElements(%#q): got error %v, want %v", test.input, err, test.err)
		} else if got != test.want {
			t.Errorf("countElements(%#q): got %d, want %d", test.input, got, test.want)
		}
	}

	st := jtok.NewStream(strings.NewReader(`[1, 2`), nil)
	if _, err := countElements(st); err == nil {
		t.Error("countElements: got nil, want error for truncated input")
	}
}

func TestCheckInput(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0600); err != nil {
			t.Fatalf("Write %s: %v", name, err)
		}
		return path
	}
	good := write("good.json", `{"ok": [true]}`)
	bad := write("bad.json", `{"ok": [true}`)
	hu := write("hu.json", "{\n  // comment\n  \"ok\": [true,],\n}")

	if err := checkInput(good); err != nil {
		t.Errorf("checkInput(good): unexpected error: %v", err)
	}
	var serr *jtok.SyntaxError
	if err := checkInput(bad); !errors.As(err, &serr) {
		t.Errorf("checkInput(bad): got %v, want *SyntaxError", err)
	}
	if err := checkInput(hu); err == nil {
		t.Error("checkInput(hujson): got nil, want error")
	}

	useHuJSON = true
	defer func() { useHuJSON = false }()
	if err := checkInput(hu); err != nil {
		t.Errorf("checkInput(hujson) with --hujson: unexpected error: %v", err)
	}
}

func TestParserOptions(t *testing.T) {
	defer func(name string) { encName = name }(encName)

	encName = "ISO-8859-1"
	if opts, err := parserOptions(); err != nil {
		t.Errorf("parserOptions: unexpected error: %v", err)
	} else if opts.Encoding == nil {
		t.Error("parserOptions: no encoding set")
	}

	encName = "bogus"
	if _, err := parserOptions(); err == nil {
		t.Error("parserOptions: got nil, want error for unknown encoding")
	}
}
