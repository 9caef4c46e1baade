package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"flexparse/internal/diag"
	"flexparse/internal/input"
	"flexparse/internal/lexer"
	"flexparse/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	us := source.NewUnitSet()

	content := []byte("name = \"unterminated string\n")
	unitID := us.Add("/home/user/project/src/test.kv", content, 0)

	// Устанавливаем базовую директорию для relative paths
	us.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{Unit: unitID, Start: 7, End: 27},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.kv"},
		{"Relative path", PathModeRelative, "src/test.kv"},
		{"Basename only", PathModeBasename, "test.kv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, us, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyExcerpt(t *testing.T) {
	us := source.NewUnitSet()
	id := us.AddText("cfg.kv", "port = 70000\n")
	d := diag.NewError(diag.SemOutOfRange, source.Span{Unit: id, Start: 7, End: 12}, "port out of range")

	var buf bytes.Buffer
	rep := Build([]diag.Diagnostic{d}, us, BuildOpts{})
	if err := NewPrettyRenderer(us, PrettyOpts{}).Render(&buf, rep); err != nil {
		t.Fatal(err)
	}

	want := "ERROR[SEM3002]: port out of range\n" +
		"  --> cfg.kv:1:8\n" +
		"  |\n" +
		"1 | port = 70000\n" +
		"  |        ^^^^^\n" +
		"\n" +
		"1 error(s), 0 warning(s)\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   uint32
		caret   string
	}{
		{"combining mark and tab", "e\u0301\tx = 1\n", 4, "  |      ^\n"},
		{"wide characters", "\u540d\u524d = 1\n", 9, "  |        ^\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := source.NewUnitSet()
			id := us.AddText("a.kv", tt.content)
			bag := diag.NewBag(0)
			bag.Add(diag.NewError(diag.SynUnexpected, source.Span{Unit: id, Start: tt.start, End: tt.start + 1}, "here"))

			var buf bytes.Buffer
			Pretty(&buf, bag, us, PrettyOpts{})
			if !strings.Contains(buf.String(), tt.caret) {
				t.Fatalf("caret line %q not found in:\n%s", tt.caret, buf.String())
			}
		})
	}
}

func TestPrettyNotes(t *testing.T) {
	us := source.NewUnitSet()
	id := us.AddText("test.calc", "(1 + 2\n")

	primary := source.Span{Unit: id, Start: 6, End: 6}
	d := diag.NewError(diag.SynUnclosedDelimiter, primary, "expected `)`, found end of input").
		WithNote(source.Span{Unit: id, Start: 0, End: 1}, "unclosed delimiter opened here")
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, us, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	if !strings.Contains(output, "note: test.calc:1:1: unclosed delimiter opened here") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}
	if !strings.Contains(output, "  |       ^\n") {
		t.Fatalf("expected caret at end of line, got:\n%s", output)
	}
	if !strings.Contains(output, "  | -\n") {
		t.Fatalf("expected note marker, got:\n%s", output)
	}

	buf.Reset()
	Pretty(&buf, bag, us, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyTokenListing(t *testing.T) {
	us := source.NewUnitSet()
	text := us.AddText("expr.calc", "1 + x")
	toks := lexer.Tokenize(us.Get(text), lexer.Options{})
	unit, listing := input.Reindex(us, "expr.calc#tokens", toks)

	// токены: 1, пробел, +, пробел, x, EOF
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemUndefinedName, source.Span{Unit: unit, Kind: source.UnitStream, Start: 4, End: 5}, "undefined name `x`"))

	var buf bytes.Buffer
	Pretty(&buf, bag, us, PrettyOpts{Context: 1, Tokens: TokenListings{unit: listing}})
	output := buf.String()

	for _, want := range []string{
		"--> expr.calc#tokens:[4..5)",
		"4 | Ident    \"x\"\n",
		"  | ^^^^^^^^^^^^\n",
		"3 | Space    \" \"\n",
		"5 | EOF\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in:\n%s", want, output)
		}
	}
}

func TestPlainAndPrettyCarrySameInformation(t *testing.T) {
	us := source.NewUnitSet()
	id := us.AddText("x.kv", "a = 1\na = 2\n")
	d := diag.New(diag.SevWarning, diag.SemDuplicateKey, source.Span{Unit: id, Start: 6, End: 7}, "duplicate key `a`").
		WithNote(source.Span{Unit: id, Start: 0, End: 1}, "first defined here")
	rep := Build([]diag.Diagnostic{d}, us, BuildOpts{})

	var plain, pretty bytes.Buffer
	if err := Emit(&plain, rep, nil); err != nil {
		t.Fatal(err)
	}
	if err := Emit(&pretty, rep, NewPrettyRenderer(us, PrettyOpts{ShowNotes: true})); err != nil {
		t.Fatal(err)
	}

	if got := plain.String(); !strings.HasPrefix(got, "warning[SEM3003]: duplicate key `a`\n  --> x.kv:2:1-2:2\n  note: x.kv:1:1-1:2: first defined here\n") {
		t.Fatalf("plain output:\n%s", got)
	}
	for _, want := range []string{"SEM3003", "duplicate key `a`", "x.kv:2:1", "x.kv:1:1", "first defined here", "0 error(s), 1 warning(s)"} {
		if !strings.Contains(plain.String(), want) || !strings.Contains(pretty.String(), want) {
			t.Errorf("%q missing from one of the renderings:\nplain:\n%s\npretty:\n%s", want, plain.String(), pretty.String())
		}
	}
}

func TestBuildOrdersAndTruncates(t *testing.T) {
	us := source.NewUnitSet()
	id := us.AddText("m.kv", "abcdef")
	at := func(start uint32) source.Span { return source.Span{Unit: id, Start: start, End: start + 1} }
	diags := []diag.Diagnostic{
		diag.NewError(diag.SynUnexpected, at(4), "third"),
		diag.New(diag.SevWarning, diag.SemValidation, at(0), "first"),
		diag.NewError(diag.SynExpected, at(2), "second"),
	}

	rep := Build(diags, us, BuildOpts{Max: 2})
	if rep.Errors != 2 || rep.Warnings != 1 || rep.Omitted != 1 {
		t.Fatalf("counts: %+v", rep)
	}
	if len(rep.Entries) != 2 || rep.Entries[0].Message != "first" || rep.Entries[1].Message != "second" {
		t.Fatalf("order: %+v", rep.Entries)
	}
	if diags[0].Message != "third" {
		t.Fatal("Build must not reorder the caller's slice")
	}

	unknown := Build([]diag.Diagnostic{diag.NewError(diag.SynUnexpected, source.Span{Unit: 42, Start: 1, End: 2}, "x")}, us, BuildOpts{})
	if unknown.Entries[0].Primary.Rendered != "42:1-2" {
		t.Fatalf("unknown unit rendering %q", unknown.Entries[0].Primary.Rendered)
	}
}
