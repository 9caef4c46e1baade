package parse_test

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"flexparse/internal/diag"
	"flexparse/internal/parse"
	"flexparse/internal/source"
	"flexparse/internal/trace"
)

func TestIdentWithOptionalComma(t *testing.T) {
	st := textState(t, "hello,")
	p := parse.Skip(parse.WithSpan(parse.Ident()), parse.Optional(parse.Char(',')))

	r := p.Parse(st)
	if !r.Ok() {
		t.Fatalf("expected success, got %+v", r.Diags)
	}
	if r.Value.Value != "hello" {
		t.Fatalf("value = %q, want hello", r.Value.Value)
	}
	checkSpan(t, "ident", r.Value.Span, 0, 5)
	checkSpan(t, "whole", r.Span, 0, 6)
}

func TestDigitPlusStopsBeforeLetter(t *testing.T) {
	st := textState(t, "12a")
	r := parse.Many1(parse.Digit()).Parse(st)
	if !r.Ok() {
		t.Fatalf("expected success, got %+v", r.Diags)
	}
	if !slices.Equal(r.Value, []string{"1", "2"}) {
		t.Fatalf("value = %v", r.Value)
	}
	checkSpan(t, "digits", r.Span, 0, 2)
	if got := st.Cur.Position(); got != 2 {
		t.Fatalf("cursor at %d, want 2", got)
	}
	if st.Cur.AtEnd() {
		t.Fatal("cursor must not be exhausted")
	}
}

func TestAltFirstSuccessWins(t *testing.T) {
	st := textState(t, "foobar")
	r := parse.Or(parse.Literal("foo"), parse.Literal("foobar")).Parse(st)
	if !r.Ok() || r.Value != "foo" {
		t.Fatalf("got %+v", r)
	}
	checkSpan(t, "alt", r.Span, 0, 3)
}

func TestAltFurthestProgress(t *testing.T) {
	long := parse.Seq(parse.Literal("a"), parse.Literal("b"), parse.Literal("c"), parse.Literal("x"))
	short := parse.Seq(parse.Literal("a"), parse.Literal("z"))

	tests := []struct {
		name string
		p    parse.Parser[[]string]
	}{
		{"long first", parse.Alt(long, short)},
		{"short first", parse.Alt(short, long)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := textState(t, "abcd")
			r := tt.p.Parse(st)
			if !r.Failed() {
				t.Fatalf("expected failure, got %+v", r)
			}
			if r.Span.Start != 3 {
				t.Fatalf("failure at %d, want 3", r.Span.Start)
			}
			if len(r.Diags) != 1 || r.Diags[0].Primary.Start != 3 {
				t.Fatalf("unexpected diagnostics %+v", r.Diags)
			}
			if st.Cur.Position() != 0 {
				t.Fatalf("alt must rewind, cursor at %d", st.Cur.Position())
			}
		})
	}
}

func TestAltPartialLiteralKeepsProgress(t *testing.T) {
	tests := []struct {
		name string
		p    parse.Parser[string]
	}{
		{"long first", parse.Alt(parse.Literal("abcx"), parse.Literal("ax"))},
		{"short first", parse.Alt(parse.Literal("ax"), parse.Literal("abcx"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := textState(t, "abcd")
			r := tt.p.Parse(st)
			if !r.Failed() {
				t.Fatalf("expected failure, got %+v", r)
			}
			checkSpan(t, "failure", r.Span, 3, 4)
			if len(r.Diags) != 1 {
				t.Fatalf("want only the furthest diagnostic, got %+v", r.Diags)
			}
			if d := r.Diags[0]; d.Primary.Start != 3 || d.Message != `expected "abcx", found "d"` {
				t.Fatalf("unexpected diagnostic %+v", d)
			}
			if st.Cur.Position() != 0 {
				t.Fatalf("alt must rewind, cursor at %d", st.Cur.Position())
			}
		})
	}
}

func warnAtHere(msg string) parse.Parser[string] {
	return parse.Func[string](func(st *parse.State) parse.Result[string] {
		sp := st.Cur.Here()
		return parse.Failure[string](sp, diag.New(diag.SevWarning, diag.SynExpected, sp, msg))
	})
}

func TestAltTieMergesInDeclarationOrder(t *testing.T) {
	tests := []struct {
		name string
		p    parse.Parser[string]
		want []diag.Severity
	}{
		{"warning first", parse.Alt(warnAtHere("soft"), parse.Literal("x")), []diag.Severity{diag.SevWarning, diag.SevError}},
		{"error first", parse.Alt(parse.Literal("x"), warnAtHere("soft")), []diag.Severity{diag.SevError, diag.SevWarning}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.p.Parse(textState(t, "y"))
			if !r.Failed() {
				t.Fatalf("expected failure")
			}
			var got []diag.Severity
			for _, d := range r.Diags {
				got = append(got, d.Severity)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("severities = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAltIncomparableFailuresAreFatal(t *testing.T) {
	failIn := func(unit source.UnitID) parse.Parser[string] {
		return parse.Func[string](func(*parse.State) parse.Result[string] {
			sp := source.Span{Unit: unit}
			return parse.Failure[string](sp, diag.NewError(diag.SynExpected, sp, "nope"))
		})
	}
	r := parse.Alt(failIn(1), failIn(2)).Parse(textState(t, "a"))
	if !r.Fatal() || !errors.Is(r.Err, source.ErrIncomparableSpan) {
		t.Fatalf("expected incomparable span error, got %+v", r)
	}
}

func TestZeroWidthRepetition(t *testing.T) {
	zero := parse.Many(parse.Optional(parse.Nothing[string]()))

	r := zero.Parse(textState(t, "abc"))
	if !r.Fatal() || !errors.Is(r.Err, parse.ErrZeroWidthRepetition) {
		t.Fatalf("expected ErrZeroWidthRepetition, got %+v", r)
	}

	// fatal errors bypass the alternative retry
	alt := parse.Alt(parse.Map(zero, func([]parse.Option[string]) string { return "" }), parse.Literal("abc"))
	_, _, err := parse.Run(alt, textState(t, "abc"))
	var ge *parse.GrammarError
	if !errors.As(err, &ge) || !errors.Is(err, parse.ErrZeroWidthRepetition) {
		t.Fatalf("expected *GrammarError, got %v", err)
	}

	sep := parse.SepBy(parse.Literal("a"), parse.Empty[string]())
	if r := sep.Parse(textState(t, "aa")); r.Fatal() {
		t.Fatalf("consuming iterations are fine: %v", r.Err)
	}
	sepZero := parse.SepBy(parse.Optional(parse.Literal("b")), parse.Empty[string]())
	if r := sepZero.Parse(textState(t, "aa")); !errors.Is(r.Err, parse.ErrZeroWidthRepetition) {
		t.Fatalf("expected zero-width error from SepBy, got %+v", r)
	}
}

func TestDeterminismUnderBacktracking(t *testing.T) {
	st := textState(t, "e\u0301\r\nx\U0001F1E9\U0001F1EA!")
	four := parse.Seq(parse.Any(), parse.Any(), parse.Any(), parse.Any())

	first := four.Parse(st)
	if !first.Ok() {
		t.Fatalf("first pass failed: %+v", first.Diags)
	}
	st.Cur.Restore(0)
	second := four.Parse(st)
	if !second.Ok() {
		t.Fatalf("second pass failed: %+v", second.Diags)
	}
	if !slices.Equal(first.Value, second.Value) || first.Span != second.Span {
		t.Fatalf("replay diverged:\n%+v\n%+v", first.Value, second.Value)
	}
	if first.Value[0].Text != "e\u0301" || first.Value[1].Text != "\r\n" {
		t.Fatalf("unexpected clusters %q %q", first.Value[0].Text, first.Value[1].Text)
	}
}

func TestSequenceDoesNotRewind(t *testing.T) {
	st := textState(t, "abc")
	r := parse.Seq2(parse.Literal("ab"), parse.Literal("x")).Parse(st)
	if !r.Failed() {
		t.Fatal("expected failure")
	}
	if st.Cur.Position() != 2 {
		t.Fatalf("cursor at %d, want 2", st.Cur.Position())
	}
	checkSpan(t, "failure", r.Span, 2, 3)

	// a failing first element short-circuits
	calls := 0
	counted := parse.Func[string](func(st *parse.State) parse.Result[string] {
		calls++
		return parse.Success("", st.Cur.Here())
	})
	parse.Seq2(parse.Literal("z"), counted).Parse(textState(t, "abc"))
	if calls != 0 {
		t.Fatal("second element must not run")
	}
}

func TestLookahead(t *testing.T) {
	st := textState(t, "ab")
	if r := parse.Peek(parse.Literal("ab")).Parse(st); !r.Ok() || r.Value != "ab" || st.Cur.Position() != 0 {
		t.Fatalf("peek: %+v at %d", r, st.Cur.Position())
	}
	if r := parse.Not(parse.Literal("x")).Parse(st); !r.Ok() {
		t.Fatalf("not x should succeed")
	}
	r := parse.Not(parse.Literal("a")).Parse(st)
	if !r.Failed() || r.Diags[0].Code != diag.SynUnexpected {
		t.Fatalf("not a should fail with SynUnexpected, got %+v", r)
	}
	if st.Cur.Position() != 0 {
		t.Fatal("lookahead consumed input")
	}
}

func number() parse.Parser[int] {
	return parse.TryMap(parse.Many1(parse.Digit()), func(ds []string) (int, error) {
		return strconv.Atoi(strings.Join(ds, ""))
	})
}

func TestValidateDowngradesSuccess(t *testing.T) {
	octet := parse.Validate(number(), func(n int) error {
		if n > 255 {
			return parse.Invalid(diag.SemOutOfRange, "value %d out of range 0..255", n)
		}
		return nil
	})

	if r := octet.Parse(textState(t, "200")); !r.Ok() || r.Value != 200 {
		t.Fatalf("200: %+v", r)
	}

	r := octet.Parse(textState(t, "300"))
	if !r.Failed() {
		t.Fatal("300 should fail")
	}
	d := r.Diags[0]
	if d.Code != diag.SemOutOfRange || d.Message != "value 300 out of range 0..255" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	checkSpan(t, "validation", d.Primary, 0, 3)

	plain := parse.Validate(number(), func(int) error { return errors.New("always") })
	if r := plain.Parse(textState(t, "1")); r.Diags[0].Code != diag.SemValidation {
		t.Fatalf("default code = %v", r.Diags[0].Code)
	}
}

func TestRunAllReportsTrailingInput(t *testing.T) {
	_, _, err := parse.RunAll(parse.Ident(), textState(t, "abc def"))
	var se *parse.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	d := se.Diags[0]
	if d.Code != diag.SynTrailingInput || d.Primary.Start != 3 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if !strings.Contains(se.Error(), `found " "`) {
		t.Fatalf("error text %q", se.Error())
	}

	v, sp, err := parse.RunAll(parse.Ident(), textState(t, "abc"))
	if err != nil || v != "abc" {
		t.Fatalf("RunAll: %q %v", v, err)
	}
	checkSpan(t, "run", sp, 0, 3)
}

func TestRepetitionVariants(t *testing.T) {
	st := textState(t, "1,2,3,")
	r := parse.SepBy(parse.Digit(), parse.Char(',')).Parse(st)
	if !r.Ok() || !slices.Equal(r.Value, []string{"1", "2", "3"}) {
		t.Fatalf("sepBy: %+v", r)
	}
	if st.Cur.Position() != 5 {
		t.Fatalf("trailing separator consumed, cursor at %d", st.Cur.Position())
	}

	if r := parse.SepBy(parse.Digit(), parse.Char(',')).Parse(textState(t, "")); !r.Ok() || len(r.Value) != 0 {
		t.Fatalf("empty sepBy: %+v", r)
	}
	if r := parse.SepBy1(parse.Digit(), parse.Char(',')).Parse(textState(t, "x")); !r.Failed() {
		t.Fatal("sepBy1 needs one element")
	}

	if r := parse.Repeat(parse.Digit(), 2, 3).Parse(textState(t, "1234")); !r.Ok() || len(r.Value) != 3 {
		t.Fatalf("repeat 2..3: %+v", r)
	}
	r = parse.Repeat(parse.Digit(), 2, 3).Parse(textState(t, "1a"))
	if !r.Failed() || r.Span.Start != 1 {
		t.Fatalf("repeat below min: %+v", r)
	}

	bad := parse.Repeat(parse.Digit(), 3, 2).Parse(textState(t, "12345"))
	var ge *parse.GrammarError
	if !bad.Fatal() || !errors.As(bad.Err, &ge) || !errors.Is(bad.Err, parse.ErrRepeatBounds) {
		t.Fatalf("min > max must abort, got %+v", bad)
	}
	if r := parse.Repeat(parse.Digit(), 2, 2).Parse(textState(t, "123")); !r.Ok() || len(r.Value) != 2 {
		t.Fatalf("repeat 2..2: %+v", r)
	}

	r = parse.Many1(parse.Digit()).Parse(textState(t, "x"))
	if !r.Failed() || len(r.Diags) != 1 || r.Diags[0].Message != `expected digit, found "x"` {
		t.Fatalf("many1: %+v", r.Diags)
	}
}

func TestEndOfInputDiagnostics(t *testing.T) {
	st := textState(t, "abx")
	r := parse.Literal("abc").Parse(st)
	if !r.Failed() {
		t.Fatal("expected failure")
	}
	if r.Diags[0].Code != diag.SynExpected || r.Diags[0].Primary.Start != 2 {
		t.Fatalf("mismatch in the middle is SynExpected at 2, got %+v", r.Diags[0])
	}
	if st.Cur.Position() != 0 {
		t.Fatalf("literal must rewind, cursor at %d", st.Cur.Position())
	}

	r = parse.Literal("abc").Parse(textState(t, "ab"))
	if r.Diags[0].Code != diag.SynUnexpectedEOF || r.Diags[0].Message != `expected "abc", found end of input` {
		t.Fatalf("truncated literal: %+v", r.Diags[0])
	}

	r = parse.Digit().Parse(textState(t, ""))
	if r.Diags[0].Code != diag.SynUnexpectedEOF || r.Diags[0].Message != "expected digit, found end of input" {
		t.Fatalf("unexpected %+v", r.Diags[0])
	}
}

func parens() parse.Parser[int] {
	return parse.Recursive("parens", func(self parse.Parser[int]) parse.Parser[int] {
		nested := parse.Map(parse.Between(parse.Char('('), self, parse.Char(')')), func(n int) int { return n + 1 })
		return parse.Alt(nested, parse.Pure(0))
	})
}

func TestRecursionLimit(t *testing.T) {
	st := textState(t, "((((()))))")
	v, _, err := parse.RunAll(parens(), st)
	if err != nil || v != 5 {
		t.Fatalf("unbounded: %d %v", v, err)
	}

	st = textState(t, "((((()))))")
	st.MaxDepth = 3
	_, _, err = parse.RunAll(parens(), st)
	if !errors.Is(err, parse.ErrRecursionLimitExceeded) {
		t.Fatalf("expected recursion limit, got %v", err)
	}
	if st.Depth() != 0 {
		t.Fatalf("depth not unwound: %d", st.Depth())
	}

	d := parse.FatalDiagnostic(err)
	if d.Code != diag.GrmRecursionLimit {
		t.Fatalf("fatal diagnostic code %v", d.Code)
	}
}

func TestLazyMutualRecursion(t *testing.T) {
	var list parse.Parser[[]int]
	item := parse.Alt(parse.Map(parse.Digit(), func(s string) int { return int(s[0] - '0') }),
		parse.Map(parse.Lazy(func() parse.Parser[[]int] { return list }), func(xs []int) int { return len(xs) }))
	list = parse.Between(parse.Char('['), parse.SepBy(item, parse.Char(',')), parse.Char(']'))

	v, _, err := parse.RunAll(list, textState(t, "[1,[2,3],4]"))
	if err != nil || !slices.Equal(v, []int{1, 2, 4}) {
		t.Fatalf("got %v %v", v, err)
	}
}

func TestNamedRulesAreTraced(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	st := textState(t, "42").WithTrace(ring, 0)
	if r := parse.Named("digits", parse.Many1(parse.Digit())).Parse(st); !r.Ok() {
		t.Fatal("expected success")
	}
	evs := ring.Snapshot()
	if len(evs) != 2 || evs[0].Name != "rule:digits" || evs[1].Detail != "ok" {
		t.Fatalf("unexpected events %+v", evs)
	}

	quiet := trace.NewRingTracer(16, trace.LevelDetail)
	st = textState(t, "42").WithTrace(quiet, 0)
	parse.Named("digits", parse.Many1(parse.Digit())).Parse(st)
	if len(quiet.Snapshot()) != 0 {
		t.Fatal("rule spans are debug-only")
	}
}

func TestGrammarIsSharedAcrossGoroutines(t *testing.T) {
	g := parse.SepBy1(number(), parse.Char('+'))
	inputs := []string{"1+2", "10+20+30", "7", "3+4+5+6"}

	var wg sync.WaitGroup
	sums := make([]int, len(inputs))
	for i, in := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st := textState(t, in)
			v, _, err := parse.RunAll(g, st)
			if err != nil {
				t.Errorf("%q: %v", in, err)
				return
			}
			for _, n := range v {
				sums[i] += n
			}
		}()
	}
	wg.Wait()
	if !slices.Equal(sums, []int{3, 60, 7, 18}) {
		t.Fatalf("sums = %v", sums)
	}
}

func TestSpacesAndUntil(t *testing.T) {
	st := textState(t, "  \t\r\nkey # note\n")
	if r := parse.Spaces().Parse(st); !r.Ok() || r.Value != "  \t\r\n" {
		t.Fatalf("spaces: %q", r.Value)
	}
	if r := parse.Lexeme(parse.Ident()).Parse(st); r.Value != "key" {
		t.Fatalf("ident: %q", r.Value)
	}
	r := parse.Until(func(r rune) bool { return r == '\n' }).Parse(st)
	if r.Value != "# note" {
		t.Fatalf("until: %q", r.Value)
	}
}

func TestManyTill(t *testing.T) {
	item := parse.Skip(parse.Digit(), parse.Char(';'))
	r := parse.ManyTill(item, parse.Char('.')).Parse(textState(t, "1;2;."))
	if !r.Ok() || !slices.Equal(r.Value, []string{"1", "2"}) {
		t.Fatalf("manyTill: %+v", r)
	}
	checkSpan(t, "manyTill", r.Span, 0, 5)

	r = parse.ManyTill(item, parse.Char('.')).Parse(textState(t, "1;2x."))
	if !r.Failed() || r.Diags[0].Message != `expected ';', found "x"` {
		t.Fatalf("item failure must surface: %+v", r.Diags)
	}

	zero := parse.ManyTill(parse.Optional(parse.Digit()), parse.EOF()).Parse(textState(t, "x"))
	if !errors.Is(zero.Err, parse.ErrZeroWidthRepetition) {
		t.Fatalf("expected zero-width error, got %+v", zero)
	}
}

func TestValidationFailureCountsAsProgress(t *testing.T) {
	small := parse.Validate(number(), func(n int) error {
		if n > 9 {
			return parse.Invalid(diag.SemOutOfRange, "too big")
		}
		return nil
	})
	word := parse.Map(parse.Ident(), func(string) int { return 0 })
	r := parse.Label("operand", parse.Alt(word, small)).Parse(textState(t, "42"))
	if !r.Failed() || len(r.Diags) != 1 || r.Diags[0].Code != diag.SemOutOfRange {
		t.Fatalf("validation diagnostic must win: %+v", r.Diags)
	}
	checkSpan(t, "failure point", r.Span, 2, 2)
}
