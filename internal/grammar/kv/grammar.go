package kv

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"flexparse/internal/diag"
	"flexparse/internal/parse"
)

// Parser returns the document grammar. It is built once and shared.
var Parser = sync.OnceValue(buildDocument)

type none = struct{}

func discard[T any](p parse.Parser[T]) parse.Parser[none] {
	return parse.Map(p, func(T) none { return none{} })
}

func isLineBreak(r rune) bool { return r == '\n' || r == '\r' }

func buildDocument() parse.Parser[*Document] {
	blanks := parse.Blanks()
	comment := discard(parse.Seq2(parse.Char('#'), parse.Until(isLineBreak)))
	// "\r\n" is a single atom
	eol := parse.Label("end of line", parse.Alt(
		discard(parse.Satisfy("line break", isLineBreak)),
		parse.Peek(parse.EOF()),
	))
	rest := parse.Then(blanks, parse.Then(parse.Optional(comment), eol))

	key := parse.Label("key", parse.Map(parse.SepBy1(parse.Ident(), parse.Char('.')),
		func(parts []string) string { return strings.Join(parts, ".") }))

	str := parse.Map(parse.Delimited(parse.Char('"'),
		parse.Until(func(r rune) bool { return r == '"' || isLineBreak(r) }),
		parse.Char('"')), func(s string) Value { return Value{Kind: StringValue, Str: s} })

	notWord := parse.Not(parse.Satisfy("word character", func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}))
	boolean := parse.Map(parse.Skip(parse.Alt(parse.Literal("true"), parse.Literal("false")), notWord),
		func(s string) Value { return Value{Kind: BoolValue, Bool: s == "true"} })

	digits := parse.Map(parse.Seq2(parse.Optional(parse.Char('-')), parse.Many1(parse.Digit())),
		func(p parse.Pair[parse.Option[string], []string]) string {
			return p.First.Or("") + strings.Join(p.Second, "")
		})
	integer := parse.TryMap(parse.Skip(digits, notWord), func(s string) (Value, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, parse.Invalid(diag.SemOutOfRange, "integer %s does not fit in 64 bits", s)
		}
		return Value{Kind: IntValue, Int: n}, nil
	})

	value := parse.Label("value", parse.Alt(str, boolean, integer))

	entry := parse.Map(parse.WithSpan(parse.Seq3(
		parse.WithSpan(key),
		parse.Skip(blanks, parse.Then(parse.Char('='), blanks)),
		parse.WithSpan(value),
	)), func(s parse.Spanned[parse.Triple[parse.Spanned[string], string, parse.Spanned[Value]]]) Entry {
		t := s.Value
		return Entry{Key: t.First.Value, KeySpan: t.First.Span, Value: t.Third.Value, ValueSpan: t.Third.Span, Span: s.Span}
	})

	entryLine := parse.Map(parse.Skip(entry, rest), func(e Entry) parse.Option[Entry] {
		return parse.Option[Entry]{Value: e, Present: true}
	})
	// пустая строка или комментарий
	emptyLine := parse.Map(rest, func(none) parse.Option[Entry] { return parse.Option[Entry]{} })
	line := parse.Named("line", parse.Then(blanks, parse.Label("key", parse.Alt(entryLine, emptyLine))))

	return parse.Map(parse.ManyTill(line, parse.EOF()), func(lines []parse.Option[Entry]) *Document {
		doc := &Document{Entries: make([]Entry, 0, len(lines))}
		for _, l := range lines {
			if l.Present {
				doc.Entries = append(doc.Entries, l.Value)
			}
		}
		return doc
	})
}
