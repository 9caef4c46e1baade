package kv

import (
	"strconv"

	"flexparse/internal/source"
)

// ValueKind tells which field of Value is set.
type ValueKind uint8

const (
	IntValue ValueKind = iota
	StringValue
	BoolValue
)

func (k ValueKind) String() string {
	switch k {
	case IntValue:
		return "int"
	case StringValue:
		return "string"
	case BoolValue:
		return "bool"
	}
	return "unknown"
}

// Value is one right-hand side.
type Value struct {
	Kind ValueKind
	Int  int64
	Str  string
	Bool bool
}

func (v Value) String() string {
	switch v.Kind {
	case StringValue:
		return strconv.Quote(v.Str)
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	}
	return strconv.FormatInt(v.Int, 10)
}

// Entry is `key = value`.
type Entry struct {
	Key       string
	KeySpan   source.Span
	Value     Value
	ValueSpan source.Span
	Span      source.Span
}

// Document is a parsed file; blank and comment lines are dropped.
type Document struct {
	Entries []Entry
}

// Lookup returns the first entry for key.
func (d *Document) Lookup(key string) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}
