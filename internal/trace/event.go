package trace

import "time"

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint // instant, e.g. a backtrack
	KindHeartbeat
)

var kindNames = [...]string{"unknown", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Scope is the granularity of an event; coarser scopes have lower values,
// which is what Level.ShouldEmit compares.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // a CLI command or a whole check run
	ScopePass                    // lex or parse over one unit
	ScopeUnit                    // one input unit
	ScopeRule                    // one attempt of a Named rule
)

var scopeNames = [...]string{"unknown", "driver", "pass", "unit", "rule"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return scopeNames[0]
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // set by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64 // goroutine, one lane per parallel unit
	Name     string // "check", "unit", "lex", "parse", "rule:expr"
	Detail   string
	Extra    map[string]string
}
