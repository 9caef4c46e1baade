package trace

import (
	"errors"
	"io"
	"sync"
)

// RingTracer keeps the most recent events of a run. A grammar that loops
// or blows its depth limit leaves the rules it was in at the tail.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	next   int // индекс следующей записи
	filled bool
	level  Level

	sink       io.Writer
	sinkFormat Format
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// DumpOnClose makes Close write the buffer to w in format.
func (t *RingTracer) DumpOnClose(w io.Writer, format Format) {
	t.mu.Lock()
	t.sink, t.sinkFormat = w, format
	t.mu.Unlock()
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	stored := *ev
	stored.Seq = NextSeq()
	t.events[t.next] = stored
	t.next++
	if t.next == len(t.events) {
		t.next = 0
		t.filled = true
	}
	t.mu.Unlock()
}

// Len is the number of buffered events.
func (t *RingTracer) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.filled {
		return len(t.events)
	}
	return t.next
}

// Snapshot copies the buffered events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.filled {
		return append([]Event(nil), t.events[:t.next]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Dump writes the buffered events to w. Chrome output gets its array
// wrapper so the file loads on its own.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	if format == FormatChrome {
		if _, err := io.WriteString(w, chromeHeader); err != nil {
			return err
		}
	}
	for i, ev := range events {
		if format == FormatChrome && i > 0 {
			if _, err := io.WriteString(w, ",\n"); err != nil {
				return err
			}
		}
		if _, err := w.Write(FormatEvent(ev, format)); err != nil {
			return err
		}
	}
	if format == FormatChrome {
		_, err := io.WriteString(w, chromeFooter)
		return err
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

// Close dumps to the DumpOnClose sink, if any, and closes it.
func (t *RingTracer) Close() error {
	t.mu.Lock()
	sink, format := t.sink, t.sinkFormat
	t.sink = nil
	t.mu.Unlock()
	if sink == nil {
		return nil
	}
	err := t.Dump(sink, format)
	if c, ok := sink.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
