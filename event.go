package xreroute

import (
	"sync"
	"time"

	"github.com/trickstertwo/xclock"
)

// Event is a fluent builder for a single record sent through the facade.
// Usage: xreroute.Info().Str("stage", "boot").Msg("listening")
//
// The destination is snapshotted when the event is created, so the whole
// event (Enabled check and Log) goes to one sink even if a Redirect lands
// in between.

type Event struct {
	sink   Sink
	level  Level
	target string
	fields []Field
}

var eventPool = sync.Pool{
	New: func() any { return &Event{fields: make([]Field, 0, 8)} },
}

func getEvent(s Sink, level Level) *Event {
	ev := eventPool.Get().(*Event)
	ev.sink = s
	ev.level = level
	ev.target = ""
	ev.fields = ev.fields[:0]
	return ev
}

func (e *Event) putBack() {
	// allow GC of large backing arrays by capping
	if cap(e.fields) > 128 {
		e.fields = make([]Field, 0, 8)
	}
	e.sink = nil
	e.level = 0
	eventPool.Put(e)
}

// Level entry points on the facade.

func Trace() *Event { return getEvent(destination(), LevelTrace) }
func Debug() *Event { return getEvent(destination(), LevelDebug) }
func Info() *Event  { return getEvent(destination(), LevelInfo) }
func Warn() *Event  { return getEvent(destination(), LevelWarn) }
func Error() *Event { return getEvent(destination(), LevelError) }
func Fatal() *Event { return getEvent(destination(), LevelFatal) }

// To sets the record's target (a module path or component name).
func (e *Event) To(target string) *Event {
	e.target = target
	return e
}

// Field builders (zerolog-style).

func (e *Event) Str(k, v string) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindString, Str: v})
	return e
}

func (e *Event) Int(k string, v int) *Event { return e.Int64(k, int64(v)) }

func (e *Event) Int64(k string, v int64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindInt64, Int64: v})
	return e
}

func (e *Event) Uint64(k string, v uint64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindUint64, Uint64: v})
	return e
}

func (e *Event) Float64(k string, v float64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindFloat64, Float64: v})
	return e
}

func (e *Event) Bool(k string, v bool) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindBool, Bool: v})
	return e
}

func (e *Event) Dur(k string, v time.Duration) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindDuration, Dur: v})
	return e
}

func (e *Event) Time(k string, v time.Time) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindTime, Time: v})
	return e
}

func (e *Event) Bytes(k string, v []byte) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindBytes, Bytes: v})
	return e
}

func (e *Event) Err(err error) *Event {
	if err == nil {
		return e
	}
	e.fields = append(e.fields, Field{K: "error", Kind: KindError, Err: err})
	return e
}

func (e *Event) Any(k string, v any) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindAny, Any: v})
	return e
}

// Msg terminates the builder and emits the record.
func (e *Event) Msg(msg string) {
	md := Metadata{Level: e.level, Target: e.target}
	if e.sink.Enabled(md) {
		// Single authoritative timestamp from xclock.
		e.sink.Log(Record{
			At:     xclock.Now(),
			Level:  e.level,
			Target: e.target,
			Msg:    msg,
			Fields: e.fields,
		})
	}
	e.putBack()
}
