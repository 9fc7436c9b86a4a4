// Package zerologsink bridges xreroute to rs/zerolog.
package zerologsink

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xreroute"
)

// Sink emits records through a zerolog.Logger.
//
// Level gating is delegated to the logger itself: Enabled maps the record
// level and compares against the logger's level, and Log drops early before
// allocating a zerolog.Event when disabled.
type Sink struct {
	l zerolog.Logger
}

var _ xreroute.Sink = (*Sink)(nil)

// New wraps an already configured zerolog.Logger.
func New(l zerolog.Logger) *Sink {
	return &Sink{l: l}
}

// Console returns a sink writing human-readable lines to w (default
// os.Stderr). This is the usual early-boot destination before the real one
// is known.
func Console(w io.Writer) *Sink {
	if w == nil {
		w = os.Stderr
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	return New(l)
}

func (s *Sink) Enabled(m xreroute.Metadata) bool {
	return mapLevel(m.Level) >= s.l.GetLevel()
}

// Log emits a single record.
//   - The record's authoritative timestamp is written as "ts" with
//     RFC3339Nano precision, independent of zerolog's own time field.
//   - Fatal maps to error level to avoid os.Exit side effects.
func (s *Sink) Log(r xreroute.Record) {
	zlvl := mapLevel(r.Level)

	// Fast path: drop before allocating an Event.
	if zlvl < s.l.GetLevel() {
		return
	}

	ev := s.l.WithLevel(zlvl)
	ev.Str("ts", r.At.UTC().Format(time.RFC3339Nano))
	if r.Target != "" {
		ev.Str("target", r.Target)
	}
	for i := range r.Fields {
		appendEventField(ev, &r.Fields[i])
	}
	ev.Msg(r.Msg)
}

// Flush is a no-op: zerolog writes synchronously and buffers nothing here.
func (s *Sink) Flush() {}

// mapLevel converts xreroute.Level to zerolog.Level. Fatal maps to Error so
// a library sink never exits the process.
func mapLevel(l xreroute.Level) zerolog.Level {
	switch {
	case l <= xreroute.LevelTrace:
		return zerolog.TraceLevel
	case l <= xreroute.LevelDebug:
		return zerolog.DebugLevel
	case l <= xreroute.LevelInfo:
		return zerolog.InfoLevel
	case l <= xreroute.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func appendEventField(e *zerolog.Event, f *xreroute.Field) {
	switch f.Kind {
	case xreroute.KindString:
		e.Str(f.K, f.Str)
	case xreroute.KindInt64:
		e.Int64(f.K, f.Int64)
	case xreroute.KindUint64:
		e.Uint64(f.K, f.Uint64)
	case xreroute.KindFloat64:
		e.Float64(f.K, f.Float64)
	case xreroute.KindBool:
		e.Bool(f.K, f.Bool)
	case xreroute.KindDuration:
		e.Dur(f.K, f.Dur)
	case xreroute.KindTime:
		e.Time(f.K, f.Time)
	case xreroute.KindError:
		if f.Err != nil {
			if f.K == "" || f.K == "error" {
				e.Err(f.Err)
			} else {
				e.AnErr(f.K, f.Err)
			}
		}
	case xreroute.KindBytes:
		e.Bytes(f.K, f.Bytes)
	case xreroute.KindAny:
		e.Interface(f.K, f.Any)
	default:
		// Keep a placeholder to preserve shape.
		e.Interface(f.K, nil)
	}
}
