// Package slogsink bridges xreroute to log/slog handlers.
package slogsink

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xreroute"
)

// Sink emits records through a slog.Handler. xreroute levels share slog's
// numeric scale, so levels pass through unmapped.
type Sink struct {
	h slog.Handler
}

var _ xreroute.Sink = (*Sink)(nil)

// New wraps a handler. A nil handler degrades to Discard.
func New(h slog.Handler) *Sink {
	if h == nil {
		h = discardHandler{}
	}
	return &Sink{h: h}
}

// NewJSON returns a sink writing JSON lines to w (default os.Stdout) at
// minLevel and above.
func NewJSON(w io.Writer, minLevel xreroute.Level) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.Level(minLevel)}))
}

// NewText returns a sink writing logfmt-style lines to w (default os.Stdout)
// at minLevel and above.
func NewText(w io.Writer, minLevel xreroute.Level) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(minLevel)}))
}

// Discard returns a sink that reports disabled and drops everything.
func Discard() *Sink {
	return New(discardHandler{})
}

func (s *Sink) Enabled(m xreroute.Metadata) bool {
	return s.h.Enabled(context.Background(), slog.Level(m.Level))
}

func (s *Sink) Log(r xreroute.Record) {
	lvl := slog.Level(r.Level)
	if !s.h.Enabled(context.Background(), lvl) {
		return
	}

	rec := slog.NewRecord(r.At, lvl, r.Msg, 0)
	if r.Target != "" {
		rec.AddAttrs(slog.String("target", r.Target))
	}
	for i := range r.Fields {
		rec.AddAttrs(toAttr(r.Fields[i]))
	}
	_ = s.h.Handle(context.Background(), rec)
}

// Flush is a no-op: slog handlers write synchronously.
func (s *Sink) Flush() {}

func toAttr(f xreroute.Field) slog.Attr {
	switch f.Kind {
	case xreroute.KindString:
		return slog.String(f.K, f.Str)
	case xreroute.KindInt64:
		return slog.Int64(f.K, f.Int64)
	case xreroute.KindUint64:
		return slog.Uint64(f.K, f.Uint64)
	case xreroute.KindFloat64:
		return slog.Float64(f.K, f.Float64)
	case xreroute.KindBool:
		return slog.Bool(f.K, f.Bool)
	case xreroute.KindDuration:
		return slog.Duration(f.K, f.Dur)
	case xreroute.KindTime:
		return slog.Time(f.K, f.Time)
	case xreroute.KindError:
		return slog.Any(f.K, f.Err)
	case xreroute.KindBytes:
		return slog.Any(f.K, f.Bytes)
	case xreroute.KindAny:
		return slog.Any(f.K, f.Any)
	default:
		return slog.Any(f.K, nil)
	}
}

// discardHandler drops all records and reports disabled for every level.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
