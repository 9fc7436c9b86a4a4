// Package zapsink bridges xreroute to go.uber.org/zap.
package zapsink

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xreroute"
)

// Sink emits records through a zap.Logger.
//
// Log uses Logger.Check so no fields are built when the level is disabled.
// The record's authoritative timestamp is written as a "ts" string field
// with RFC3339Nano precision, independent of the encoder's own time key.
type Sink struct {
	l     *zap.Logger
	tsKey string
}

var _ xreroute.Sink = (*Sink)(nil)

// New wraps a zap logger. A nil logger degrades to zap.NewNop.
func New(l *zap.Logger) *Sink {
	return NewWithTimestampKey(l, "ts")
}

// NewWithTimestampKey lets callers override the timestamp field key.
func NewWithTimestampKey(l *zap.Logger, tsKey string) *Sink {
	if l == nil {
		l = zap.NewNop()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Sink{l: l, tsKey: tsKey}
}

func (s *Sink) Enabled(m xreroute.Metadata) bool {
	return s.l.Core().Enabled(toZapLevel(m.Level))
}

func (s *Sink) Log(r xreroute.Record) {
	ce := s.l.Check(toZapLevel(r.Level), r.Msg)
	if ce == nil {
		return
	}

	zfs := make([]zap.Field, 0, 2+len(r.Fields))
	zfs = append(zfs, zap.String(s.tsKey, r.At.UTC().Format(time.RFC3339Nano)))
	if r.Target != "" {
		zfs = append(zfs, zap.String("target", r.Target))
	}
	for i := range r.Fields {
		zfs = append(zfs, toZapField(&r.Fields[i]))
	}
	ce.Write(zfs...)
}

// Flush maps to Logger.Sync. Sync errors on stderr-backed loggers are
// expected on some platforms and ignored, matching zap's own guidance.
func (s *Sink) Flush() {
	_ = s.l.Sync()
}

// toZapLevel converts xreroute.Level to zapcore.Level. Trace maps to Debug
// (zap has no trace) and Fatal to Error to avoid os.Exit in library code.
func toZapLevel(l xreroute.Level) zapcore.Level {
	switch {
	case l <= xreroute.LevelDebug:
		return zapcore.DebugLevel
	case l <= xreroute.LevelInfo:
		return zapcore.InfoLevel
	case l <= xreroute.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func toZapField(f *xreroute.Field) zap.Field {
	switch f.Kind {
	case xreroute.KindString:
		return zap.String(f.K, f.Str)
	case xreroute.KindInt64:
		return zap.Int64(f.K, f.Int64)
	case xreroute.KindUint64:
		return zap.Uint64(f.K, f.Uint64)
	case xreroute.KindFloat64:
		return zap.Float64(f.K, f.Float64)
	case xreroute.KindBool:
		return zap.Bool(f.K, f.Bool)
	case xreroute.KindDuration:
		return zap.Duration(f.K, f.Dur)
	case xreroute.KindTime:
		return zap.Time(f.K, f.Time)
	case xreroute.KindError:
		if f.K == "" || f.K == "error" {
			return zap.Error(f.Err)
		}
		return zap.NamedError(f.K, f.Err)
	case xreroute.KindBytes:
		return zap.Binary(f.K, f.Bytes)
	case xreroute.KindAny:
		return zap.Any(f.K, f.Any)
	default:
		return zap.Skip()
	}
}
