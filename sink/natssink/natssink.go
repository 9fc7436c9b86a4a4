// Package natssink publishes records to a NATS subject, one JSON message
// per record, for centralized collection.
package natssink

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/trickstertwo/xreroute"
)

// Option configures a Sink at construction time.
type Option func(*Sink)

// WithMinLevel drops records below l.
func WithMinLevel(l xreroute.Level) Option {
	return func(s *Sink) { s.min = l }
}

// WithErrorHandler installs a callback for encode and publish failures.
// The default handler drops the error.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Sink) { s.onError = fn }
}

// Sink publishes each record to a fixed subject. Publish is fire-and-forget
// and buffered by the NATS client; Flush round-trips to the server, so it
// blocks until everything buffered has been sent.
type Sink struct {
	nc       *nats.Conn
	subject  string
	min      xreroute.Level
	onError  func(error)
	ownsConn bool
}

var _ xreroute.Sink = (*Sink)(nil)

// New wraps an existing connection. The caller keeps ownership of nc; Close
// on the sink will not close it.
func New(nc *nats.Conn, subject string, opts ...Option) (*Sink, error) {
	if nc == nil {
		return nil, errors.New("nats sink: nil connection")
	}
	if subject == "" {
		return nil, errors.New("nats sink: empty subject")
	}
	s := &Sink{nc: nc, subject: subject, min: xreroute.LevelTrace}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dial connects to url and wraps the connection. Close on the sink closes
// the connection.
func Dial(url, subject string, opts ...Option) (*Sink, error) {
	nc, err := nats.Connect(url, nats.Name("xreroute"))
	if err != nil {
		return nil, errors.Wrap(err, "connect nats")
	}
	s, err := New(nc, subject, opts...)
	if err != nil {
		nc.Close()
		return nil, err
	}
	s.ownsConn = true
	return s, nil
}

func (s *Sink) Enabled(m xreroute.Metadata) bool {
	return m.Level >= s.min && !s.nc.IsClosed()
}

func (s *Sink) Log(r xreroute.Record) {
	if r.Level < s.min {
		return
	}
	payload, err := encode(r)
	if err != nil {
		s.reportError(errors.Wrap(err, "encode record"))
		return
	}
	if err := s.nc.Publish(s.subject, payload); err != nil {
		s.reportError(errors.Wrap(err, "publish record"))
	}
}

// Flush waits for buffered messages to reach the server.
func (s *Sink) Flush() {
	if err := s.nc.Flush(); err != nil {
		s.reportError(errors.Wrap(err, "flush"))
	}
}

// Close flushes and, when the sink owns the connection, closes it.
func (s *Sink) Close() {
	s.Flush()
	if s.ownsConn {
		s.nc.Close()
	}
}

func (s *Sink) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

type message struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	Target string         `json:"target,omitempty"`
	Msg    string         `json:"msg"`
	Fields map[string]any `json:"fields,omitempty"`
}

func encode(r xreroute.Record) ([]byte, error) {
	m := message{
		TS:     r.At.UTC().Format(time.RFC3339Nano),
		Level:  r.Level.String(),
		Target: r.Target,
		Msg:    r.Msg,
	}
	if len(r.Fields) > 0 {
		m.Fields = make(map[string]any, len(r.Fields))
		for _, f := range r.Fields {
			m.Fields[f.K] = f.Value()
		}
	}
	return json.Marshal(m)
}
