// Package filesink provides an append-only file sink with an inter-process
// flock around writes, so several processes can share one log file.
package filesink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/trickstertwo/xreroute"
)

// DefaultBufferSize for the write buffer.
const DefaultBufferSize = 32 * 1024

// Format selects the line format.
type Format int

const (
	// FormatText writes one human-readable line per record (default).
	FormatText Format = iota
	// FormatJSON writes one JSON object per record.
	FormatJSON
)

// Option configures a Sink at construction time.
type Option func(*Sink)

// WithFormat selects text or JSON lines.
func WithFormat(f Format) Option {
	return func(s *Sink) { s.format = f }
}

// WithMinLevel drops records below l.
func WithMinLevel(l xreroute.Level) Option {
	return func(s *Sink) { s.min = l }
}

// WithBufferSize overrides the write buffer size.
func WithBufferSize(n int) Option {
	return func(s *Sink) { s.bufSize = n }
}

// WithErrorHandler installs a callback for write and flush failures. Sink
// operations themselves return nothing, so this is the only failure channel
// on the hot path. The default handler drops the error.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Sink) { s.onError = fn }
}

// Sink appends records to a single file. Writes go through a buffered
// writer; Flush makes them visible on disk. Each write is guarded by an
// inter-process flock on the log path so lines from cooperating processes
// do not interleave.
type Sink struct {
	mu      sync.Mutex
	file    *os.File
	w       *bufio.Writer
	lock    *flock.Flock
	path    string
	min     xreroute.Level
	format  Format
	bufSize int
	onError func(error)
	closed  bool
}

var _ xreroute.Sink = (*Sink)(nil)

// New opens (creating if needed) the log file at path for appending.
func New(path string, opts ...Option) (*Sink, error) {
	s := &Sink{
		min:     xreroute.LevelTrace,
		bufSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bufSize <= 0 {
		s.bufSize = DefaultBufferSize
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}

	s.file = file
	s.w = bufio.NewWriterSize(file, s.bufSize)
	s.lock = flock.New(cleanPath)
	s.path = cleanPath
	return s, nil
}

// Path returns the cleaned log file path.
func (s *Sink) Path() string { return s.path }

func (s *Sink) Enabled(m xreroute.Metadata) bool {
	if m.Level < s.min {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

func (s *Sink) Log(r xreroute.Record) {
	if r.Level < s.min {
		return
	}

	line, err := s.formatLine(r)
	if err != nil {
		s.reportError(errors.Wrap(err, "format record"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if err := s.lock.Lock(); err != nil {
		s.reportError(errors.Wrap(err, "acquire file lock"))
		return
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.reportError(errors.Wrap(err, "release file lock"))
		}
	}()

	if _, err := s.w.Write(line); err != nil {
		s.reportError(errors.Wrap(err, "write record"))
	}
}

// Flush drains the write buffer to the file.
func (s *Sink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.w == nil {
		return
	}
	if err := s.w.Flush(); err != nil {
		s.reportError(errors.Wrap(err, "flush"))
	}
}

// Close flushes and closes the file. Further Log calls are dropped.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.w.Flush(); err != nil {
		errs = append(errs, errors.Wrap(err, "flush"))
	}
	if err := s.file.Close(); err != nil {
		errs = append(errs, errors.Wrap(err, "close file"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func (s *Sink) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

func (s *Sink) formatLine(r xreroute.Record) ([]byte, error) {
	if s.format == FormatJSON {
		return s.formatJSON(r)
	}
	return s.formatText(r), nil
}

type jsonLine struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	Target string         `json:"target,omitempty"`
	Msg    string         `json:"msg"`
	Fields map[string]any `json:"fields,omitempty"`
}

func (s *Sink) formatJSON(r xreroute.Record) ([]byte, error) {
	line := jsonLine{
		TS:     r.At.UTC().Format(time.RFC3339Nano),
		Level:  r.Level.String(),
		Target: r.Target,
		Msg:    r.Msg,
	}
	if len(r.Fields) > 0 {
		line.Fields = make(map[string]any, len(r.Fields))
		for _, f := range r.Fields {
			line.Fields[f.K] = f.Value()
		}
	}
	data, err := json.Marshal(line)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (s *Sink) formatText(r xreroute.Record) []byte {
	var b strings.Builder
	b.WriteString(r.At.UTC().Format(time.RFC3339Nano))
	b.WriteString(" [")
	b.WriteString(r.Level.String())
	b.WriteString("]")
	if r.Target != "" {
		b.WriteString(" ")
		b.WriteString(r.Target)
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(r.Msg)
	for _, f := range r.Fields {
		fmt.Fprintf(&b, " %s=%v", f.K, f.Value())
	}
	b.WriteString("\n")
	return []byte(b.String())
}
