package multisink

import (
	"sync"
	"testing"

	"github.com/trickstertwo/xreroute"
)

type stubSink struct {
	mu      sync.Mutex
	enabled bool
	logs    int
	flushes int
}

func (s *stubSink) Enabled(xreroute.Metadata) bool { return s.enabled }

func (s *stubSink) Log(xreroute.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs++
}

func (s *stubSink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
}

func TestEnabledIsAny(t *testing.T) {
	t.Parallel()

	a := &stubSink{enabled: false}
	b := &stubSink{enabled: true}

	if !New(a, b).Enabled(xreroute.Metadata{Level: xreroute.LevelInfo}) {
		t.Fatal("enabled child not reflected")
	}
	if New(a).Enabled(xreroute.Metadata{Level: xreroute.LevelInfo}) {
		t.Fatal("all-disabled multi reports enabled")
	}
	if New().Enabled(xreroute.Metadata{Level: xreroute.LevelFatal}) {
		t.Fatal("empty multi reports enabled")
	}
}

func TestLogAndFlushReachAllChildren(t *testing.T) {
	t.Parallel()

	a := &stubSink{enabled: true}
	b := &stubSink{enabled: true}
	m := New(a, nil, b)

	m.Log(xreroute.Record{Msg: "one"})
	m.Log(xreroute.Record{Msg: "two"})
	m.Flush()

	for _, s := range []*stubSink{a, b} {
		if s.logs != 2 {
			t.Fatalf("child saw %d logs, want 2", s.logs)
		}
		if s.flushes != 1 {
			t.Fatalf("child saw %d flushes, want 1", s.flushes)
		}
	}
}
