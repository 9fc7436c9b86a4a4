package xreroute

import "testing"

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()

	r := NewBuilder().Build()
	if _, ok := r.Current().(Null); !ok {
		t.Fatalf("built target is %T, want Null", r.Current())
	}
}

func TestBuilderInitialSink(t *testing.T) {
	t.Parallel()

	s := &recordSink{enabled: true}
	r := NewBuilder().WithInitial(s).Build()

	r.Log(Record{Msg: "hello"})
	if s.logCount() != 1 {
		t.Fatalf("initial sink received %d records, want 1", s.logCount())
	}
	// Installing the initial sink must not flush it.
	if s.flushCount() != 0 {
		t.Fatalf("initial sink flushed %d times during construction", s.flushCount())
	}
}
