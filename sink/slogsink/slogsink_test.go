package slogsink

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/trickstertwo/xreroute"
)

func TestJSONSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewJSON(&buf, xreroute.LevelInfo)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Log(xreroute.Record{
		At:     at,
		Level:  xreroute.LevelInfo,
		Target: "worker",
		Msg:    "job done",
		Fields: []xreroute.Field{
			xreroute.Str("job", "reindex"),
			xreroute.Int64("items", 42),
		},
	})

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("not a JSON line: %v (%q)", err, buf.String())
	}
	if got["msg"] != "job done" {
		t.Fatalf("msg = %v", got["msg"])
	}
	if got["target"] != "worker" {
		t.Fatalf("target = %v", got["target"])
	}
	if got["job"] != "reindex" {
		t.Fatalf("job = %v", got["job"])
	}
	if got["items"] != float64(42) {
		t.Fatalf("items = %v", got["items"])
	}
}

func TestMinLevelGates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewText(&buf, xreroute.LevelWarn)

	if s.Enabled(xreroute.Metadata{Level: xreroute.LevelInfo}) {
		t.Fatal("info enabled on warn-level handler")
	}
	s.Log(xreroute.Record{Level: xreroute.LevelInfo, Msg: "dropped", At: time.Now()})
	if buf.Len() != 0 {
		t.Fatalf("below-min record written: %q", buf.String())
	}

	s.Log(xreroute.Record{Level: xreroute.LevelError, Msg: "kept", At: time.Now()})
	if buf.Len() == 0 {
		t.Fatal("error record not written")
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	s := Discard()
	if s.Enabled(xreroute.Metadata{Level: xreroute.LevelFatal}) {
		t.Fatal("discard sink reports enabled")
	}
	s.Log(xreroute.Record{Msg: "dropped"})
	s.Flush()
}

func TestNilHandlerDegradesToDiscard(t *testing.T) {
	t.Parallel()

	s := New(nil)
	if s.Enabled(xreroute.Metadata{Level: xreroute.LevelError}) {
		t.Fatal("nil-handler sink reports enabled")
	}
}
