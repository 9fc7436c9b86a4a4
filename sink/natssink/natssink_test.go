package natssink

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/trickstertwo/xreroute"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload, err := encode(xreroute.Record{
		At:     at,
		Level:  xreroute.LevelError,
		Target: "ingest",
		Msg:    "parse failed",
		Fields: []xreroute.Field{
			xreroute.Str("file", "batch-7.csv"),
			xreroute.Int64("line", 133),
		},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var got message
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if got.TS != at.Format(time.RFC3339Nano) {
		t.Fatalf("ts = %q", got.TS)
	}
	if got.Level != "ERROR" || got.Target != "ingest" || got.Msg != "parse failed" {
		t.Fatalf("unexpected message: %+v", got)
	}
	if got.Fields["file"] != "batch-7.csv" || got.Fields["line"] != float64(133) {
		t.Fatalf("fields = %v", got.Fields)
	}
}

func TestConstructorValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, "logs"); err == nil {
		t.Fatal("nil connection accepted")
	}
	if _, err := New(&nats.Conn{}, ""); err == nil {
		t.Fatal("empty subject accepted")
	}
}

// TestPublishRoundTrip needs a running server; set NATS_URL to enable it.
func TestPublishRoundTrip(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set")
	}

	s, err := Dial(url, "xreroute.test.logs")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer s.Close()

	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("subscriber connect: %v", err)
	}
	defer nc.Close()

	sub, err := nc.SubscribeSync("xreroute.test.logs")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatalf("flush subscription: %v", err)
	}

	s.Log(xreroute.Record{At: time.Now(), Level: xreroute.LevelInfo, Msg: "over the wire"})
	s.Flush()

	msg, err := sub.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("no message received: %v", err)
	}
	var got message
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if got.Msg != "over the wire" {
		t.Fatalf("msg = %q", got.Msg)
	}
}
