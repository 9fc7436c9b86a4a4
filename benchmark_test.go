package xreroute

import (
	"testing"
	"time"
)

// blackhole variables prevent the compiler from optimizing away code paths.
var (
	bhB bool
	bhT time.Time
)

type nopSink struct{}

func (nopSink) Enabled(Metadata) bool { return true }
func (nopSink) Log(r Record)          { bhT = r.At }
func (nopSink) Flush()                {}

func BenchmarkForwardEnabled(b *testing.B) {
	r := New()
	r.Redirect(nopSink{})
	md := Metadata{Level: LevelInfo}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bhB = r.Enabled(md)
	}
}

func BenchmarkForwardLog(b *testing.B) {
	r := New()
	r.Redirect(nopSink{})
	rec := Record{Level: LevelInfo, Msg: "ok"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Log(rec)
	}
}

func BenchmarkForwardLogParallel(b *testing.B) {
	r := New()
	r.Redirect(nopSink{})
	rec := Record{Level: LevelInfo, Msg: "ok"}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r.Log(rec)
		}
	})
}

func BenchmarkRedirect(b *testing.B) {
	r := New()
	sinks := [2]Sink{nopSink{}, nopSink{}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Redirect(sinks[i&1])
	}
}

func BenchmarkRedirectContended(b *testing.B) {
	r := New()
	r.Redirect(nopSink{})
	rec := Record{Level: LevelInfo, Msg: "ok"}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				r.Log(rec)
			}
		}
	}()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Redirect(nopSink{})
	}
	b.StopTimer()
	close(done)
}

func BenchmarkCurrent(b *testing.B) {
	r := New()
	r.Redirect(nopSink{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := r.Current()
		bhB = s != nil
	}
}
