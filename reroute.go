// Package xreroute lets a program change its logging destination at runtime.
//
// The usual facade arrangement allows exactly one global destination for the
// lifetime of the process. xreroute works around that by installing a single
// long-lived Reroute proxy as the destination and swapping the proxy's
// target as often as needed. Typical use: log to stderr before the real
// destination is known, then reroute to a file once config is loaded.
//
// The hot path is lock-free: forwarding a call is one atomic load plus one
// dynamic dispatch, so it is safe from contexts that must not take locks.
package xreroute

import "sync/atomic"

// holder pins a Sink interface value behind a fixed-size pointee so the
// target slot can be swapped with atomic.Pointer.
type holder struct {
	sink Sink
}

// Reroute forwards Enabled/Log/Flush to whichever target sink is currently
// installed. Reroute itself implements Sink, so it can be handed to anything
// that accepts one, including another Reroute.
//
// Redirecting is a single atomic swap: it never blocks forwarding calls and
// forwarding calls never block it. No care is taken to pair in-flight log
// calls with a particular target; a record may still reach the old sink
// after Redirect has returned and flushed it. Sinks are expected to flush
// themselves again on their own teardown as a backstop.
//
// The zero value discards everything, same as New().
type Reroute struct {
	inner atomic.Pointer[holder]
}

var _ Sink = (*Reroute)(nil)

// New creates a Reroute. No destination is set yet (the target is Null),
// so all records are thrown away until the first Redirect.
func New() *Reroute {
	r := &Reroute{}
	r.inner.Store(&holder{sink: Null{}})
	return r
}

// load returns the current target. A never-stored slot (zero value) reads
// as Null.
func (r *Reroute) load() Sink {
	h := r.inner.Load()
	if h == nil {
		return Null{}
	}
	return h.sink
}

// Redirect installs s as the new target in one atomic swap. A nil s is
// normalized to Null, keeping the slot always valid.
//
// The previous target is flushed before its reference is released. Sinks
// ought to flush on teardown anyway, but that can be deferred unpredictably;
// paying the cost here makes it happen at a defined moment. The flush is
// synchronous on the caller of Redirect: a sink whose Flush can hang will
// stall this call (though never concurrent forwarding calls). No timeout is
// applied.
func (r *Reroute) Redirect(s Sink) {
	if s == nil {
		s = Null{}
	}
	old := r.inner.Swap(&holder{sink: s})
	if old != nil {
		old.sink.Flush()
	}
}

// Clear stubs out the target, discarding all records until the next
// Redirect. Equivalent to Redirect(Null{}).
func (r *Reroute) Clear() {
	r.Redirect(Null{})
}

// Current returns the target at the moment of the call. The returned Sink
// is a snapshot, not a live view: it stays usable after a concurrent
// Redirect replaces it, and it does not follow later redirects. Handing it
// back to Redirect reinstalls it.
func (r *Reroute) Current() Sink {
	return r.load()
}

// Enabled forwards to the current target.
func (r *Reroute) Enabled(m Metadata) bool {
	return r.load().Enabled(m)
}

// Log forwards to the current target. The target is loaded once; a call
// racing a Redirect sees either the old or the new sink in full, never a
// torn mix.
func (r *Reroute) Log(rec Record) {
	r.load().Log(rec)
}

// Flush forwards to the current target.
func (r *Reroute) Flush() {
	r.load().Flush()
}
