package xreroute

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// Facade: a process-wide destination slot with set-once semantics, mirroring
// the usual logging-facade contract (one destination, registered once).
// Init installs the global Reroute here; everything logged through the
// package-level helpers flows through it from then on.

// ErrAlreadyInit is returned by Init when the facade already has a
// destination registered.
var ErrAlreadyInit = errors.New("xreroute: destination already registered")

var (
	dest    atomic.Pointer[holder]
	destSet atomic.Bool
)

// setDestination registers s as the facade's sole destination. It succeeds
// at most once per process; later calls fail and leave the registered
// destination untouched.
func setDestination(s Sink) error {
	if !destSet.CompareAndSwap(false, true) {
		return ErrAlreadyInit
	}
	dest.Store(&holder{sink: s})
	return nil
}

// destination returns the registered sink, or Null before Init.
func destination() Sink {
	h := dest.Load()
	if h == nil {
		return Null{}
	}
	return h.sink
}

// Enabled reports whether the facade would log a record with metadata m.
func Enabled(m Metadata) bool {
	return destination().Enabled(m)
}

// Log hands rec to the facade destination. Records logged before Init are
// discarded.
func Log(rec Record) {
	destination().Log(rec)
}

// Flush flushes the facade destination.
func Flush() {
	destination().Flush()
}
