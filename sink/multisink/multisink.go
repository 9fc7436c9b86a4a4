// Package multisink fans records out to several sinks, so a single redirect
// can target more than one destination.
package multisink

import "github.com/trickstertwo/xreroute"

// Sink forwards every call to all children. Enabled is true when any child
// is enabled; Log and Flush reach every child (each child applies its own
// gating).
type Sink struct {
	sinks []xreroute.Sink
}

var _ xreroute.Sink = (*Sink)(nil)

// New combines sinks. Nil entries are dropped.
func New(sinks ...xreroute.Sink) *Sink {
	out := make([]xreroute.Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Sink{sinks: out}
}

func (s *Sink) Enabled(m xreroute.Metadata) bool {
	for _, c := range s.sinks {
		if c.Enabled(m) {
			return true
		}
	}
	return false
}

func (s *Sink) Log(r xreroute.Record) {
	for _, c := range s.sinks {
		c.Log(r)
	}
}

func (s *Sink) Flush() {
	for _, c := range s.sinks {
		c.Flush()
	}
}
