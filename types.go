package xreroute

import "time"

// Metadata describes a prospective log record. It is what a Sink is asked
// about before anyone pays for building the record itself.
type Metadata struct {
	Level  Level
	Target string
}

// Record is a single log entry handed to a Sink.
type Record struct {
	At     time.Time
	Level  Level
	Target string
	Msg    string
	Fields []Field
}

// Metadata returns the criteria half of the record.
func (r Record) Metadata() Metadata {
	return Metadata{Level: r.Level, Target: r.Target}
}
