package xreroute

// Sink is the destination capability (Strategy): the three calls a logging
// backend must answer. Implementations MUST be safe for concurrent use.
//
// Log must not retain r.Fields after it returns; the facade's event builder
// reuses the backing array. Copy the slice when a sink keeps records around.
type Sink interface {
	// Enabled reports whether a record with metadata m would be logged.
	Enabled(m Metadata) bool
	// Log writes a single record.
	Log(r Record)
	// Flush forces any buffered records out. May block, per the sink.
	Flush()
}

// Null is a sink that doesn't log.
//
// It stubs out a Reroute whenever no real sink is set, so forwarding never
// has to nil-check its target.
type Null struct{}

func (Null) Enabled(Metadata) bool { return false }
func (Null) Log(Record)            {}
func (Null) Flush()                {}
