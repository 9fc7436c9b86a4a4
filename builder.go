package xreroute

// Config for constructing a Reroute.
type Config struct {
	// Initial is the first target. Defaults to Null.
	Initial Sink
}

// Builder separates construction from representation (Builder pattern).
// All settings have safe defaults, so Build cannot fail.
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{}
}

// WithInitial sets the first target sink.
func (b *Builder) WithInitial(s Sink) *Builder {
	b.cfg.Initial = s
	return b
}

// Build constructs the Reroute.
func (b *Builder) Build() *Reroute {
	r := New()
	if b.cfg.Initial != nil {
		// Target was Null and Null's flush is a no-op, so this swap has no
		// observable side effect beyond installing the sink.
		r.Redirect(b.cfg.Initial)
	}
	return r
}
