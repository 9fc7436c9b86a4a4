package xreroute

// Global Reroute (Singleton). Package var initialization gives the
// constructed-once, never-torn-down lifecycle for free.
var std = New()

// Global returns the process-wide Reroute manipulated by Init, Redirect,
// Clear and Current. Useful when the proxy itself must be passed around.
func Global() *Reroute {
	return std
}

// Init registers the global Reroute as the facade's sole destination.
//
// The default target is Null, so nothing is logged until Redirect is called.
// A second Init returns ErrAlreadyInit and has no effect on the already
// installed proxy.
func Init() error {
	return setDestination(std)
}

// Redirect changes the target of the global Reroute.
func Redirect(s Sink) {
	std.Redirect(s)
}

// Clear stubs out the global Reroute's target.
func Clear() {
	std.Clear()
}

// Current returns a snapshot of the global Reroute's target.
func Current() Sink {
	return std.Current()
}
