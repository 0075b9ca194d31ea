// Package button defines the debounced key edge events consumed by the
// timing classifier, and sources that produce them.
package button

// Event is one debounced button edge. A source reports Down or Up on the
// poll where the transition was observed and None otherwise. Sources assume
// the key starts unpressed, so the first non-None event is always Down.
type Event int

const (
	// None means no edge since the previous poll
	None Event = iota
	// Down means the key was just pressed
	Down
	// Up means the key was just released
	Up
)

func (e Event) String() string {
	switch e {
	case None:
		return "none"
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Source supplies one edge event per poll. Poll is called once per tick
// from the session loop and must not block.
type Source interface {
	Poll() Event
}
