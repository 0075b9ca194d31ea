package button

// Step is one span of a keying script: the key is held (or left up) for
// Ticks polls.
type Step struct {
	Pressed bool
	Ticks   int
}

// Script replays a fixed sequence of press and release spans as edge
// events. It emits Down on the first poll of a pressed span, Up on the
// first poll of a released span, and None for the remainder. Once the
// script is exhausted it reports the key released and returns None forever.
type Script struct {
	steps   []Step
	step    int
	tick    int
	pressed bool
}

// NewScript creates a source replaying steps. Steps with zero or negative
// duration are skipped.
func NewScript(steps []Step) *Script {
	return &Script{steps: steps}
}

// Poll returns the next edge event of the script.
func (s *Script) Poll() Event {
	for s.step < len(s.steps) && s.tick >= s.steps[s.step].Ticks {
		s.step++
		s.tick = 0
	}
	if s.step >= len(s.steps) {
		if s.pressed {
			s.pressed = false
			return Up
		}
		return None
	}

	cur := s.steps[s.step]
	s.tick++
	if cur.Pressed != s.pressed {
		s.pressed = cur.Pressed
		if s.pressed {
			return Down
		}
		return Up
	}
	return None
}

// Done reports whether every step has been fully replayed.
func (s *Script) Done() bool {
	step, tick := s.step, s.tick
	for step < len(s.steps) && tick >= s.steps[step].Ticks {
		step++
		tick = 0
	}
	return step >= len(s.steps)
}
