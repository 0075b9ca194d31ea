// Package keyer turns raw button edges from a straight key into Morse
// symbol events and decoded characters. The classifier is polled at a
// fixed 100Hz cadence and classifies press and release durations by
// elapsed tick counts.
package keyer

import (
	"errors"
	"time"

	"github.com/kc3fua/keydecoder/internal/button"
)

// TickRate is the fixed polling rate in Hz. All tick thresholds assume it.
const TickRate = 100

// TickInterval is the wall-clock duration of one tick.
const TickInterval = time.Second / TickRate

// Default thresholds in ticks at TickRate.
const (
	// DefaultDashTicks is the hold duration above which a press becomes
	// a dash (0.5s)
	DefaultDashTicks = 50
	// DefaultLetterGapTicks is the release duration marking a character
	// boundary (1s)
	DefaultLetterGapTicks = 100
	// DefaultWordGapTicks is the release duration marking a word
	// boundary (2s)
	DefaultWordGapTicks = 200
)

var (
	// ErrInvalidDashTicks indicates the dot/dash boundary must be positive
	ErrInvalidDashTicks = errors.New("dash ticks must be positive")
	// ErrInvalidLetterGapTicks indicates the letter gap must exceed the
	// dot/dash boundary
	ErrInvalidLetterGapTicks = errors.New("letter gap ticks must be greater than dash ticks")
	// ErrInvalidWordGapTicks indicates the word gap must exceed the
	// letter gap
	ErrInvalidWordGapTicks = errors.New("word gap ticks must be greater than letter gap ticks")
)

// Event is the Morse-level outcome of one poll.
type Event int

const (
	// EventNone means nothing was classified this tick
	EventNone Event = iota
	// EventDot means a press shorter than the dash boundary just ended
	EventDot
	// EventDash means a press longer than the dash boundary just ended
	EventDash
	// EventInterLetter means the current character is complete
	EventInterLetter
	// EventInterWord means the current word is complete
	EventInterWord
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventDot:
		return "dot"
	case EventDash:
		return "dash"
	case EventInterLetter:
		return "inter-letter"
	case EventInterWord:
		return "inter-word"
	default:
		return "unknown"
	}
}

// State identifies where the classifier is in the press/release cycle.
type State int

const (
	// StateIdle means the key is up and no gap is being timed
	StateIdle State = iota
	// StateDot means the key is down, still short enough for a dot
	StateDot
	// StateDash means the key is down past the dash boundary
	StateDash
	// StateGap means the key is up after an element, timing the gap
	StateGap
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDot:
		return "dot"
	case StateDash:
		return "dash"
	case StateGap:
		return "gap"
	default:
		return "unknown"
	}
}

// Config holds the classifier thresholds in ticks.
type Config struct {
	// DashTicks is the hold duration above which a press is a dash
	DashTicks int
	// LetterGapTicks is the release duration marking a character boundary
	LetterGapTicks int
	// WordGapTicks is the release duration marking a word boundary
	WordGapTicks int
}

// DefaultConfig returns the standard thresholds (0.5s / 1s / 2s at 100Hz).
func DefaultConfig() Config {
	return Config{
		DashTicks:      DefaultDashTicks,
		LetterGapTicks: DefaultLetterGapTicks,
		WordGapTicks:   DefaultWordGapTicks,
	}
}

// Classifier converts button edges into Morse events by timing presses and
// gaps in ticks. State is explicit per instance; the classifier is driven
// by calling Poll once per tick and is not goroutine-safe.
type Classifier struct {
	cfg   Config
	state State
	ticks int
}

// NewClassifier creates a classifier after validating that the thresholds
// are positive and strictly ordered.
func NewClassifier(cfg Config) (*Classifier, error) {
	if cfg.DashTicks <= 0 {
		return nil, ErrInvalidDashTicks
	}
	if cfg.LetterGapTicks <= cfg.DashTicks {
		return nil, ErrInvalidLetterGapTicks
	}
	if cfg.WordGapTicks <= cfg.LetterGapTicks {
		return nil, ErrInvalidWordGapTicks
	}
	return &Classifier{cfg: cfg}, nil
}

// Poll consumes the edge observed this tick and returns at most one event.
// It must be called once per tick for the timing to hold. Out-of-order or
// redundant edges never fail; they are absorbed into the state machine.
func (c *Classifier) Poll(edge button.Event) Event {
	switch c.state {
	case StateIdle:
		// Counter stays pinned until a press starts; it begins
		// accumulating on the tick after the Down edge.
		c.ticks = 0
		if edge == button.Down {
			c.state = StateDot
		}

	case StateDot:
		c.ticks++
		if edge == button.Up {
			c.ticks = 0
			c.state = StateGap
			return EventDot
		}
		if c.ticks > c.cfg.DashTicks {
			c.state = StateDash
		}

	case StateDash:
		c.ticks++
		if edge == button.Up {
			c.ticks = 0
			c.state = StateGap
			return EventDash
		}

	case StateGap:
		c.ticks++
		if c.ticks >= c.cfg.WordGapTicks {
			c.ticks = 0
			c.state = StateIdle
			return EventInterWord
		}
		if edge == button.Down {
			letter := c.ticks >= c.cfg.LetterGapTicks
			c.ticks = 0
			c.state = StateDot
			if letter {
				return EventInterLetter
			}
		}
	}
	return EventNone
}

// State returns the current classifier state.
func (c *Classifier) State() State {
	return c.state
}

// Reset returns the classifier to Idle with a cleared counter.
func (c *Classifier) Reset() {
	c.state = StateIdle
	c.ticks = 0
}
