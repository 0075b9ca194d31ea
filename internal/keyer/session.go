package keyer

import (
	"context"
	"time"

	"github.com/kc3fua/keydecoder/internal/button"
	"github.com/kc3fua/keydecoder/internal/morse"
)

// Output is one decoded result from the session: a character, a word
// space, or a recoverable decode failure.
type Output struct {
	// Char is the decoded character (' ' for a word space, 0 on failure)
	Char rune
	// WordSpace is true when this output marks a word boundary
	WordSpace bool
	// Err is set when the keyed sequence could not be decoded
	Err error
	// At is when the output was produced
	At time.Time
}

// OutputCallback receives decoded output. Must be fast and non-blocking;
// it is invoked from the poll loop.
type OutputCallback func(out Output)

// Session owns one complete decode pipeline: a button source polled every
// tick, the timing classifier, and the tree decoder. Symbol events route
// into the decoder as: dot and dash advance the cursor, a letter boundary
// ends the character, and a word boundary ends the character and then
// resets (a word boundary implies a character boundary).
type Session struct {
	source     button.Source
	classifier *Classifier
	decoder    *morse.Decoder
	callback   OutputCallback
}

// NewSession wires a source, classifier and decoder together.
func NewSession(src button.Source, cl *Classifier, dec *morse.Decoder) *Session {
	return &Session{source: src, classifier: cl, decoder: dec}
}

// SetCallback registers the receiver for decoded output. Set it before the
// session starts ticking.
func (s *Session) SetCallback(cb OutputCallback) {
	s.callback = cb
}

// Tick performs one poll cycle and returns the classifier event it
// processed. Decode failures are recoverable: the decoder is reset and the
// failure is reported through the callback, never returned.
func (s *Session) Tick() Event {
	ev := s.classifier.Poll(s.source.Poll())

	switch ev {
	case EventDot:
		s.submitElement(morse.Dot)
	case EventDash:
		s.submitElement(morse.Dash)
	case EventInterLetter:
		s.endCharacter()
	case EventInterWord:
		s.endCharacter()
		// Word boundary implies character boundary; clear any state and
		// report the space.
		_, _ = s.decoder.Submit(morse.Reset)
		s.emit(Output{Char: ' ', WordSpace: true, At: time.Now()})
	}
	return ev
}

func (s *Session) submitElement(sym morse.Symbol) {
	if _, err := s.decoder.Submit(sym); err != nil {
		// Sequence too long for any character. Reset and let the
		// operator re-key.
		_, _ = s.decoder.Submit(morse.Reset)
		s.emit(Output{Err: err, At: time.Now()})
	}
}

func (s *Session) endCharacter() {
	ch, err := s.decoder.Submit(morse.EndOfChar)
	if err != nil {
		s.emit(Output{Err: err, At: time.Now()})
		return
	}
	s.emit(Output{Char: ch, At: time.Now()})
}

func (s *Session) emit(out Output) {
	if s.callback != nil {
		s.callback(out)
	}
}

// doneSource is implemented by replayable sources that run out of input.
type doneSource interface {
	Done() bool
}

// Run drives Tick from a 10ms ticker until ctx is cancelled. If the source
// is replayable, Run returns nil once the source is exhausted and the
// classifier has settled back to idle.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
			if d, ok := s.source.(doneSource); ok && d.Done() &&
				s.classifier.State() == StateIdle {
				return nil
			}
		}
	}
}
