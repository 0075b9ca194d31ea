package keyer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kc3fua/keydecoder/internal/button"
	"github.com/kc3fua/keydecoder/internal/morse"
)

// newTestSession builds a session over a scripted key with default
// thresholds, collecting output into the returned slice.
func newTestSession(t *testing.T, steps []button.Step) (*Session, *[]Output) {
	t.Helper()
	cl, err := NewClassifier(DefaultConfig())
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	s := NewSession(button.NewScript(steps), cl, morse.NewDecoder(morse.NewDefaultTree()))

	var outputs []Output
	s.SetCallback(func(out Output) {
		outputs = append(outputs, out)
	})
	return s, &outputs
}

// runTicks drives the session for n ticks.
func runTicks(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// text flattens decoded outputs into a string, one '?' per decode failure.
func text(outputs []Output) string {
	var b strings.Builder
	for _, out := range outputs {
		if out.Err != nil {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(out.Char)
	}
	return b.String()
}

func TestSession_DecodesA(t *testing.T) {
	// Dot, short gap, dash, then silence through the word gap.
	s, outputs := newTestSession(t, []button.Step{
		{Pressed: true, Ticks: 10},
		{Pressed: false, Ticks: 10},
		{Pressed: true, Ticks: 60},
	})

	runTicks(s, 400)

	if got := text(*outputs); got != "A " {
		t.Errorf("decoded %q, want %q", got, "A ")
	}
	if !(*outputs)[1].WordSpace {
		t.Error("second output should be a word space")
	}
}

func TestSession_DecodesWord(t *testing.T) {
	// "HI": four dots, a letter gap, two dots, then silence.
	steps := []button.Step{}
	for i := 0; i < 4; i++ {
		steps = append(steps,
			button.Step{Pressed: true, Ticks: 10},
			button.Step{Pressed: false, Ticks: 10},
		)
	}
	// Stretch the last gap past the letter boundary.
	steps[len(steps)-1].Ticks = 120
	steps = append(steps,
		button.Step{Pressed: true, Ticks: 10},
		button.Step{Pressed: false, Ticks: 10},
		button.Step{Pressed: true, Ticks: 10},
	)

	s, outputs := newTestSession(t, steps)
	runTicks(s, 600)

	if got := text(*outputs); got != "HI " {
		t.Errorf("decoded %q, want %q", got, "HI ")
	}
}

func TestSession_InvalidPathRecovers(t *testing.T) {
	// Six rapid dots overrun the tree; the session resets and reports
	// the failure, then the gap flushes an undecodable character.
	steps := []button.Step{}
	for i := 0; i < 6; i++ {
		steps = append(steps,
			button.Step{Pressed: true, Ticks: 5},
			button.Step{Pressed: false, Ticks: 5},
		)
	}

	s, outputs := newTestSession(t, steps)
	runTicks(s, 500)

	var pathErr, charErr bool
	for _, out := range *outputs {
		if errors.Is(out.Err, morse.ErrInvalidPath) {
			pathErr = true
		}
		if errors.Is(out.Err, morse.ErrNoCharacter) {
			charErr = true
		}
	}
	if !pathErr {
		t.Errorf("outputs %v missing invalid-path failure", *outputs)
	}
	if !charErr {
		t.Errorf("outputs %v missing no-character failure", *outputs)
	}
}

func TestSession_KeepsDecodingAfterFailure(t *testing.T) {
	// An overrun character followed by a clean 'E'.
	steps := []button.Step{}
	for i := 0; i < 6; i++ {
		steps = append(steps,
			button.Step{Pressed: true, Ticks: 5},
			button.Step{Pressed: false, Ticks: 5},
		)
	}
	// Letter gap, then a single dot.
	steps[len(steps)-1].Ticks = 120
	steps = append(steps, button.Step{Pressed: true, Ticks: 10})

	s, outputs := newTestSession(t, steps)
	runTicks(s, 600)

	got := text(*outputs)
	if !strings.HasSuffix(got, "E ") {
		t.Errorf("decoded %q, want trailing %q", got, "E ")
	}
}

func TestSession_RunStopsWhenScriptDone(t *testing.T) {
	// Small thresholds keep the wall-clock run short.
	cl, err := NewClassifier(Config{DashTicks: 5, LetterGapTicks: 10, WordGapTicks: 20})
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	s := NewSession(
		button.NewScript([]button.Step{{Pressed: true, Ticks: 2}}),
		cl,
		morse.NewDecoder(morse.NewDefaultTree()),
	)

	var got string
	s.SetCallback(func(out Output) {
		if out.Err == nil {
			got += string(out.Char)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "E " {
		t.Errorf("decoded %q, want %q", got, "E ")
	}
}

func TestSession_RunHonorsContext(t *testing.T) {
	cl, err := NewClassifier(DefaultConfig())
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	// A silent key never finishes, so only cancellation stops the run.
	s := NewSession(silentSource{}, cl, morse.NewDecoder(morse.NewDefaultTree()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want deadline exceeded", err)
	}
}

// silentSource never produces an edge.
type silentSource struct{}

func (silentSource) Poll() button.Event { return button.None }
