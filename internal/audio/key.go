package audio

import (
	"errors"
	"sync/atomic"

	"github.com/kc3fua/keydecoder/internal/button"
)

var (
	// ErrInvalidThreshold indicates threshold must be between 0 and 1
	ErrInvalidThreshold = errors.New("threshold must be between 0.0 and 1.0")
	// ErrInvalidHysteresis indicates hysteresis must be positive
	ErrInvalidHysteresis = errors.New("hysteresis must be positive")
	// ErrEnvelopeRequired indicates an envelope tracker is required
	ErrEnvelopeRequired = errors.New("envelope tracker is required")
)

// KeyConfig holds configuration for the audio key detector.
type KeyConfig struct {
	// Threshold is the envelope level above which the key counts as
	// pressed (from config: threshold)
	Threshold float64
	// Hysteresis is consecutive blocks required to confirm a state
	// change, which debounces contact noise (from config: hysteresis)
	Hysteresis int
}

// Key turns a keyed audio level into debounced button edges. Process runs
// on the audio thread and tracks the confirmed key level; Poll runs on the
// session's tick loop and reports level changes as edges. The confirmed
// level is the only state shared between the two, held in an atomic.
type Key struct {
	config   KeyConfig
	envelope *Envelope

	// Audio-thread state.
	buffer  []float32
	state   bool // current confirmed key level
	pending bool // level a change is accumulating toward
	count   int  // consecutive blocks at the pending level

	pressed atomic.Bool

	// Poll-side state.
	reported bool // level last reported through Poll
}

// NewKey creates an audio key detector over the given envelope tracker.
func NewKey(cfg KeyConfig, envelope *Envelope) (*Key, error) {
	if envelope == nil {
		return nil, ErrEnvelopeRequired
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, ErrInvalidThreshold
	}
	if cfg.Hysteresis <= 0 {
		return nil, ErrInvalidHysteresis
	}
	return &Key{
		config:   cfg,
		envelope: envelope,
		buffer:   make([]float32, 0, envelope.BlockSize()),
	}, nil
}

// Process consumes incoming samples, block by block. Called from the audio
// thread (wire it to Capture.SetCallback).
func (k *Key) Process(samples []float32) {
	k.buffer = append(k.buffer, samples...)

	blockSize := k.envelope.BlockSize()
	for len(k.buffer) >= blockSize {
		k.processBlock(k.buffer[:blockSize])
		copy(k.buffer, k.buffer[blockSize:])
		k.buffer = k.buffer[:len(k.buffer)-blockSize]
	}
}

// processBlock updates the confirmed key level with hysteresis.
func (k *Key) processBlock(block []float32) {
	down := k.envelope.Peak(block) > k.config.Threshold

	if down == k.state {
		k.pending = k.state
		k.count = 0
		return
	}

	if down == k.pending {
		k.count++
	} else {
		k.pending = down
		k.count = 1
	}

	if k.count >= k.config.Hysteresis {
		k.state = k.pending
		k.count = 0
		k.pressed.Store(k.state)
	}
}

// Poll reports the key edge observed since the previous poll. Implements
// button.Source; called from the session's tick loop.
func (k *Key) Poll() button.Event {
	pressed := k.pressed.Load()
	if pressed == k.reported {
		return button.None
	}
	k.reported = pressed
	if pressed {
		return button.Down
	}
	return button.Up
}

// Pressed returns the current confirmed key level.
func (k *Key) Pressed() bool {
	return k.pressed.Load()
}
