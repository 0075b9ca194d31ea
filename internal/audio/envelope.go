package audio

import "errors"

var (
	// ErrInvalidBlockSize indicates block size must be positive
	ErrInvalidBlockSize = errors.New("block size must be positive")
)

// Envelope measures the amplitude of fixed-size sample blocks. A keyed
// input carries signal while the key is down and silence while it is up,
// so the per-block peak is enough to track the key level; no frequency
// selectivity is needed.
type Envelope struct {
	blockSize int
}

// NewEnvelope creates an envelope tracker for blocks of blockSize samples.
func NewEnvelope(blockSize int) (*Envelope, error) {
	if blockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}
	return &Envelope{blockSize: blockSize}, nil
}

// BlockSize returns the configured block size
func (e *Envelope) BlockSize() int {
	return e.blockSize
}

// Peak returns the largest absolute sample value in the block. The caller
// must supply at least BlockSize samples; extra samples are ignored.
func (e *Envelope) Peak(block []float32) float64 {
	peak := float64(0)
	for i := 0; i < e.blockSize; i++ {
		v := float64(block[i])
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}
