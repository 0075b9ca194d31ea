package morse

import "errors"

var (
	// ErrInvalidPath indicates the accumulated dot/dash sequence walked
	// off the bottom of the tree and cannot be part of any character
	ErrInvalidPath = errors.New("sequence does not match any character")
	// ErrInvalidSymbol indicates a symbol outside the defined set
	ErrInvalidSymbol = errors.New("invalid decode symbol")
	// ErrNoCharacter indicates end-of-character on a tree position with
	// no assigned character
	ErrNoCharacter = errors.New("no character at this sequence")
)

// Symbol is one unit of decoder input.
type Symbol int

const (
	// Dot advances the cursor to the left child
	Dot Symbol = iota
	// Dash advances the cursor to the right child
	Dash
	// EndOfChar terminates the current sequence and reads its character
	EndOfChar
	// Reset returns the cursor to the root, discarding the sequence
	Reset
)

func (s Symbol) String() string {
	switch s {
	case Dot:
		return "dot"
	case Dash:
		return "dash"
	case EndOfChar:
		return "end-of-char"
	case Reset:
		return "reset"
	default:
		return "invalid"
	}
}

// Decoder walks a CodeTree one symbol at a time. The cursor tracks the
// partially decoded sequence, so each submission is O(1) with no
// backtracking. Not goroutine-safe; the tree itself may be shared.
type Decoder struct {
	tree   *CodeTree
	cursor int
}

// NewDecoder creates a decoder positioned at the root of tree.
func NewDecoder(tree *CodeTree) *Decoder {
	return &Decoder{tree: tree, cursor: 1}
}

// Submit consumes one symbol and returns the decoded character when sym is
// EndOfChar. Dot and Dash extend the current sequence and return
// ErrInvalidPath, leaving the cursor in place, when the sequence is longer
// than any encoded character; the caller should Reset and resume. EndOfChar
// always returns the cursor to the root and reports ErrNoCharacter when the
// traversed path has no character assigned. Reset never fails. Any other
// symbol resets the cursor and returns ErrInvalidSymbol, so the decoder is
// never left on a stale path after bad input.
func (d *Decoder) Submit(sym Symbol) (rune, error) {
	switch sym {
	case Dot:
		if !d.tree.hasChildren(d.cursor) {
			return 0, ErrInvalidPath
		}
		d.cursor = d.cursor * 2
		return 0, nil
	case Dash:
		if !d.tree.hasChildren(d.cursor) {
			return 0, ErrInvalidPath
		}
		d.cursor = d.cursor*2 + 1
		return 0, nil
	case EndOfChar:
		ch := d.tree.at(d.cursor)
		d.cursor = 1
		if ch == 0 {
			return 0, ErrNoCharacter
		}
		return ch, nil
	case Reset:
		d.cursor = 1
		return 0, nil
	default:
		d.cursor = 1
		return 0, ErrInvalidSymbol
	}
}

// AtRoot reports whether no symbols have been accumulated since the last
// reset or completed character.
func (d *Decoder) AtRoot() bool {
	return d.cursor == 1
}
