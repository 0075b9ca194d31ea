// Package morse implements Morse code decoding over an immutable binary
// code tree. Left branch = dot, right branch = dash.
package morse

import (
	"errors"
	"fmt"
)

var (
	// ErrTableLength indicates the serialized table does not match the
	// requested tree size (must be 2^levels - 1 entries)
	ErrTableLength = errors.New("table length must be 2^levels - 1")
	// ErrInvalidLevels indicates the requested tree height is not positive
	ErrInvalidLevels = errors.New("levels must be positive")
)

// CodeTree is a perfect binary tree of code points stored as a flat array
// with 1-based heap indexing: root at 1, left child at 2i, right child at
// 2i+1. Rune 0 marks a position with no assigned character. The tree is
// built once and never mutated, so it is safe for concurrent reads.
type CodeTree struct {
	nodes  []rune
	levels int
}

// Build constructs a CodeTree of the given height from a serialized table.
// The table lists each node before its left subtree, which precedes its
// right subtree: for a window w spanning a subtree of height h, w[0] is the
// node's character, w[1:] starts the left subtree and w[2^(h-1):] starts the
// right subtree. A tree of height `levels` therefore requires exactly
// 2^levels - 1 entries; any other length is rejected.
func Build(levels int, table []rune) (*CodeTree, error) {
	if levels < 1 {
		return nil, ErrInvalidLevels
	}
	want := 1<<levels - 1
	if len(table) != want {
		return nil, fmt.Errorf("%w: levels %d needs %d entries, got %d",
			ErrTableLength, levels, want, len(table))
	}

	t := &CodeTree{
		nodes:  make([]rune, 1<<levels),
		levels: levels,
	}
	t.fill(1, levels, table)
	return t, nil
}

// fill copies one serialized subtree window into heap order.
func (t *CodeTree) fill(idx, levels int, window []rune) {
	t.nodes[idx] = window[0]
	if levels == 1 {
		return
	}
	t.fill(idx*2, levels-1, window[1:])
	t.fill(idx*2+1, levels-1, window[1<<(levels-1):])
}

// NewDefaultTree builds the standard 6-level alphanumeric tree.
func NewDefaultTree() *CodeTree {
	t, err := Build(DefaultLevels, DefaultTable)
	if err != nil {
		// DefaultTable always has exactly 2^DefaultLevels - 1 entries.
		panic(err)
	}
	return t
}

// Levels returns the height of the tree (6 for the default tree).
func (t *CodeTree) Levels() int {
	return t.levels
}

// Len returns the number of nodes in the tree (2^levels - 1).
func (t *CodeTree) Len() int {
	return len(t.nodes) - 1
}

// at returns the character stored at a heap index (0 if none).
func (t *CodeTree) at(idx int) rune {
	return t.nodes[idx]
}

// hasChildren reports whether the node at idx is internal. Every internal
// node of a perfect tree has both children, so one check covers dot and
// dash moves alike.
func (t *CodeTree) hasChildren(idx int) bool {
	return idx*2 < len(t.nodes)
}
