package gobblet

import (
	"fmt"
	"sync/atomic"
)

// PlayerID is the opaque ownership token stamped on every piece a player
// owns. It is a plain value, not a reference back to the Player, so pieces
// can be copied freely and the copies still compare equal to the originals.
type PlayerID uint64

var lastPlayerID atomic.Uint64

// NewPlayerID returns a process-unique ownership token.
func NewPlayerID() PlayerID {
	return PlayerID(lastPlayerID.Add(1))
}

// Piece is a single gobblet piece. Name is display only. Ordering and
// equality are by Size alone: two equal-sized pieces owned by different
// players compare equal. That is intentional, the dugout resolves copies
// back to real pieces through it.
type Piece struct {
	Player PlayerID
	Name   string
	Size   int
}

func (p Piece) String() string {
	return fmt.Sprintf("%d(%s)", p.Player, p.Name)
}

// Equal reports whether both pieces have the same size. Name and owner do
// not participate.
func (p Piece) Equal(o Piece) bool {
	return p.Size == o.Size
}

// Less orders pieces by size.
func (p Piece) Less(o Piece) bool {
	return p.Size < o.Size
}

// Covers reports whether p may legally be stacked on top of o. The moving
// piece must be strictly larger; equal sizes never cover.
func (p Piece) Covers(o Piece) bool {
	return o.Size < p.Size
}

// Copy returns an independent copy of the piece. Mutating the copy never
// affects the original.
func (p Piece) Copy() Piece {
	return p
}
