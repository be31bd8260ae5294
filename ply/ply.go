package ply

import (
	"strings"

	"chess-ply/board"
)

// Ply is one half-move: a shared base position, zero to two coordinate pairs
// (two only for castling, king first) and an ordered list of annotations.
// A ply without pairs is a status ply such as a resignation.
//
// A Ply is built by a single goroutine; once handed out the only mutation it
// sees is the successor cache filled by Next.
type Ply struct {
	base  board.Position
	pairs []board.Pair
	notes []Annotation
	next  board.Position
}

// NewStatus returns an administrative ply on pos carrying only notes.
func NewStatus(pos board.Position, notes ...Annotation) *Ply {
	p := &Ply{base: pos}
	for _, n := range notes {
		p.Set(n)
	}
	return p
}

// Base returns the position the ply is played from.
func (p *Ply) Base() board.Position { return p.base }

// SetBase replaces the base position and drops the successor cache.
func (p *Ply) SetBase(pos board.Position) {
	p.base = pos
	p.next = nil
}

// Pairs returns a copy of the coordinate pairs.
func (p *Ply) Pairs() []board.Pair { return append([]board.Pair(nil), p.pairs...) }

// Annotations returns a copy of the annotations in insertion order.
func (p *Ply) Annotations() []Annotation { return append([]Annotation(nil), p.notes...) }

// SetChanges replaces pairs and annotations and drops the successor cache.
func (p *Ply) SetChanges(pairs []board.Pair, notes ...Annotation) {
	p.pairs = append([]board.Pair(nil), pairs...)
	p.notes = nil
	for _, n := range notes {
		p.Set(n)
	}
	p.next = nil
}

// Has reports whether the ply carries any of the keywords.
func (p *Ply) Has(keywords ...Keyword) bool {
	for _, k := range keywords {
		if k == NextPos {
			if p.next != nil {
				return true
			}
			continue
		}
		if p.index(k) >= 0 {
			return true
		}
	}
	return false
}

// Lookup returns the annotation stored for k.
func (p *Ply) Lookup(k Keyword) (Annotation, bool) {
	if i := p.index(k); i >= 0 {
		return p.notes[i], true
	}
	return Annotation{}, false
}

// Value returns the keyword's value: the piece type for Promote, the cached
// successor for NextPos and true for any other keyword that is present.
func (p *Ply) Value(k Keyword) (any, bool) {
	switch k {
	case NextPos:
		if p.next == nil {
			return nil, false
		}
		return p.next, true
	case Promote:
		a, ok := p.Lookup(Promote)
		if !ok {
			return nil, false
		}
		return a.Piece, true
	}
	if !p.Has(k) {
		return nil, false
	}
	return true, true
}

// Promotion returns the promotion piece type, if any.
func (p *Ply) Promotion() (board.PieceType, bool) {
	a, ok := p.Lookup(Promote)
	return a.Piece, ok
}

// Set adds a or replaces the stored annotation with the same keyword. Castle
// and LongCastle exclude each other. NextPos is owned by Next and ignored here.
func (p *Ply) Set(a Annotation) {
	switch a.Keyword {
	case NextPos:
		return
	case Castle:
		p.remove(LongCastle)
	case LongCastle:
		p.remove(Castle)
	}
	if i := p.index(a.Keyword); i >= 0 {
		p.notes[i] = a
		return
	}
	p.notes = append(p.notes, a)
}

func (p *Ply) index(k Keyword) int {
	for i, n := range p.notes {
		if n.Keyword == k {
			return i
		}
	}
	return -1
}

func (p *Ply) remove(k Keyword) {
	if i := p.index(k); i >= 0 {
		p.notes = append(p.notes[:i], p.notes[i+1:]...)
	}
}

// From returns the origin of the first pair, NoSquare for a status ply.
func (p *Ply) From() board.Square {
	if len(p.pairs) == 0 {
		return board.NoSquare
	}
	return p.pairs[0].From
}

// To returns the destination of the first pair, NoSquare for a status ply.
func (p *Ply) To() board.Square {
	if len(p.pairs) == 0 {
		return board.NoSquare
	}
	return p.pairs[0].To
}

// Changes converts the ply to the form Position.ApplyChanges consumes.
func (p *Ply) Changes() board.Changes {
	pt, _ := p.Promotion()
	return board.Changes{
		Pairs:     p.Pairs(),
		Promote:   pt,
		EnPassant: p.Has(EnPassant),
	}
}

// Next returns the position after the ply. It is computed on first use and the
// same value is returned afterwards. A status ply's successor is its base.
func (p *Ply) Next() board.Position {
	if p.next != nil {
		return p.next
	}
	if len(p.pairs) == 0 {
		p.next = p.base
	} else {
		p.next = p.base.ApplyChanges(p.Changes())
	}
	return p.next
}

// IsFinal reports whether the game is over at p: p carries a terminating
// keyword, or prev (the ply before p, may be nil) already delivered check- or stalemate.
func (p *Ply) IsFinal(prev *Ply) bool {
	if p.Has(terminating...) {
		return true
	}
	return prev != nil && prev.Has(Checkmate, Stalemate)
}

// String renders the move in UCI coordinates (e1g1, e7e8q); a status ply
// renders its keywords instead.
func (p *Ply) String() string {
	if len(p.pairs) == 0 {
		names := make([]string, 0, len(p.notes))
		for _, n := range p.notes {
			names = append(names, n.String())
		}
		return strings.Join(names, " ")
	}
	s := p.pairs[0].String()
	if len(p.pairs) == 2 && p.pairs[0].From == p.pairs[0].To {
		// A king already on its castling square is written as king takes rook.
		s = p.pairs[0].From.String() + p.pairs[1].From.String()
	}
	if pt, ok := p.Promotion(); ok {
		s += pt.String()
	}
	return s
}
