package ply

import "chess-ply/board"

// Annotate tags p with check, checkmate or stalemate according to the position
// it leads to, and returns p. A ply already carrying one of those is left alone.
func (g *Generator) Annotate(p *Ply) *Ply {
	return g.annotateWith(p)
}

func (g *Generator) annotateWith(p *Ply) *Ply {
	if len(p.pairs) == 0 || p.Has(Check, Checkmate, Stalemate) {
		return p
	}
	mover := p.base.PieceAt(p.pairs[0].From).Color()
	opp := mover.Other()
	next := p.Next()

	attacked := false
	if k := next.KingSquare(opp); k != board.NoSquare {
		attacked = next.IsAttacked(k, mover)
	}
	// The reply search never annotates, so it cannot recurse.
	replies, err := g.exists(next, ByColor(opp))
	if err != nil {
		g.logger().Error("reply search failed", "ply", p.String(), "err", err)
		return p
	}
	switch {
	case attacked && !replies:
		p.Set(Flag(Checkmate))
	case attacked:
		p.Set(Flag(Check))
	case !replies:
		p.Set(Flag(Stalemate))
	}
	return p
}
