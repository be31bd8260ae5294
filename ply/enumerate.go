package ply

import (
	"chess-ply/board"
)

// Direction vectors as (file, rank) steps.
var (
	orthogonal = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonal   = [][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	royal      = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	knightJump = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// Enumerate returns every legal ply of pos that satisfies cs. With AnyMove the
// result holds at most one ply.
func (g *Generator) Enumerate(pos board.Position, cs ...Constraint) ([]*Ply, error) {
	var out []*Ply
	err := g.walk(pos, g.annotate, cs, func(p *Ply) bool {
		out = append(out, p)
		return true
	})
	return out, err
}

// Exists reports whether pos has at least one legal ply satisfying cs. It stops
// at the first one found and never annotates.
func (g *Generator) Exists(pos board.Position, cs ...Constraint) (bool, error) {
	return g.exists(pos, cs...)
}

func (g *Generator) exists(pos board.Position, cs ...Constraint) (bool, error) {
	found := false
	err := g.walk(pos, false, append(cs[:len(cs):len(cs)], AnyMove()), func(*Ply) bool {
		found = true
		return false
	})
	return found, err
}

// walk feeds each legal ply to emit until emit returns false or the
// candidates run out. annotate is threaded explicitly so nested searches made
// while annotating never annotate in turn.
func (g *Generator) walk(pos board.Position, annotate bool, cs []Constraint, emit func(*Ply) bool) error {
	q, err := newQuery(pos, cs)
	if err != nil {
		return err
	}
	send := emit
	if annotate {
		send = func(p *Ply) bool { return emit(g.annotateWith(p)) }
	}
	if q.any {
		// Cancel at the first accepted candidate.
		inner := send
		send = func(p *Ply) bool {
			inner(p)
			return false
		}
	}

	for _, piece := range q.pieces() {
		for _, from := range pos.Squares(piece) {
			if !q.allowsOrigin(from) {
				continue
			}
			if !g.walkPiece(pos, q, piece, from, send) {
				return nil
			}
		}
	}
	return nil
}

// walkPiece dispatches on piece geometry and reports whether the walk goes on.
func (g *Generator) walkPiece(pos board.Position, q *query, piece board.Piece, from board.Square, send func(*Ply) bool) bool {
	switch piece.Type() {
	case board.PieceTypePawn:
		return g.walkPawn(pos, q, piece, from, send)
	case board.PieceTypeKnight:
		return g.walkSteps(pos, q, piece, from, knightJump, false, send)
	case board.PieceTypeBishop:
		return g.walkSteps(pos, q, piece, from, diagonal, true, send)
	case board.PieceTypeRook:
		return g.walkSteps(pos, q, piece, from, orthogonal, true, send)
	case board.PieceTypeQueen:
		return g.walkSteps(pos, q, piece, from, royal, true, send)
	case board.PieceTypeKing:
		if !g.walkSteps(pos, q, piece, from, royal, false, send) {
			return false
		}
		return g.walkCastles(pos, q, piece, from, send)
	}
	panic(UnrecognizedPieceError{Piece: piece})
}

// walkSteps covers knights, kings and the sliders. A slider keeps going over
// empty squares and stops at the first occupied one, which is a destination
// only when it holds an enemy piece.
func (g *Generator) walkSteps(pos board.Position, q *query, piece board.Piece, from board.Square, dirs [][2]int, slide bool, send func(*Ply) bool) bool {
	c := piece.Color()
	for _, d := range dirs {
		f, r := from.File(), from.Rank()
		for {
			f, r = f+d[0], r+d[1]
			if f < 0 || f > 7 || r < 0 || r > 7 {
				break
			}
			to := board.NewSquare(f, r)
			occupant := pos.PieceAt(to)
			if occupant != board.NoPiece && occupant.Color() == c {
				break
			}
			if q.allowsTarget(to) && legal(pos, c, from, to) {
				if !send(&Ply{base: pos, pairs: []board.Pair{{From: from, To: to}}}) {
					return false
				}
			}
			if !slide || occupant != board.NoPiece {
				break
			}
		}
	}
	return true
}

func (g *Generator) walkPawn(pos board.Position, q *query, piece board.Piece, from board.Square, send func(*Ply) bool) bool {
	c := piece.Color()
	dir, startRank, lastRank := 1, 1, 7
	if c == board.Black {
		dir, startRank, lastRank = -1, 6, 0
	}
	f, r := from.File(), from.Rank()
	if r+dir < 0 || r+dir > 7 {
		return true
	}

	one := board.NewSquare(f, r+dir)
	if pos.PieceAt(one) == board.NoPiece {
		if !g.sendPawn(pos, q, c, from, one, lastRank, false, send) {
			return false
		}
		if r == startRank {
			two := board.NewSquare(f, r+2*dir)
			if pos.PieceAt(two) == board.NoPiece && !g.sendPawn(pos, q, c, from, two, lastRank, false, send) {
				return false
			}
		}
	}

	ep := pos.EnPassantTarget()
	for _, df := range [2]int{-1, 1} {
		if f+df < 0 || f+df > 7 {
			continue
		}
		to := board.NewSquare(f+df, r+dir)
		occupant := pos.PieceAt(to)
		switch {
		case occupant != board.NoPiece && occupant.Color() != c:
			if !g.sendPawn(pos, q, c, from, to, lastRank, false, send) {
				return false
			}
		case occupant == board.NoPiece && to == ep:
			// The victim stands beside the capturing pawn, behind the target.
			victim := board.NewSquare(to.File(), r)
			if pos.PieceAt(victim) != board.PieceTypePawn.Of(c.Other()) {
				continue
			}
			if !g.sendPawn(pos, q, c, from, to, lastRank, true, send) {
				return false
			}
		}
	}
	return true
}

// sendPawn emits one pawn move, or the four promotions when it reaches the
// last rank.
func (g *Generator) sendPawn(pos board.Position, q *query, c board.Color, from, to board.Square, lastRank int, enPassant bool, send func(*Ply) bool) bool {
	if !q.allowsTarget(to) || !legal(pos, c, from, to) {
		return true
	}
	pair := []board.Pair{{From: from, To: to}}
	if to.Rank() != lastRank {
		p := &Ply{base: pos, pairs: pair}
		if enPassant {
			p.notes = []Annotation{Flag(EnPassant)}
		}
		return send(p)
	}
	for _, pt := range board.PromotionTypes {
		p := &Ply{base: pos, pairs: pair, notes: []Annotation{Promotion(pt)}}
		if !send(p) {
			return false
		}
	}
	return true
}

func (g *Generator) walkCastles(pos board.Position, q *query, piece board.Piece, from board.Square, send func(*Ply) bool) bool {
	c := piece.Color()
	for _, side := range [2]board.CastleSide{board.Short, board.Long} {
		if !pos.CanCastle(c, side) {
			continue
		}
		cs, ok := ResolveCastle(pos, side == board.Long, from)
		if !ok {
			continue
		}
		if q.to != board.NoSquare && q.to != cs.King.To && q.to != cs.Rook.From {
			continue
		}
		if !send(cs.ply(pos)) {
			return false
		}
	}
	return true
}

// legal asks the position whether from->to leaves c's king safe.
func legal(pos board.Position, c board.Color, from, to board.Square) bool {
	return len(pos.LegalCandidates(c, to, []board.Square{from})) == 1
}
