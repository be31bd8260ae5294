package ply

import "chess-ply/board"

// Castling is a resolved castling move: the king pair, the rook pair and the
// castle or long-castle keyword.
type Castling struct {
	King, Rook board.Pair
	Keyword    Keyword
}

// Pairs returns the king pair followed by the rook pair.
func (c Castling) Pairs() []board.Pair { return []board.Pair{c.King, c.Rook} }

// Changes returns the successor changes for the castling move.
func (c Castling) Changes() board.Changes { return board.Changes{Pairs: c.Pairs()} }

func (c Castling) ply(pos board.Position) *Ply {
	return &Ply{base: pos, pairs: c.Pairs(), notes: []Annotation{Flag(c.Keyword)}}
}

// ResolveCastle works out the castling move of the king on king toward the
// short or long side. Any king and rook files are accepted, so Fischer-Random
// starting positions castle the same way as the standard one: the king ends on
// the g or c file and the rook next to it on the f or d file.
func ResolveCastle(pos board.Position, long bool, king board.Square) (Castling, bool) {
	kp := pos.PieceAt(king)
	if kp.Type() != board.PieceTypeKing {
		return Castling{}, false
	}
	c := kp.Color()
	opp := c.Other()
	side, kw := board.Short, Castle
	kingFile, rookFile := 6, 5
	if long {
		side, kw = board.Long, LongCastle
		kingFile, rookFile = 2, 3
	}
	backRank := 0
	if c == board.Black {
		backRank = 7
	}
	if king.Rank() != backRank || !pos.CanCastle(c, side) {
		return Castling{}, false
	}
	rook := pos.CastlingRook(c, side)
	if !rook.OnBoard() || rook.Rank() != backRank || pos.PieceAt(rook) != board.PieceTypeRook.Of(c) {
		return Castling{}, false
	}
	step := 1
	if long {
		step = -1
	}
	if (rook.File()-king.File())*step <= 0 {
		return Castling{}, false
	}
	if pos.IsAttacked(king, opp) {
		return Castling{}, false
	}

	kingTo := board.NewSquare(kingFile, backRank)
	rookTo := board.NewSquare(rookFile, backRank)

	// Walk from the king toward the rook.
	sq := king
	for {
		sq = board.NewSquare(sq.File()+step, backRank)
		if sq == rook {
			break
		}
		if pos.PieceAt(sq) != board.NoPiece {
			return Castling{}, false
		}
		if between(sq, king, kingTo) && pos.IsAttacked(sq, opp) {
			return Castling{}, false
		}
	}

	// Both travel spans must be free of everything but the two castling pieces,
	// and no square the king crosses may be attacked.
	for f := min(king.File(), kingFile); f <= max(king.File(), kingFile); f++ {
		s := board.NewSquare(f, backRank)
		if s != king && s != rook && pos.PieceAt(s) != board.NoPiece {
			return Castling{}, false
		}
		if pos.IsAttacked(s, opp) {
			return Castling{}, false
		}
	}
	for f := min(rook.File(), rookFile); f <= max(rook.File(), rookFile); f++ {
		s := board.NewSquare(f, backRank)
		if s != king && s != rook && pos.PieceAt(s) != board.NoPiece {
			return Castling{}, false
		}
	}

	cs := Castling{
		King:    board.Pair{From: king, To: kingTo},
		Rook:    board.Pair{From: rook, To: rookTo},
		Keyword: kw,
	}
	// The king may have shielded its own destination; check the real successor.
	if pos.ApplyChanges(cs.Changes()).IsAttacked(kingTo, opp) {
		return Castling{}, false
	}
	return cs, true
}

// between reports whether sq lies on the rank segment from a to b, a excluded.
func between(sq, a, b board.Square) bool {
	if sq == a {
		return false
	}
	lo, hi := min(a.File(), b.File()), max(a.File(), b.File())
	return sq.File() >= lo && sq.File() <= hi
}
