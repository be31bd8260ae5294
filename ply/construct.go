package ply

import (
	"fmt"
	"strings"

	"chess-ply/board"
)

// Construct builds a ply on pos from coordinate pairs and annotations.
//
// Without validated the first pair is checked against the legal moves of pos,
// and two pairs must be exactly the king and rook moves of a castling move; an
// illegal move returns ErrIllegalMove, as does a promote annotation on a move
// that is not a pawn reaching the last rank. The ply is then completed: king
// moves of more than one square, or onto the king's own castling rook, become
// castling moves; a pawn reaching the last rank without a promote annotation
// asks the generator's chooser; a diagonal pawn move onto the en passant target
// is tagged en-passant; finally the resulting position is tagged check,
// checkmate or stalemate.
//
// No pairs at all yields a status ply carrying only notes.
func (g *Generator) Construct(pos board.Position, validated bool, pairs []board.Pair, notes ...Annotation) (*Ply, error) {
	return g.construct(pos, validated, g.annotate, pairs, notes)
}

// ParseMove constructs the ply for a UCI coordinate move such as e2e4 or
// e7e8q. Castling is given as the king's move (e1g1) or as king takes rook.
func (g *Generator) ParseMove(pos board.Position, uci string) (*Ply, error) {
	uci = strings.TrimSpace(uci)
	if len(uci) != 4 && len(uci) != 5 {
		return nil, fmt.Errorf("%w: malformed move %q", ErrIllegalMove, uci)
	}
	from, err := board.ParseSquare(uci[0:2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	to, err := board.ParseSquare(uci[2:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	var notes []Annotation
	if len(uci) == 5 {
		pt, err := board.ParsePieceType(uci[4:])
		if err != nil || !pt.Promotable() {
			return nil, fmt.Errorf("%w: bad promotion piece in %q", ErrIllegalMove, uci)
		}
		notes = append(notes, Promotion(pt))
	}
	return g.Construct(pos, false, []board.Pair{{From: from, To: to}}, notes...)
}

func (g *Generator) construct(pos board.Position, validated, annotate bool, pairs []board.Pair, notes []Annotation) (*Ply, error) {
	p := NewStatus(pos, notes...)
	if len(pairs) == 0 {
		return p, nil
	}
	if len(pairs) > 2 {
		return nil, fmt.Errorf("%w: %d coordinate pairs", ErrIllegalMove, len(pairs))
	}
	for _, pr := range pairs {
		if !pr.From.OnBoard() || !pr.To.OnBoard() {
			return nil, fmt.Errorf("%w: square off the board", ErrIllegalMove)
		}
	}
	first := pairs[0]
	mover := pos.PieceAt(first.From)
	if mover == board.NoPiece {
		g.logger().Debug("rejected move", "move", first, "reason", "empty origin")
		return nil, fmt.Errorf("%w: no piece on %s", ErrIllegalMove, first.From)
	}
	c := mover.Color()

	if !validated {
		ok, err := g.exists(pos, ByColor(c), From(first.From), To(first.To))
		if err != nil {
			return nil, err
		}
		if !ok {
			g.logger().Debug("rejected move", "move", first, "fen", pos.FEN())
			return nil, fmt.Errorf("%w: %s", ErrIllegalMove, first)
		}
	}
	p.pairs = append(p.pairs[:0], pairs...)

	// Two raw pairs are only accepted as the castling move they spell out.
	if !validated && len(pairs) == 2 {
		cs, ok := matchCastle(pos, pairs)
		if !ok {
			g.logger().Debug("rejected move", "move", first, "reason", "pairs are not a castling move")
			return nil, fmt.Errorf("%w: %s %s", ErrIllegalMove, pairs[0], pairs[1])
		}
		p.Set(Flag(cs.Keyword))
	}

	if mover.Type() == board.PieceTypeKing && len(pairs) == 1 {
		if long, ok := castleIntent(pos, p, first); ok {
			cs, ok := ResolveCastle(pos, long, first.From)
			if !ok || (cs.King.To != first.To && cs.Rook.From != first.To) {
				g.logger().Error("castling did not resolve", "move", first, "fen", pos.FEN())
				return nil, fmt.Errorf("%w: %s in %s", ErrCastlingResolution, first, pos.FEN())
			}
			p.pairs = cs.Pairs()
			p.Set(Flag(cs.Keyword))
		}
	}

	promoting := mover.Type() == board.PieceTypePawn && first.To.Rank() == lastRank(c)
	if _, ok := p.Lookup(Promote); ok && !promoting {
		return nil, fmt.Errorf("%w: %s does not promote", ErrIllegalMove, first)
	}
	if promoting {
		if a, ok := p.Lookup(Promote); ok {
			if !a.Piece.Promotable() {
				return nil, fmt.Errorf("%w: cannot promote to %q", ErrAmbiguousPromotion, a.Piece)
			}
		} else {
			pt, err := g.promotionChooser().Choose(c, c == pos.SideToMove())
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrAmbiguousPromotion, err)
			}
			if !pt.Promotable() {
				return nil, fmt.Errorf("%w: chooser answered %q", ErrAmbiguousPromotion, pt)
			}
			p.Set(Promotion(pt))
		}
	}

	if mover.Type() == board.PieceTypePawn && first.To == pos.EnPassantTarget() &&
		first.From.File() != first.To.File() && pos.PieceAt(first.To) == board.NoPiece {
		p.Set(Flag(EnPassant))
	}

	if annotate && !p.Has(Check, Checkmate, Stalemate) {
		g.annotateWith(p)
	}
	return p, nil
}

// castleIntent decides whether a single king pair means castling and toward
// which side. A castle keyword already on the ply settles it.
func castleIntent(pos board.Position, p *Ply, pr board.Pair) (long, ok bool) {
	switch {
	case p.Has(LongCastle):
		return true, true
	case p.Has(Castle):
		return false, true
	}
	c := pos.PieceAt(pr.From).Color()
	for _, side := range [2]board.CastleSide{board.Short, board.Long} {
		if pos.CanCastle(c, side) && pos.CastlingRook(c, side) == pr.To {
			return side == board.Long, true
		}
	}
	df := pr.To.File() - pr.From.File()
	if pr.To.Rank() == pr.From.Rank() && (df >= 2 || df <= -2) {
		return df < 0, true
	}
	return false, false
}

// matchCastle finds the castling move whose king and rook pairs are exactly pairs.
func matchCastle(pos board.Position, pairs []board.Pair) (Castling, bool) {
	for _, long := range [2]bool{false, true} {
		cs, ok := ResolveCastle(pos, long, pairs[0].From)
		if ok && cs.King == pairs[0] && cs.Rook == pairs[1] {
			return cs, true
		}
	}
	return Castling{}, false
}

func lastRank(c board.Color) int {
	if c == board.Black {
		return 0
	}
	return 7
}
