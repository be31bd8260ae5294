package board

// Position is the read-mostly snapshot the move generator works against.
// Implementations must treat themselves as immutable: ApplyChanges returns a
// fresh successor and never mutates the receiver.
type Position interface {
	PieceAt(sq Square) Piece
	SideToMove() Color
	CanCastle(c Color, side CastleSide) bool
	CastlingRook(c Color, side CastleSide) Square
	EnPassantTarget() Square
	KingSquare(c Color) Square
	IsAttacked(sq Square, by Color) bool
	LegalCandidates(c Color, target Square, from []Square) []Square
	ApplyChanges(ch Changes) Position
	Squares(p Piece) []Square
	FEN() string
}

var _ Position = (*Board)(nil)

// Pair is one coordinate change: the piece on From ends up on To.
type Pair struct {
	From, To Square
}

func (p Pair) String() string { return p.From.String() + p.To.String() }

// Changes is everything ApplyChanges needs to produce a successor. Castling
// carries two pairs (king first, then rook).
type Changes struct {
	Pairs     []Pair
	Promote   PieceType
	EnPassant bool
}

// ApplyChanges returns the position after ch. All pieces named by the pairs are
// lifted before any is placed, so a Fischer-Random king may land on its rook's
// origin and vice versa.
func (b *Board) ApplyChanges(ch Changes) Position {
	nb := b.Clone()
	if len(ch.Pairs) == 0 {
		return nb
	}
	first := ch.Pairs[0]
	mover := b.PieceAt(first.From)
	us := mover.Color()
	capture := false

	lifted := make([]Piece, len(ch.Pairs))
	for i, pr := range ch.Pairs {
		lifted[i] = nb.removePiece(pr.From)
	}
	if ch.EnPassant {
		nb.removePiece(NewSquare(first.To.File(), first.From.Rank()))
		capture = true
	}
	for i, pr := range ch.Pairs {
		if nb.removePiece(pr.To) != NoPiece {
			capture = true
		}
		p := lifted[i]
		if i == 0 && ch.Promote != PieceTypeNone && promotes(mover, pr.To) {
			p = ch.Promote.Of(us)
		}
		nb.addPiece(pr.To, p)
	}

	// Castling rights: a king move drops both, touching a right's rook square drops that right.
	if mover.Type() == PieceTypeKing {
		nb.castleRooks[us] = [2]Square{NoSquare, NoSquare}
	}
	for _, pr := range ch.Pairs {
		for c := range nb.castleRooks {
			for side, rook := range nb.castleRooks[c] {
				if rook != NoSquare && (rook == pr.From || rook == pr.To) {
					nb.castleRooks[c][side] = NoSquare
				}
			}
		}
	}

	nb.enPassantSquare = NoSquare
	if mover.Type() == PieceTypePawn && abs(first.To.Rank()-first.From.Rank()) == 2 {
		nb.enPassantSquare = NewSquare(first.From.File(), (first.From.Rank()+first.To.Rank())/2)
	}

	if mover.Type() == PieceTypePawn || capture {
		nb.halfmoveClock = 0
	} else {
		nb.halfmoveClock++
	}
	if us == Black {
		nb.fullmoveNumber++
	}
	nb.sideToMove = us.Other()
	return nb
}

// promotes reports whether p landing on to is a pawn reaching its last rank.
func promotes(p Piece, to Square) bool {
	if p.Type() != PieceTypePawn {
		return false
	}
	if p.Color() == Black {
		return to.Rank() == 0
	}
	return to.Rank() == 7
}

// LegalCandidates returns the subset of from whose piece of color c can move to
// target without leaving c's king attacked. A pawn moving diagonally onto the
// en passant target also removes the passed pawn during the simulation.
func (b *Board) LegalCandidates(c Color, target Square, from []Square) []Square {
	var out []Square
	for _, sq := range from {
		p := b.PieceAt(sq)
		if p == NoPiece || p.Color() != c || !target.OnBoard() {
			continue
		}
		if own := b.PieceAt(target); own != NoPiece && own.Color() == c {
			continue
		}
		nb := *b
		if p.Type() == PieceTypePawn && target == b.enPassantSquare && sq.File() != target.File() && b.PieceAt(target) == NoPiece {
			nb.removePiece(NewSquare(target.File(), sq.Rank()))
		}
		nb.removePiece(sq)
		nb.removePiece(target)
		nb.addPiece(target, p)
		if !nb.InCheck(c) {
			out = append(out, sq)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
