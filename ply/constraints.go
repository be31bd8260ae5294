package ply

import (
	"fmt"

	"chess-ply/board"
)

// Constraint narrows an enumeration. Constraints compose; origin constraints
// intersect.
type Constraint func(*query)

type query struct {
	any bool

	color    board.Color
	hasColor bool

	piece board.Piece
	file  int

	origins    uint64
	hasOrigins bool

	to board.Square
}

// AnyMove stops the enumeration at the first legal ply.
func AnyMove() Constraint {
	return func(q *query) { q.any = true }
}

// ByColor enumerates moves of c instead of the side to move.
func ByColor(c board.Color) Constraint {
	return func(q *query) {
		q.color = c
		q.hasColor = true
	}
}

// ByPiece restricts the enumeration to one concrete piece.
func ByPiece(p board.Piece) Constraint {
	return func(q *query) { q.piece = p }
}

// OnFile restricts origins to file f (0 = a). It needs ByPiece.
func OnFile(f int) Constraint {
	return func(q *query) { q.file = f }
}

// From restricts the enumeration to a single origin square.
func From(sq board.Square) Constraint {
	return FromAny(sq)
}

// FromAny restricts the enumeration to an explicit list of origins.
func FromAny(sqs ...board.Square) Constraint {
	return func(q *query) {
		var mask uint64
		for _, sq := range sqs {
			if sq.OnBoard() {
				mask |= 1 << uint(sq)
			}
		}
		if q.hasOrigins {
			q.origins &= mask
		} else {
			q.origins = mask
		}
		q.hasOrigins = true
	}
}

// To restricts destinations to sq. A castling ply matches both its king's
// destination and its rook's origin.
func To(sq board.Square) Constraint {
	return func(q *query) { q.to = sq }
}

func newQuery(pos board.Position, cs []Constraint) (*query, error) {
	q := &query{file: -1, to: board.NoSquare}
	for _, c := range cs {
		c(q)
	}
	if q.file >= 0 && q.piece == board.NoPiece {
		return nil, fmt.Errorf("%w: file %d given without a piece", ErrInvalidConstraint, q.file)
	}
	if q.file > 7 || q.file < -1 {
		return nil, fmt.Errorf("%w: file %d out of range", ErrInvalidConstraint, q.file)
	}
	if q.piece != board.NoPiece {
		if !q.piece.Valid() {
			panic(UnrecognizedPieceError{Piece: q.piece})
		}
		if q.hasColor && q.color != q.piece.Color() {
			return nil, fmt.Errorf("%w: %s piece %s requested for %s", ErrInvalidConstraint, q.piece.Color(), q.piece, q.color)
		}
		q.color = q.piece.Color()
		q.hasColor = true
	}
	if !q.hasColor {
		q.color = pos.SideToMove()
	}
	if q.to != board.NoSquare && !q.to.OnBoard() {
		return nil, fmt.Errorf("%w: target %d is off the board", ErrInvalidConstraint, int(q.to))
	}
	return q, nil
}

// pieces returns the piece kinds the query walks, pawn to king.
func (q *query) pieces() []board.Piece {
	if q.piece != board.NoPiece {
		return []board.Piece{q.piece}
	}
	out := make([]board.Piece, 0, 6)
	for _, p := range board.AllPieces {
		if p.Color() == q.color {
			out = append(out, p)
		}
	}
	return out
}

func (q *query) allowsOrigin(sq board.Square) bool {
	if q.hasOrigins && q.origins&(1<<uint(sq)) == 0 {
		return false
	}
	return q.file < 0 || sq.File() == q.file
}

func (q *query) allowsTarget(sq board.Square) bool {
	return q.to == board.NoSquare || q.to == sq
}
