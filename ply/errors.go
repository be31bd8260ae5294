package ply

import (
	"errors"
	"fmt"

	"chess-ply/board"
)

var (
	// ErrIllegalMove is the normal outcome for a proposed move that fails the
	// legality query. Callers retry with another move.
	ErrIllegalMove = errors.New("illegal move")

	// ErrAmbiguousPromotion is returned when a pawn reaches the last rank
	// without a promote annotation and the chooser gives no usable answer.
	ErrAmbiguousPromotion = errors.New("ambiguous promotion")

	// ErrCastlingResolution means a king move passed the legality query but no
	// castling path could be resolved for it.
	ErrCastlingResolution = errors.New("castling resolution failed")

	// ErrInvalidConstraint is returned for constraint sets that cannot be
	// evaluated, such as a file without a piece.
	ErrInvalidConstraint = errors.New("invalid constraint")
)

// UnrecognizedPieceError is the panic value raised when geometry dispatch
// meets a piece outside the twelve concrete pieces.
type UnrecognizedPieceError struct {
	Piece board.Piece
}

func (e UnrecognizedPieceError) Error() string {
	return fmt.Sprintf("unrecognized piece %d", uint8(e.Piece))
}
