package board

import (
	"fmt"
	"math/bits"
)

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// AllPieces lists the twelve concrete pieces, white first, in generation order.
var AllPieces = [12]Piece{
	WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// PromotionTypes are the pieces a pawn may become, in the order they are generated.
var PromotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// Valid reports whether p is one of the twelve concrete pieces.
func (p Piece) Valid() bool {
	t := p.Type()
	return p&^15 == 0 && t >= PieceTypePawn && t <= PieceTypeKing
}

// String returns the FEN letter of the piece.
func (p Piece) String() string { return string(charFromPiece(p)) }

// Of combines a colorless type with a side to produce a concrete Piece.
func (pt PieceType) Of(c Color) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	if c == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

// Promotable reports whether a pawn may promote to pt.
func (pt PieceType) Promotable() bool {
	return pt >= PieceTypeKnight && pt <= PieceTypeQueen
}

// String returns the lowercase letter of the type, "" for PieceTypeNone.
func (pt PieceType) String() string {
	if pt == PieceTypeNone {
		return ""
	}
	return string(charFromPiece(pt.Of(Black)))
}

// ParsePieceType accepts a piece letter (either case) or an English name.
func ParsePieceType(s string) (PieceType, error) {
	switch s {
	case "p", "P", "pawn":
		return PieceTypePawn, nil
	case "n", "N", "knight":
		return PieceTypeKnight, nil
	case "b", "B", "bishop":
		return PieceTypeBishop, nil
	case "r", "R", "rook":
		return PieceTypeRook, nil
	case "q", "Q", "queen":
		return PieceTypeQueen, nil
	case "k", "K", "king":
		return PieceTypeKing, nil
	}
	return PieceTypeNone, fmt.Errorf("unknown piece type %q", s)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return 1 - c }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// CastleSide selects the king-side (short) or queen-side (long) castling right.
type CastleSide uint8

const (
	Short CastleSide = 0
	Long  CastleSide = 1
)

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

// NewSquare returns the square on the given file and rank (both 0-7).
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) File() int { return int(sq) % 8 }

func (sq Square) Rank() int { return int(sq) / 8 }

// OnBoard reports whether sq is a real square.
func (sq Square) OnBoard() bool { return sq >= 0 && sq < 64 }

// String renders the square in algebraic form, "-" for NoSquare.
func (sq Square) String() string {
	if !sq.OnBoard() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare converts an algebraic coordinate like "e4" to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}

// Board represents the chess board state, including piece placement and game state.
type Board struct {
	// Per-type bitboards, indexed [color][piece type].
	byType [2][7]uint64

	// occupancy[White], occupancy[Black]
	occupancy [2]uint64

	pieces [64]Piece

	sideToMove Color

	// Rook squares backing each castling right, NoSquare once the right is gone.
	// Indexed [color][CastleSide]; any file is allowed so Fischer-Random setups work.
	castleRooks [2][2]Square

	// En passant target square (the square a double-stepping pawn passed over), otherwise NoSquare.
	enPassantSquare Square

	halfmoveClock  int
	fullmoveNumber int
}

// Empty returns a board with no pieces, White to move and no rights.
func Empty() *Board {
	b := &Board{enPassantSquare: NoSquare, fullmoveNumber: 1}
	b.castleRooks = [2][2]Square{{NoSquare, NoSquare}, {NoSquare, NoSquare}}
	return b
}

// HalfmoveClock accessor for read-only access.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// EnPassantTarget returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantTarget() Square { return b.enPassantSquare }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// SetSideToMove updates the side to play. Use with care; applying changes toggles automatically.
func (b *Board) SetSideToMove(c Color) { b.sideToMove = c }

// CanCastle reports whether c still holds the castling right for side.
func (b *Board) CanCastle(c Color, side CastleSide) bool {
	return b.castleRooks[c][side] != NoSquare
}

// CastlingRook returns the rook square recorded for the right, or NoSquare.
func (b *Board) CastlingRook(c Color, side CastleSide) Square {
	return b.castleRooks[c][side]
}

// SetCastlingRook records (or with NoSquare clears) a castling right.
func (b *Board) SetCastlingRook(c Color, side CastleSide, rook Square) {
	b.castleRooks[c][side] = rook
}

// KingSquare returns the square of c's king, NoSquare if it has none.
func (b *Board) KingSquare(c Color) Square {
	kingBB := b.byType[c][PieceTypeKing]
	if kingBB == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(kingBB))
}

// Squares returns every square holding p, in ascending order.
func (b *Board) Squares(p Piece) []Square {
	if !p.Valid() {
		return nil
	}
	return squaresOf(b.byType[p.Color()][p.Type()])
}

// Occupied returns every square holding a piece of color c.
func (b *Board) Occupied(c Color) []Square { return squaresOf(b.occupancy[c]) }

func squaresOf(mask uint64) []Square {
	out := make([]Square, 0, bits.OnesCount64(mask))
	for mask != 0 {
		out = append(out, Square(popLSB(&mask)))
	}
	return out
}

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// ==========================
// Board occupancy helpers
// ==========================

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.occupancy[0] | b.occupancy[1] }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.OnBoard() {
		return NoPiece
	}
	return b.pieces[int(sq)]
}

// addPiece places a piece on an empty square and updates bitboards and occupancy.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	c := p.Color()
	b.pieces[int(sq)] = p
	b.occupancy[c] |= bb(sq)
	b.byType[c][p.Type()] |= bb(sq)
}

// removePiece removes a piece from a square and returns it.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[int(sq)]
	if p == NoPiece {
		return NoPiece
	}
	c := p.Color()
	mask := ^bb(sq)
	b.pieces[int(sq)] = NoPiece
	b.occupancy[c] &= mask
	b.byType[c][p.Type()] &= mask
	return p
}

// SetPiece sets a piece on a square, replacing any existing piece, and keeps state in sync.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { _ = b.removePiece(sq) }

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// Validate checks internal consistency between pieces[], per-type bitboards, and occupancy.
func (b *Board) Validate() bool {
	var occ [2]uint64
	var byType [2][7]uint64
	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		bit := uint64(1) << uint(sq)
		occ[p.Color()] |= bit
		byType[p.Color()][p.Type()] |= bit
	}
	return occ == b.occupancy && byType == b.byType
}
