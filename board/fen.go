package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrFENFields    = errors.New("invalid FEN: not enough fields")
	ErrFENPlacement = errors.New("invalid FEN: bad piece placement")
	ErrFENSide      = errors.New("invalid FEN: side to move must be 'w' or 'b'")
	ErrFENCastling  = errors.New("invalid FEN: bad castling rights")
	ErrFENEnPassant = errors.New("invalid FEN: bad en passant square")
	ErrFENClock     = errors.New("invalid FEN: move clock is not a number")
)

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) rune {
	switch p {
	case WhitePawn:
		return 'P'
	case WhiteKnight:
		return 'N'
	case WhiteBishop:
		return 'B'
	case WhiteRook:
		return 'R'
	case WhiteQueen:
		return 'Q'
	case WhiteKing:
		return 'K'
	case BlackPawn:
		return 'p'
	case BlackKnight:
		return 'n'
	case BlackBishop:
		return 'b'
	case BlackRook:
		return 'r'
	case BlackQueen:
		return 'q'
	case BlackKing:
		return 'k'
	default:
		return '?'
	}
}

// ParseFEN parses a FEN string and returns a new Board set up to that position.
// The castling field accepts KQkq, Shredder/X-FEN rook files (A-H, a-h) or '-'.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, ErrFENFields
	}

	board := Empty()

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: %d ranks", ErrFENPlacement, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return nil, fmt.Errorf("%w: unrecognized piece %q", ErrFENPlacement, ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("%w: too many squares in rank %d", ErrFENPlacement, rank+1)
			}
			board.addPiece(NewSquare(file, rank), piece)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d does not have 8 columns", ErrFENPlacement, rank+1)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		board.sideToMove = White
	case "b":
		board.sideToMove = Black
	default:
		return nil, ErrFENSide
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			if err := board.parseCastlingRight(ch); err != nil {
				return nil, err
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFENEnPassant, err)
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return nil, fmt.Errorf("%w: %s is not on the third or sixth rank", ErrFENEnPassant, sq)
		}
		board.enPassantSquare = sq
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, ErrFENClock
		}
		board.halfmoveClock = halfmove
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, ErrFENClock
		}
		board.fullmoveNumber = fullmove
	}

	return board, nil
}

// MustParseFEN is ParseFEN for fixtures known to be valid; it panics on error.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) parseCastlingRight(ch rune) error {
	var c Color
	switch {
	case ch >= 'A' && ch <= 'Z':
		c = White
	case ch >= 'a' && ch <= 'z':
		c = Black
		ch -= 'a' - 'A'
	default:
		return fmt.Errorf("%w: %q", ErrFENCastling, ch)
	}
	backRank := 0
	if c == Black {
		backRank = 7
	}
	king := b.KingSquare(c)
	if king == NoSquare || king.Rank() != backRank {
		return fmt.Errorf("%w: %s king is not on its back rank", ErrFENCastling, c)
	}
	rook := c.rook()

	switch {
	case ch == 'K':
		for f := 7; f > king.File(); f-- {
			if sq := NewSquare(f, backRank); b.PieceAt(sq) == rook {
				b.castleRooks[c][Short] = sq
				return nil
			}
		}
	case ch == 'Q':
		for f := 0; f < king.File(); f++ {
			if sq := NewSquare(f, backRank); b.PieceAt(sq) == rook {
				b.castleRooks[c][Long] = sq
				return nil
			}
		}
	case ch >= 'A' && ch <= 'H':
		sq := NewSquare(int(ch-'A'), backRank)
		if b.PieceAt(sq) != rook || sq.File() == king.File() {
			break
		}
		if sq.File() > king.File() {
			b.castleRooks[c][Short] = sq
		} else {
			b.castleRooks[c][Long] = sq
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrFENCastling, ch)
	}
	return fmt.Errorf("%w: no %s rook for %q", ErrFENCastling, c, ch)
}

func (c Color) rook() Piece { return PieceTypeRook.Of(c) }

// FEN is ToFEN under the Position interface name.
func (b *Board) FEN() string { return b.ToFEN() }

// ToFEN produces the FEN string representation of the board's current state.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[rank*8+file]
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteRune(charFromPiece(p))
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	rights := b.castlingField()
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(b.enPassantSquare.String())
	sb.WriteByte(' ')

	// 5. Halfmove clock, 6. Fullmove number
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}

// castlingField writes K/Q when the right's rook is the outermost one on that
// side of the king and the rook's file letter otherwise.
func (b *Board) castlingField() string {
	var sb strings.Builder
	for _, c := range []Color{White, Black} {
		for _, side := range []CastleSide{Short, Long} {
			rook := b.castleRooks[c][side]
			if rook == NoSquare {
				continue
			}
			var ch byte = 'K'
			if side == Long {
				ch = 'Q'
			}
			if !b.outermostRook(c, side, rook) {
				ch = 'A' + byte(rook.File())
			}
			if c == Black {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

func (b *Board) outermostRook(c Color, side CastleSide, rook Square) bool {
	step := 1
	if side == Long {
		step = -1
	}
	for f := rook.File() + step; f >= 0 && f <= 7; f += step {
		if b.PieceAt(NewSquare(f, rook.Rank())) == c.rook() {
			return false
		}
	}
	return true
}
