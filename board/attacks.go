package board

import "math/bits"

// Precomputed attack masks for knights and kings from each square.
var knightMoves [64]uint64
var kingMoves [64]uint64

// Pawn attack masks: pawnAttacks[color][sq] gives bitboard of squares that a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

// Precomputed rays for sliders. For each square and direction, the bitboard of
// squares in that ray (excluding the origin square).
// Rook directions: 0=N, 1=S, 2=E, 3=W
var rookRays [64][4]uint64

// Bishop directions: 0=NE, 1=NW, 2=SE, 3=SW
var bishopRays [64][4]uint64

// Ray directions whose squares have increasing indices; the first blocker is the LSB.
var (
	rookRayUp   = [4]bool{true, false, true, false}
	bishopRayUp = [4]bool{true, true, false, false}
)

var (
	rookSteps   = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopSteps = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

func init() {
	initAttackTables()
	initRays()
}

// initAttackTables precomputes attack bitboards for knights, kings, and pawn captures.
func initAttackTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		knightMoves[sq] = offsetMask(file, rank, knightOffsets[:])
		kingMoves[sq] = offsetMask(file, rank, kingOffsets[:])

		// White pawns attack upward, black pawns downward.
		pawnAttacks[White][sq] = offsetMask(file, rank, [][2]int{{-1, 1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetMask(file, rank, [][2]int{{-1, -1}, {1, -1}})
	}
}

func offsetMask(file, rank int, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		ff, rf := file+off[0], rank+off[1]
		if rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
			mask |= uint64(1) << uint(rf*8+ff)
		}
	}
	return mask
}

// initRays precomputes directional rays for rook and bishop moves.
func initRays() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		for d := 0; d < 4; d++ {
			rookRays[sq][d] = walkRay(file, rank, rookSteps[d])
			bishopRays[sq][d] = walkRay(file, rank, bishopSteps[d])
		}
	}
}

func walkRay(file, rank int, step [2]int) uint64 {
	var ray uint64
	for f, r := file+step[0], rank+step[1]; f >= 0 && f < 8 && r >= 0 && r < 8; f, r = f+step[0], r+step[1] {
		ray |= uint64(1) << uint(r*8+f)
	}
	return ray
}

// firstBlocker returns the nearest occupied square on a ray, or -1.
func firstBlocker(blockers uint64, up bool) int {
	if blockers == 0 {
		return -1
	}
	if up {
		return bits.TrailingZeros64(blockers)
	}
	return 63 - bits.LeadingZeros64(blockers)
}

// ==========================
// Sliding attacks
// ==========================

// rookAttacks returns rook attack bitboard from sq given current occupancy.
func rookAttacks(sq int, occ uint64) uint64 {
	var attacks uint64
	for d := 0; d < 4; d++ {
		ray := rookRays[sq][d]
		if first := firstBlocker(ray&occ, rookRayUp[d]); first >= 0 {
			ray &^= rookRays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

// bishopAttacks returns bishop attack bitboard from sq given current occupancy.
func bishopAttacks(sq int, occ uint64) uint64 {
	var attacks uint64
	for d := 0; d < 4; d++ {
		ray := bishopRays[sq][d]
		if first := firstBlocker(ray&occ, bishopRayUp[d]); first >= 0 {
			ray &^= bishopRays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

// ==========================
// Attack queries
// ==========================

// IsAttacked reports whether the given square is attacked by the given color.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	if !sq.OnBoard() {
		return false
	}
	return b.isSquareAttackedWithOcc(int(sq), by, b.AllOccupancy())
}

func (b *Board) isSquareAttackedWithOcc(s int, by Color, occ uint64) bool {
	own := &b.byType[by]

	// Pawn attacks via reverse mask
	if pawnAttacks[by.Other()][s]&own[PieceTypePawn] != 0 {
		return true
	}
	if knightMoves[s]&own[PieceTypeKnight] != 0 {
		return true
	}
	if kingMoves[s]&own[PieceTypeKing] != 0 {
		return true
	}

	rq := own[PieceTypeRook] | own[PieceTypeQueen]
	bq := own[PieceTypeBishop] | own[PieceTypeQueen]
	if rq != 0 && rookAttacks(s, occ)&rq != 0 {
		return true
	}
	if bq != 0 && bishopAttacks(s, occ)&bq != 0 {
		return true
	}
	return false
}

// InCheck reports whether the specified color's king is currently in check.
func (b *Board) InCheck(color Color) bool {
	ks := b.KingSquare(color)
	if ks == NoSquare {
		return false
	}
	return b.IsAttacked(ks, color.Other())
}
