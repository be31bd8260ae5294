package ply

import (
	"testing"

	"chess-ply/board"
)

func sq(t testing.TB, s string) board.Square {
	t.Helper()
	v, err := board.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return v
}

func position(t testing.TB, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func play(t testing.TB, g *Generator, pos board.Position, uci string) *Ply {
	t.Helper()
	p, err := g.ParseMove(pos, uci)
	if err != nil {
		t.Fatalf("ParseMove(%s) in %s: %v", uci, pos.FEN(), err)
	}
	return p
}

func TestPlyE2E4(t *testing.T) {
	g := New()
	pos := position(t, board.FENStartPos)
	p := play(t, g, pos, "e2e4")

	next := p.Next()
	if next.PieceAt(sq(t, "e4")) != board.WhitePawn {
		t.Fatalf("no pawn on e4")
	}
	if next.PieceAt(sq(t, "e2")) != board.NoPiece {
		t.Fatalf("e2 not empty")
	}
	if next.SideToMove() != board.Black {
		t.Fatalf("side to move = %v", next.SideToMove())
	}
	if p.From() != sq(t, "e2") || p.To() != sq(t, "e4") || p.String() != "e2e4" {
		t.Fatalf("ply = %s from %v to %v", p, p.From(), p.To())
	}
	if len(p.Annotations()) != 0 {
		t.Fatalf("unexpected annotations %v", p.Annotations())
	}
	if p.Base() != board.Position(pos) {
		t.Fatalf("base position not shared")
	}
}

func TestNextIsCached(t *testing.T) {
	g := New(WithoutAnnotation())
	p := play(t, g, position(t, board.FENStartPos), "g1f3")
	if p.Has(NextPos) {
		t.Fatalf("successor computed before first use")
	}
	first := p.Next()
	if p.Next() != first {
		t.Fatalf("second Next returned a different position")
	}
	v, ok := p.Value(NextPos)
	if !ok || v != first || !p.Has(NextPos) {
		t.Fatalf("Value(NextPos) = %v, %v", v, ok)
	}

	// Dropping the base drops the cache.
	p.SetBase(position(t, board.FENStartPos))
	if p.Has(NextPos) {
		t.Fatalf("cache survived SetBase")
	}
}

func TestAnnotationsAPI(t *testing.T) {
	p := NewStatus(position(t, board.FENStartPos))
	p.Set(Flag(Castle))
	p.Set(Flag(LongCastle))
	if p.Has(Castle) || !p.Has(LongCastle) {
		t.Fatalf("castle and long-castle must exclude each other: %v", p.Annotations())
	}
	p.Set(Promotion(board.PieceTypeRook))
	p.Set(Promotion(board.PieceTypeBishop))
	if v, ok := p.Value(Promote); !ok || v != board.PieceTypeBishop {
		t.Fatalf("Value(Promote) = %v, %v", v, ok)
	}
	if len(p.Annotations()) != 2 {
		t.Fatalf("annotations = %v", p.Annotations())
	}
	if v, ok := p.Value(LongCastle); !ok || v != true {
		t.Fatalf("Value(LongCastle) = %v, %v", v, ok)
	}
	if _, ok := p.Value(Check); ok {
		t.Fatalf("Value(Check) present on a bare ply")
	}
	p.Set(Flag(NextPos))
	if p.Has(NextPos) {
		t.Fatalf("next-pos cannot be set by hand")
	}
	if a, ok := p.Lookup(Promote); !ok || a.String() != "promote(b)" {
		t.Fatalf("Lookup(Promote) = %v, %v", a, ok)
	}
}

func TestSetChanges(t *testing.T) {
	g := New(WithoutAnnotation())
	p := play(t, g, position(t, board.FENStartPos), "e2e4")
	p.Next()
	p.SetChanges([]board.Pair{{From: sq(t, "d2"), To: sq(t, "d4")}}, Flag(Check))
	if p.Has(NextPos) {
		t.Fatalf("cache survived SetChanges")
	}
	if p.String() != "d2d4" || !p.Has(Check) {
		t.Fatalf("ply = %s %v", p, p.Annotations())
	}
	if p.Next().PieceAt(sq(t, "d4")) != board.WhitePawn {
		t.Fatalf("successor does not follow the new pairs")
	}
}

func TestStatusPly(t *testing.T) {
	pos := position(t, board.FENStartPos)
	p := NewStatus(pos, Flag(Resign))
	if len(p.Pairs()) != 0 || p.From() != board.NoSquare || p.To() != board.NoSquare {
		t.Fatalf("status ply carries coordinates")
	}
	if p.String() != "resign" {
		t.Fatalf("String() = %q", p.String())
	}
	if p.Next() != board.Position(pos) {
		t.Fatalf("status successor must be its base")
	}
	if !p.IsFinal(nil) {
		t.Fatalf("resignation is final")
	}

	offer := NewStatus(pos, Flag(DrawOffered))
	if offer.IsFinal(nil) {
		t.Fatalf("a draw offer does not end the game")
	}
}

func TestIsFinalFollowsPreviousPly(t *testing.T) {
	g := New()
	pos := position(t, "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	mate := play(t, g, pos, "d8h4")
	if !mate.IsFinal(nil) {
		t.Fatalf("checkmating ply is final")
	}
	after := NewStatus(mate.Next(), Flag(DrawOffered))
	if !after.IsFinal(mate) {
		t.Fatalf("ply after checkmate is final")
	}
	quiet := play(t, g, position(t, board.FENStartPos), "e2e4")
	if after.IsFinal(quiet) {
		t.Fatalf("ply after a quiet move is not final")
	}
}

func TestKeywordNames(t *testing.T) {
	for k := Promote; k <= Aborted; k++ {
		got, err := ParseKeyword(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKeyword(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKeyword("castles"); err == nil {
		t.Fatalf("expected error for unknown keyword")
	}
}
