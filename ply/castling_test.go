package ply

import (
	"errors"
	"testing"

	"chess-ply/board"
)

const castleReady = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1"

func TestShortCastle(t *testing.T) {
	g := New()
	p := play(t, g, position(t, castleReady), "e1g1")
	pairs := p.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("castling pairs = %v", pairs)
	}
	if pairs[0] != (board.Pair{From: sq(t, "e1"), To: sq(t, "g1")}) || pairs[1] != (board.Pair{From: sq(t, "h1"), To: sq(t, "f1")}) {
		t.Fatalf("castling pairs = %v, want e1g1 h1f1", pairs)
	}
	if !p.Has(Castle) || p.Has(LongCastle) {
		t.Fatalf("annotations = %v, want castle", p.Annotations())
	}
	next := p.Next()
	if next.PieceAt(sq(t, "g1")) != board.WhiteKing || next.PieceAt(sq(t, "f1")) != board.WhiteRook || next.PieceAt(sq(t, "h1")) != board.NoPiece {
		t.Fatalf("successor = %s", next.FEN())
	}
	if next.CanCastle(board.White, board.Short) || next.CanCastle(board.White, board.Long) {
		t.Fatalf("white keeps castling rights after castling")
	}
	if p.String() != "e1g1" {
		t.Fatalf("String() = %q", p.String())
	}
}

func TestLongCastle(t *testing.T) {
	g := New()
	p := play(t, g, position(t, castleReady), "e1c1")
	if !p.Has(LongCastle) {
		t.Fatalf("annotations = %v, want long-castle", p.Annotations())
	}
	next := p.Next()
	if next.PieceAt(sq(t, "c1")) != board.WhiteKing || next.PieceAt(sq(t, "d1")) != board.WhiteRook || next.PieceAt(sq(t, "a1")) != board.NoPiece {
		t.Fatalf("successor = %s", next.FEN())
	}
}

func TestCastleRejected(t *testing.T) {
	g := New()
	cases := []struct {
		name, fen, move string
	}{
		{"f1 attacked", "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1"},
		{"g1 attacked", "4k1r1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1"},
		{"f1 occupied", "4k3/8/8/8/8/8/8/R3KB1R w KQ - 0 1", "e1g1"},
		{"b1 occupied", "4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1", "e1c1"},
		{"d1 attacked", "3rk3/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1c1"},
		{"in check", "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1"},
		{"no right", "4k3/8/8/8/8/8/8/R3K2R w Q - 0 1", "e1g1"},
	}
	for _, tc := range cases {
		if _, err := g.ParseMove(position(t, tc.fen), tc.move); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("%s: %s error = %v, want ErrIllegalMove", tc.name, tc.move, err)
		}
	}
}

func TestLongCastleWithAttackedB1(t *testing.T) {
	// b1 is crossed by the rook only, so an attack on it does not matter.
	g := New()
	p := play(t, g, position(t, "1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1"), "e1c1")
	if !p.Has(LongCastle) {
		t.Fatalf("annotations = %v, want long-castle", p.Annotations())
	}
}

func TestEnumerateIncludesCastles(t *testing.T) {
	g := New(WithoutAnnotation())
	plies, err := g.Enumerate(position(t, castleReady), ByPiece(board.WhiteKing))
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	got := plyStrings(plies)
	for _, want := range []string{"e1d1", "e1f1", "e1g1", "e1c1"} {
		if got[want] != 1 {
			t.Fatalf("king moves = %v, missing %s", got, want)
		}
	}
	if len(plies) != 4 {
		t.Fatalf("king moves = %v", got)
	}
}

func TestResolveCastle(t *testing.T) {
	pos := position(t, castleReady)
	cs, ok := ResolveCastle(pos, true, sq(t, "e1"))
	if !ok {
		t.Fatalf("long castle did not resolve")
	}
	if cs.King != (board.Pair{From: sq(t, "e1"), To: sq(t, "c1")}) || cs.Rook != (board.Pair{From: sq(t, "a1"), To: sq(t, "d1")}) || cs.Keyword != LongCastle {
		t.Fatalf("resolved %+v", cs)
	}
	if _, ok := ResolveCastle(pos, false, sq(t, "d1")); ok {
		t.Fatalf("resolved castling from an empty square")
	}
	// Black's pieces are still in the way.
	if _, ok := ResolveCastle(pos, false, sq(t, "e8")); ok {
		t.Fatalf("resolved black castling through its own pieces")
	}
}

func TestConstructValidatedCastleKeyword(t *testing.T) {
	g := New(WithoutAnnotation())
	pos := position(t, castleReady)
	p, err := g.Construct(pos, true, []board.Pair{{From: sq(t, "e1"), To: sq(t, "c1")}}, Flag(LongCastle))
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if len(p.Pairs()) != 2 || p.Pairs()[1].From != sq(t, "a1") {
		t.Fatalf("rook pair not filled in: %v", p.Pairs())
	}
}

func TestConstructValidatedCastleWithoutPath(t *testing.T) {
	g := New(WithoutAnnotation())
	pos := position(t, board.FENStartPos)
	_, err := g.Construct(pos, true, []board.Pair{{From: sq(t, "e1"), To: sq(t, "g1")}})
	if !errors.Is(err, ErrCastlingResolution) {
		t.Fatalf("error = %v, want ErrCastlingResolution", err)
	}
}

func TestFischerRandomCastles(t *testing.T) {
	g := New(WithoutAnnotation())

	// King b1 takes its a1 rook to castle long: king c1, rook d1.
	pos := position(t, "4k3/8/8/8/8/8/8/RK6 w A - 0 1")
	p := play(t, g, pos, "b1a1")
	if !p.Has(LongCastle) {
		t.Fatalf("b1a1 annotations = %v, want long-castle", p.Annotations())
	}
	next := p.Next()
	if next.PieceAt(sq(t, "c1")) != board.WhiteKing || next.PieceAt(sq(t, "d1")) != board.WhiteRook || next.PieceAt(sq(t, "a1")) != board.NoPiece {
		t.Fatalf("successor = %s", next.FEN())
	}

	// A one-square king step stays a plain king move.
	step := play(t, g, pos, "b1c1")
	if step.Has(Castle, LongCastle) || len(step.Pairs()) != 1 {
		t.Fatalf("b1c1 = %v %v", step.Pairs(), step.Annotations())
	}
	if step.Next().CanCastle(board.White, board.Long) {
		t.Fatalf("king move kept the castling right")
	}

	// King f1 and rook g1 swap places when castling short.
	swap := play(t, g, position(t, "4k3/8/8/8/8/8/8/5KR1 w G - 0 1"), "f1g1")
	if !swap.Has(Castle) {
		t.Fatalf("f1g1 annotations = %v, want castle", swap.Annotations())
	}
	n := swap.Next()
	if n.PieceAt(sq(t, "g1")) != board.WhiteKing || n.PieceAt(sq(t, "f1")) != board.WhiteRook {
		t.Fatalf("successor = %s", n.FEN())
	}

	// A king already on g1 castles short only by taking its rook.
	stay, err := g.Enumerate(position(t, "4k3/8/8/8/8/8/8/6KR w H - 0 1"), To(sq(t, "h1")))
	if err != nil || len(stay) != 1 {
		t.Fatalf("king-takes-rook castles = %v, %v", plyStrings(stay), err)
	}
	if stay[0].String() != "g1h1" || !stay[0].Has(Castle) {
		t.Fatalf("castle = %s %v", stay[0], stay[0].Annotations())
	}
}

func TestFischerRandomCastleBlocked(t *testing.T) {
	g := New()
	// The rook on b1 must reach d1 but c1 is taken.
	pos := position(t, "4k3/8/8/8/8/8/8/1RBK4 w B - 0 1")
	if _, err := g.ParseMove(pos, "d1b1"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("blocked castle error = %v, want ErrIllegalMove", err)
	}
}
