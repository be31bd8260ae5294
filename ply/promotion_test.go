package ply

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"chess-ply/board"
)

const promotionReady = "8/P7/8/8/8/8/8/k6K w - - 0 1"

func TestPromotionAsksChooserOnce(t *testing.T) {
	calls := 0
	var asked board.Color
	var onTurn bool
	g := New(WithChooser(ChooserFunc(func(c board.Color, turn bool) (board.PieceType, error) {
		calls++
		asked, onTurn = c, turn
		return board.PieceTypeRook, nil
	})))
	p := play(t, g, position(t, promotionReady), "a7a8")
	if calls != 1 || asked != board.White || !onTurn {
		t.Fatalf("chooser called %d times for %v (on turn %v)", calls, asked, onTurn)
	}
	if pt, ok := p.Promotion(); !ok || pt != board.PieceTypeRook {
		t.Fatalf("promotion = %v, %v", pt, ok)
	}
	if p.String() != "a7a8r" {
		t.Fatalf("String() = %q", p.String())
	}
	if p.Next().PieceAt(sq(t, "a8")) != board.WhiteRook {
		t.Fatalf("successor = %s", p.Next().FEN())
	}

	// A named promotion does not ask.
	q := play(t, g, position(t, promotionReady), "a7a8n")
	if calls != 1 {
		t.Fatalf("chooser asked for an explicit promotion")
	}
	if pt, _ := q.Promotion(); pt != board.PieceTypeKnight {
		t.Fatalf("explicit promotion = %v", pt)
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	p := play(t, New(), position(t, promotionReady), "a7a8")
	if pt, _ := p.Promotion(); pt != board.PieceTypeQueen {
		t.Fatalf("default promotion = %v", pt)
	}
	// The new queen checks the king on a1 down the file.
	if !p.Has(Check) {
		t.Fatalf("a7a8q annotations = %v", p.Annotations())
	}
}

func TestPromotionChooserFailure(t *testing.T) {
	pos := position(t, promotionReady)
	failing := New(WithChooser(ChooserFunc(func(board.Color, bool) (board.PieceType, error) {
		return board.PieceTypeNone, errors.New("no answer")
	})))
	if _, err := failing.ParseMove(pos, "a7a8"); !errors.Is(err, ErrAmbiguousPromotion) {
		t.Fatalf("error = %v, want ErrAmbiguousPromotion", err)
	}
	king := New(WithChooser(Fixed(board.PieceTypeKing)))
	if _, err := king.ParseMove(pos, "a7a8"); !errors.Is(err, ErrAmbiguousPromotion) {
		t.Fatalf("error = %v, want ErrAmbiguousPromotion", err)
	}
	if _, err := New().Construct(pos, true, []board.Pair{{From: sq(t, "a7"), To: sq(t, "a8")}}, Promotion(board.PieceTypePawn)); !errors.Is(err, ErrAmbiguousPromotion) {
		t.Fatalf("pawn promotion error = %v, want ErrAmbiguousPromotion", err)
	}
}

func TestEnumeratePromotions(t *testing.T) {
	g := New(WithChooser(ChooserFunc(func(board.Color, bool) (board.PieceType, error) {
		t.Fatalf("enumeration must not ask the chooser")
		return board.PieceTypeNone, nil
	})))
	plies, err := g.Enumerate(position(t, promotionReady), From(sq(t, "a7")))
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(plies) != 4 {
		t.Fatalf("expected 4 promotions, got %v", plyStrings(plies))
	}
	want := []board.PieceType{board.PieceTypeQueen, board.PieceTypeRook, board.PieceTypeBishop, board.PieceTypeKnight}
	for i, p := range plies {
		if pt, _ := p.Promotion(); pt != want[i] {
			t.Fatalf("promotion %d = %v, want %v", i, pt, want[i])
		}
		if p.From() != sq(t, "a7") || p.To() != sq(t, "a8") {
			t.Fatalf("promotion %d moves %s", i, p)
		}
	}
}

func TestPolicyChooser(t *testing.T) {
	p := Policy{OnTurn: Fixed(board.PieceTypeBishop), OutOfTurn: Fixed(board.PieceTypeRook)}
	for _, c := range []board.Color{board.White, board.Black} {
		if pt, _ := p.Choose(c, true); pt != board.PieceTypeBishop {
			t.Fatalf("%v on-turn choice = %v", c, pt)
		}
		if pt, _ := p.Choose(c, false); pt != board.PieceTypeRook {
			t.Fatalf("%v out-of-turn choice = %v", c, pt)
		}
	}
	var empty Policy
	if pt, _ := empty.Choose(board.Black, true); pt != board.PieceTypeQueen {
		t.Fatalf("empty on-turn choice = %v", pt)
	}
	if pt, _ := empty.Choose(board.Black, false); pt != board.PieceTypeKnight {
		t.Fatalf("empty out-of-turn choice = %v", pt)
	}
}

func TestPolicyFollowsSideToMove(t *testing.T) {
	g := New(WithChooser(Policy{}))
	// Black's pawn on a2 with white to move is a pre-supplied out-of-turn move.
	const fen = "7K/P7/8/8/8/8/p7/7k %s - - 0 1"
	white := play(t, g, position(t, fmt.Sprintf(fen, "w")), "a7a8")
	if pt, _ := white.Promotion(); pt != board.PieceTypeQueen {
		t.Fatalf("on-turn white promotion = %v", pt)
	}
	early := play(t, g, position(t, fmt.Sprintf(fen, "w")), "a2a1")
	if pt, _ := early.Promotion(); pt != board.PieceTypeKnight {
		t.Fatalf("out-of-turn black promotion = %v", pt)
	}
	black := play(t, g, position(t, fmt.Sprintf(fen, "b")), "a2a1")
	if pt, _ := black.Promotion(); pt != board.PieceTypeQueen {
		t.Fatalf("on-turn black promotion = %v", pt)
	}
}

func TestPromotionSuffixOnOrdinaryMove(t *testing.T) {
	g := New()
	pos := position(t, board.FENStartPos)
	for _, uci := range []string{"e2e4q", "g1f3q", "e2e3n"} {
		if _, err := g.ParseMove(pos, uci); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("ParseMove(%s) error = %v, want ErrIllegalMove", uci, err)
		}
	}
	pairs := []board.Pair{{From: sq(t, "e2"), To: sq(t, "e4")}}
	if _, err := g.Construct(pos, true, pairs, Promotion(board.PieceTypeQueen)); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("validated e2e4 with promotion: error = %v, want ErrIllegalMove", err)
	}
}

func TestZeroGeneratorPromotes(t *testing.T) {
	var g Generator
	p, err := g.ParseMove(position(t, promotionReady), "a7a8")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if pt, _ := p.Promotion(); pt != board.PieceTypeQueen {
		t.Fatalf("zero generator promotion = %v", pt)
	}
	if len(p.Annotations()) != 1 {
		t.Fatalf("zero generator annotated: %v", p.Annotations())
	}
}

func TestPromptChooser(t *testing.T) {
	var out bytes.Buffer
	pr := &Prompt{In: bufio.NewScanner(strings.NewReader("king\n\nR\n")), Out: &out}
	pt, err := pr.Choose(board.White, true)
	if err != nil || pt != board.PieceTypeRook {
		t.Fatalf("Choose = %v, %v", pt, err)
	}
	if got := strings.Count(out.String(), "promote white pawn"); got != 3 {
		t.Fatalf("asked %d times:\n%s", got, out.String())
	}

	eof := &Prompt{In: bufio.NewScanner(strings.NewReader(""))}
	if _, err := eof.Choose(board.Black, true); err == nil {
		t.Fatalf("expected an error at end of input")
	}
}
