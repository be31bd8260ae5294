package ply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"chess-ply/board"
)

// PromotionChooser supplies the piece a pawn of color c promotes to when the
// move did not name one. onTurn is false for pre-supplied moves of the side
// not on move.
type PromotionChooser interface {
	Choose(c board.Color, onTurn bool) (board.PieceType, error)
}

// ChooserFunc adapts a function to PromotionChooser.
type ChooserFunc func(c board.Color, onTurn bool) (board.PieceType, error)

func (f ChooserFunc) Choose(c board.Color, onTurn bool) (board.PieceType, error) { return f(c, onTurn) }

// Fixed always answers pt without blocking.
type Fixed board.PieceType

func (f Fixed) Choose(board.Color, bool) (board.PieceType, error) { return board.PieceType(f), nil }

// Prompt asks on Out and reads the answer line from In. Answers are piece
// letters or names; an unusable answer is asked again up to Attempts times.
type Prompt struct {
	In       *bufio.Scanner
	Out      io.Writer
	Attempts int
}

var errNoAnswer = errors.New("no promotion piece given")

func (pr *Prompt) Choose(c board.Color, _ bool) (board.PieceType, error) {
	attempts := pr.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	for i := 0; i < attempts; i++ {
		if pr.Out != nil {
			fmt.Fprintf(pr.Out, "promote %s pawn to (q, r, b, n): ", c)
		}
		if !pr.In.Scan() {
			if err := pr.In.Err(); err != nil {
				return board.PieceTypeNone, err
			}
			return board.PieceTypeNone, errNoAnswer
		}
		pt, err := board.ParsePieceType(strings.ToLower(strings.TrimSpace(pr.In.Text())))
		if err == nil && pt.Promotable() {
			return pt, nil
		}
		if pr.Out != nil {
			fmt.Fprintln(pr.Out, "expected one of q, r, b, n")
		}
	}
	return board.PieceTypeNone, errNoAnswer
}

// Policy picks the chooser by whether the mover is the side to move: OnTurn
// answers the side to move, OutOfTurn answers pre-supplied moves of the other
// side. A nil chooser falls back to a queen for OnTurn and a knight for
// OutOfTurn.
type Policy struct {
	OnTurn    PromotionChooser
	OutOfTurn PromotionChooser
}

func (p Policy) Choose(c board.Color, onTurn bool) (board.PieceType, error) {
	if onTurn {
		if p.OnTurn == nil {
			return board.PieceTypeQueen, nil
		}
		return p.OnTurn.Choose(c, true)
	}
	if p.OutOfTurn == nil {
		return board.PieceTypeKnight, nil
	}
	return p.OutOfTurn.Choose(c, false)
}
