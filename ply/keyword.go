package ply

import (
	"fmt"

	"chess-ply/board"
)

// Keyword names an annotation a ply may carry.
type Keyword uint8

const (
	Promote Keyword = iota + 1
	Resign
	Stalemate
	Repetition
	Perpetual
	Check
	Checkmate
	Draw
	DrawOffered
	Castle
	LongCastle
	EnPassant
	NextPos
	FlagFell
	Aborted
)

var keywordNames = [...]string{
	Promote:     "promote",
	Resign:      "resign",
	Stalemate:   "stalemate",
	Repetition:  "repetition",
	Perpetual:   "perpetual",
	Check:       "check",
	Checkmate:   "checkmate",
	Draw:        "draw",
	DrawOffered: "draw-offered",
	Castle:      "castle",
	LongCastle:  "long-castle",
	EnPassant:   "en-passant",
	NextPos:     "next-pos",
	FlagFell:    "flag-fell",
	Aborted:     "aborted",
}

func (k Keyword) String() string {
	if int(k) < len(keywordNames) && keywordNames[k] != "" {
		return keywordNames[k]
	}
	return fmt.Sprintf("keyword(%d)", uint8(k))
}

// ParseKeyword maps a keyword's name back to the Keyword.
func ParseKeyword(s string) (Keyword, error) {
	for k, name := range keywordNames {
		if name != "" && name == s {
			return Keyword(k), nil
		}
	}
	return 0, fmt.Errorf("unknown keyword %q", s)
}

// terminating keywords end the game on the ply that carries them.
var terminating = []Keyword{Resign, Checkmate, Stalemate, Draw, Repetition, Perpetual, FlagFell, Aborted}

// Annotation is one keyword entry of a ply. Piece is only meaningful for Promote.
type Annotation struct {
	Keyword Keyword
	Piece   board.PieceType
}

// Flag returns a bare keyword annotation.
func Flag(k Keyword) Annotation { return Annotation{Keyword: k} }

// Promotion returns a promote annotation for pt.
func Promotion(pt board.PieceType) Annotation {
	return Annotation{Keyword: Promote, Piece: pt}
}

func (a Annotation) String() string {
	if a.Keyword == Promote {
		return fmt.Sprintf("%s(%s)", a.Keyword, a.Piece)
	}
	return a.Keyword.String()
}
