// Package crosscheck runs independent move generators over the same FEN so
// results of the ply generator can be compared against them.
package crosscheck

import (
	"fmt"

	"github.com/corentings/chess/v2"
	"github.com/dylhunn/dragontoothmg"
	goose "github.com/Oliverans/GooseEngineMG/goosemg"
	"golang.org/x/exp/slices"
)

// Reference is one independent generator.
type Reference struct {
	Name string
	// Perft is nil when the generator only lists root moves.
	Perft func(fen string, depth int) (uint64, error)
	Moves func(fen string) ([]string, error)
}

// References returns every generator, in a fixed order.
func References() []Reference {
	return []Reference{
		{Name: "dragontoothmg", Perft: DragontoothPerft, Moves: DragontoothMoves},
		{Name: "goosemg", Perft: GoosePerft, Moves: GooseMoves},
		{Name: "corentings", Moves: CorentingsMoves},
	}
}

func DragontoothPerft(fen string, depth int) (uint64, error) {
	b := dragontoothmg.ParseFen(fen)
	return dragontoothPerft(&b, depth), nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}

func DragontoothMoves(fen string) ([]string, error) {
	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out, nil
}

func GoosePerft(fen string, depth int) (uint64, error) {
	b, err := goose.ParseFEN(fen)
	if err != nil {
		return 0, fmt.Errorf("goosemg: %w", err)
	}
	return goose.Perft(b, depth), nil
}

func GooseMoves(fen string) ([]string, error) {
	b, err := goose.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("goosemg: %w", err)
	}
	div := goose.PerftDivide(b, 1)
	out := make([]string, 0, len(div))
	for m := range div {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out, nil
}

func CorentingsMoves(fen string) ([]string, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("corentings: %w", err)
	}
	game := chess.NewGame(opt)
	moves := game.ValidMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, chess.UCINotation{}.Encode(nil, &moves[i]))
	}
	slices.Sort(out)
	return out, nil
}

// Diff returns the moves only in got and only in want. Both must be sorted.
func Diff(got, want []string) (extra, missing []string) {
	i, j := 0, 0
	for i < len(got) || j < len(want) {
		switch {
		case j == len(want) || (i < len(got) && got[i] < want[j]):
			extra = append(extra, got[i])
			i++
		case i == len(got) || want[j] < got[i]:
			missing = append(missing, want[j])
			j++
		default:
			i++
			j++
		}
	}
	return extra, missing
}
