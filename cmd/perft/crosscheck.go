package main

import (
	"fmt"
	"log/slog"

	"chess-ply/board"
	"chess-ply/crosscheck"
	"chess-ply/ply"
)

// crossCheck compares the perft count and the root move list of pos with each
// reference generator and reports whether all of them agree.
func crossCheck(logger *slog.Logger, g *ply.Generator, pos *board.Board, depth int) bool {
	fen := pos.ToFEN()
	nodes := ply.Perft(g, pos, depth)
	moves := rootMoves(g, pos)
	fmt.Printf("ply \t%d \t\t%d\n", depth, nodes)

	ok := true
	for _, ref := range crosscheck.References() {
		if ref.Perft != nil {
			want, err := ref.Perft(fen, depth)
			switch {
			case err != nil:
				logger.Warn("reference failed", "reference", ref.Name, "err", err)
			case want != nodes:
				logger.Error("perft mismatch", "reference", ref.Name, "depth", depth, "got", nodes, "want", want)
				ok = false
			default:
				fmt.Printf("%s \t%d \t\t%d \tok\n", ref.Name, depth, want)
			}
		}
		want, err := ref.Moves(fen)
		if err != nil {
			logger.Warn("reference failed", "reference", ref.Name, "err", err)
			continue
		}
		extra, missing := crosscheck.Diff(moves, want)
		if len(extra) > 0 || len(missing) > 0 {
			logger.Error("root moves differ", "reference", ref.Name, "extra", extra, "missing", missing)
			ok = false
		}
	}
	return ok
}
