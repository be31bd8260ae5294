package ply

import "chess-ply/board"

// Perft counts the leaf nodes of the legal move tree of pos to depth.
// Annotation is skipped throughout.
func Perft(g *Generator, pos board.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var nodes uint64
	_ = g.walk(pos, false, nil, func(p *Ply) bool {
		if depth == 1 {
			nodes++
		} else {
			nodes += Perft(g, p.Next(), depth-1)
		}
		return true
	})
	return nodes
}

// Divide returns the perft count below each root ply, keyed by its UCI text.
func Divide(g *Generator, pos board.Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	_ = g.walk(pos, false, nil, func(p *Ply) bool {
		out[p.String()] += Perft(g, p.Next(), depth-1)
		return true
	})
	return out
}
