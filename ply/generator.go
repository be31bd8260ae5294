package ply

import (
	"log/slog"

	"chess-ply/board"
)

var log = slog.Default().With("package", "ply")

// Generator enumerates, validates and annotates plies. The zero value promotes
// to a queen and does not annotate; New turns annotation on. A Generator holds
// no per-call state and may be shared by goroutines as long as its chooser is
// safe for concurrent use.
type Generator struct {
	chooser  PromotionChooser
	log      *slog.Logger
	annotate bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithChooser sets the strategy asked for a promotion piece when a proposed
// move reaches the last rank without one.
func WithChooser(c PromotionChooser) Option {
	return func(g *Generator) {
		if c != nil {
			g.chooser = c
		}
	}
}

// WithLogger replaces the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithoutAnnotation turns off check, checkmate and stalemate tagging for
// every ply the generator produces.
func WithoutAnnotation() Option {
	return func(g *Generator) { g.annotate = false }
}

// New returns a Generator that promotes to a queen unless told otherwise.
func New(opts ...Option) *Generator {
	g := &Generator{
		chooser:  Fixed(board.PieceTypeQueen),
		log:      log,
		annotate: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) promotionChooser() PromotionChooser {
	if g.chooser == nil {
		return Fixed(board.PieceTypeQueen)
	}
	return g.chooser
}

func (g *Generator) logger() *slog.Logger {
	if g.log == nil {
		return log
	}
	return g.log
}
