package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/exp/slices"

	"chess-ply/board"
	"chess-ply/config"
	"chess-ply/ply"
)

func main() {
	cfgPath := flag.String("config", "", "YAML configuration file")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scanner := bufio.NewScanner(os.Stdin)
	sh, err := newShell(cfg, scanner, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	sh.loop()
}

// shell is a line-oriented front end over one position and the ply that led
// to it. Promotion prompts read from the same scanner as commands.
type shell struct {
	in  *bufio.Scanner
	out io.Writer
	g   *ply.Generator
	log *slog.Logger

	pos  board.Position
	last *ply.Ply
	prev *ply.Ply
}

func newShell(cfg *config.Config, in *bufio.Scanner, out io.Writer) (*shell, error) {
	chooser, err := cfg.Chooser(in, out)
	if err != nil {
		return nil, err
	}
	pos, err := cfg.Position()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("package", "plyshell")
	return &shell{
		in:  in,
		out: out,
		g:   ply.New(ply.WithChooser(chooser), ply.WithLogger(logger)),
		log: logger,
		pos: pos,
	}, nil
}

func (s *shell) loop() {
	for s.in.Scan() {
		if !s.handle(s.in.Text()) {
			return
		}
	}
}

// handle runs one command line and reports whether the shell keeps going.
func (s *shell) handle(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 { // ignore blank lines
		return true
	}
	switch strings.ToLower(tokens[0]) {
	case "quit":
		return false
	case "position":
		s.position(tokens[1:])
	case "legal":
		s.legal(tokens[1:])
	case "move":
		if len(tokens) != 2 {
			fmt.Fprintln(s.out, "usage: move <uci>")
			return true
		}
		s.move(tokens[1])
	case "status":
		s.status()
	case "resign":
		if s.over() {
			fmt.Fprintln(s.out, "game over")
			return true
		}
		s.push(ply.NewStatus(s.pos, ply.Flag(ply.Resign)))
		fmt.Fprintf(s.out, "%s resigns\n", s.pos.SideToMove())
	case "fen":
		fmt.Fprintln(s.out, s.pos.FEN())
	default:
		fmt.Fprintln(s.out, "unknown command:", line)
	}
	return true
}

func (s *shell) position(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "malformed position command")
		return
	}
	var pos board.Position
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos = board.MustParseFEN(board.FENStartPos)
	case "fen":
		i := slices.Index(rest, "moves")
		if i < 0 {
			i = len(rest)
		}
		b, err := board.ParseFEN(strings.Join(rest[:i], " "))
		if err != nil {
			fmt.Fprintln(s.out, "invalid fen position:", err)
			return
		}
		pos, rest = b, rest[i:]
	default:
		fmt.Fprintln(s.out, "invalid position subcommand")
		return
	}
	s.pos, s.last, s.prev = pos, nil, nil
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, m := range rest[1:] {
		if !s.move(m) {
			return
		}
	}
}

func (s *shell) legal(args []string) {
	var cs []ply.Constraint
	if len(args) > 0 {
		sq, err := board.ParseSquare(strings.ToLower(args[0]))
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		cs = append(cs, ply.From(sq))
	}
	plies, err := s.g.Enumerate(s.pos, cs...)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	lines := make([]string, 0, len(plies))
	for _, p := range plies {
		lines = append(lines, describe(p))
	}
	slices.Sort(lines)
	for _, l := range lines {
		fmt.Fprintln(s.out, l)
	}
	fmt.Fprintf(s.out, "%d legal\n", len(plies))
}

func (s *shell) move(uci string) bool {
	if s.over() {
		fmt.Fprintln(s.out, "game over")
		return false
	}
	p, err := s.g.ParseMove(s.pos, strings.ToLower(uci))
	switch {
	case errors.Is(err, ply.ErrIllegalMove):
		fmt.Fprintf(s.out, "illegal move %s\n", uci)
		return false
	case err != nil:
		s.log.Error("move failed", "move", uci, "err", err)
		fmt.Fprintln(s.out, err)
		return false
	}
	s.push(p)
	fmt.Fprintln(s.out, describe(p))
	return true
}

func (s *shell) push(p *ply.Ply) {
	s.prev, s.last = s.last, p
	s.pos = p.Next()
}

func (s *shell) over() bool {
	return s.last != nil && s.last.IsFinal(s.prev)
}

func (s *shell) status() {
	fmt.Fprintf(s.out, "%s to move\n", s.pos.SideToMove())
	if s.last != nil {
		notes := make([]string, 0, 2)
		for _, a := range s.last.Annotations() {
			notes = append(notes, a.String())
		}
		fmt.Fprintf(s.out, "last: %s [%s]\n", s.last, strings.Join(notes, " "))
	}
	if s.over() {
		fmt.Fprintln(s.out, "game over")
	}
}

// describe renders a ply with its annotations, e.g. "e1g1 castle".
func describe(p *ply.Ply) string {
	parts := []string{p.String()}
	for _, a := range p.Annotations() {
		if a.Keyword == ply.Promote {
			continue
		}
		parts = append(parts, a.Keyword.String())
	}
	return strings.Join(parts, " ")
}
