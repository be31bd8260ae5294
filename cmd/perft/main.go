package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/slices"

	"chess-ply/board"
	"chess-ply/config"
	"chess-ply/ply"
)

func main() {
	fen := flag.String("fen", "", "FEN string (defaults to the configured position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	crosscheck := flag.Bool("crosscheck", false, "Compare counts and root moves against reference generators")
	cfgPath := flag.String("config", "", "YAML configuration file")
	verbose := flag.Bool("v", false, "Debug logging")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
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
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}
	if *fen != "" {
		cfg.FEN = *fen
	}
	pos, err := cfg.Position()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}
	g := ply.New(ply.WithoutAnnotation(), ply.WithLogger(logger))

	if *crosscheck {
		if !crossCheck(logger, g, pos, *depth) {
			os.Exit(1)
		}
		return
	}

	if *divide {
		div := ply.Divide(g, pos, *depth)
		moves := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			moves = append(moves, m)
			sum += n
		}
		slices.Sort(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += ply.Perft(g, pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
	logger.Debug("perft done", "fen", pos.ToFEN(), "depth", *depth, "repeat", *repeat)
}

// rootMoves lists the UCI text of every legal root ply, sorted.
func rootMoves(g *ply.Generator, pos *board.Board) []string {
	plies, err := g.Enumerate(pos)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(plies))
	for _, p := range plies {
		out = append(out, p.String())
	}
	slices.Sort(out)
	return out
}
