// Package config loads the YAML settings shared by the command line tools.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"chess-ply/board"
	"chess-ply/ply"
)

// PromptAnswer in a promotion field asks on the terminal instead of using a fixed piece.
const PromptAnswer = "prompt"

type Config struct {
	// FEN is the starting position; "startpos" or empty means the initial position.
	FEN      string    `yaml:"fen"`
	LogLevel string    `yaml:"log_level"`
	Promote  Promotion `yaml:"promotion"`
}

// Promotion is the default-selection policy for promotions the move did not name.
type Promotion struct {
	// OnTurn answers for the side to move, OutOfTurn for pre-supplied moves
	// of the other side.
	OnTurn    string `yaml:"on_turn"`
	OutOfTurn string `yaml:"out_of_turn"`
}

func Default() *Config {
	return &Config{
		FEN:      "startpos",
		LogLevel: "info",
		Promote: Promotion{
			OnTurn:    "q",
			OutOfTurn: "n",
		},
	}
}

// Load reads the file at filename over the defaults. An empty filename
// returns the defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("'%s': %v", filename, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	return cfg, nil
}

// Validate checks the position, log level and promotion answers.
func (c *Config) Validate() error {
	if _, err := c.Position(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	for _, v := range []string{c.Promote.OnTurn, c.Promote.OutOfTurn} {
		if v == PromptAnswer {
			continue
		}
		pt, err := board.ParsePieceType(v)
		if err != nil || !pt.Promotable() {
			return fmt.Errorf("promotion piece %q must be one of q, r, b, n or %q", v, PromptAnswer)
		}
	}
	return nil
}

// Position parses FEN.
func (c *Config) Position() (*board.Board, error) {
	if c.FEN == "" || c.FEN == "startpos" {
		return board.ParseFEN(board.FENStartPos)
	}
	return board.ParseFEN(c.FEN)
}

// Level converts LogLevel for slog.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Chooser builds the promotion policy; "prompt" answers read from in and ask on out.
func (c *Config) Chooser(in *bufio.Scanner, out io.Writer) (ply.PromotionChooser, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	pick := func(v string) ply.PromotionChooser {
		if v == PromptAnswer {
			return &ply.Prompt{In: in, Out: out}
		}
		pt, _ := board.ParsePieceType(v)
		return ply.Fixed(pt)
	}
	return ply.Policy{OnTurn: pick(c.Promote.OnTurn), OutOfTurn: pick(c.Promote.OutOfTurn)}, nil
}

// Encode writes the configuration as YAML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
