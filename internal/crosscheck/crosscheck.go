// Package crosscheck replays PGN text with a second, independent PGN parser
// and compares the resulting position with the one a rules engine reached.
package crosscheck

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/freeeve/pgn.v1"

	"github.com/mway1/san"
)

var (
	ErrNoGame   = errors.New("crosscheck: no game in text")
	ErrMismatch = errors.New("crosscheck: positions differ")
)

// Placement returns the piece placement field of the FEN reached after the
// last move of the first game in text.
func Placement(text string) (string, error) {
	ps := pgn.NewPGNScanner(strings.NewReader(text))
	if !ps.Next() {
		return "", ErrNoGame
	}
	game, err := ps.Scan()
	if err != nil {
		return "", fmt.Errorf("crosscheck: %w", err)
	}

	b := pgn.NewBoard()
	for i, move := range game.Moves {
		if err := b.MakeMove(move); err != nil {
			return "", fmt.Errorf("crosscheck: ply %d: %w", i+1, err)
		}
	}
	return placement(b.String()), nil
}

// Agree reports whether text ends in the position held by b.
func Agree(text string, b san.Board) error {
	want, err := Placement(text)
	if err != nil {
		return err
	}
	if got := placement(b.FEN()); got != want {
		return fmt.Errorf("%w: engine has %s, pgn has %s", ErrMismatch, got, want)
	}
	return nil
}

func placement(fen string) string {
	field, _, _ := strings.Cut(strings.TrimSpace(fen), " ")
	return field
}
