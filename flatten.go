package san

import (
	"fmt"
	"strings"
)

// A FlattenedMove is one ply of a replayed game.
type FlattenedMove struct {
	// Seq is the 1-based ply number.
	Seq   int    `json:"seq"`
	Piece string `json:"piece"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// String returns the move as piece, origin and destination, e.g. "Pe2 e4".
func (m FlattenedMove) String() string {
	return m.Piece + m.From + " " + m.To
}

// Flatten replays the ledger on a fresh board from engine and returns every
// ply with its piece and squares. The live session board is never touched.
//
// Recorded moves were accepted by the same engine during play, so a move
// that fails to replay means the ledger and the session disagree; the
// returned error then wraps ErrContractViolation.
//
// Example:
//
//	moves, err := Flatten(ledger, engine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(FormatFlattened(moves)) // 1. Pe2 e4  2. Pe7 e5
func Flatten(l *Ledger, engine Engine) ([]FlattenedMove, error) {
	_, moves, err := replay(l, engine)
	return moves, err
}

// Replay is Flatten for callers that also need the board in its final
// position. Failures wrap ErrContractViolation like Flatten.
//
// Example:
//
//	final, moves, err := Replay(ledger, engine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(final.FEN(), len(moves))
func Replay(l *Ledger, engine Engine) (Board, []FlattenedMove, error) {
	return replay(l, engine)
}

func replay(l *Ledger, engine Engine) (Board, []FlattenedMove, error) {
	board := engine.NewBoard()
	moves := make([]FlattenedMove, 0, l.Plies())

	play := func(t Turn, token string) error {
		r, err := board.Resolve(token)
		if err != nil {
			return fmt.Errorf("%w: turn %d move %q does not replay: %v", ErrContractViolation, t.Index, token, err)
		}
		moves = append(moves, FlattenedMove{
			Seq:   len(moves) + 1,
			Piece: r.Piece,
			From:  r.From,
			To:    r.To,
		})
		if err := board.Apply(r); err != nil {
			return fmt.Errorf("%w: turn %d move %q cannot be applied: %v", ErrContractViolation, t.Index, token, err)
		}
		return nil
	}

	for _, t := range l.turns {
		if err := play(t, t.White); err != nil {
			return nil, nil, err
		}
		if t.HasBlack() {
			if err := play(t, t.Black); err != nil {
				return nil, nil, err
			}
		}
	}
	return board, moves, nil
}

// FormatFlattened renders moves as "1. Pe2 e4  2. Pe7 e5".
func FormatFlattened(moves []FlattenedMove) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = fmt.Sprintf("%d. %s", m.Seq, m)
	}
	return strings.Join(parts, "  ")
}
