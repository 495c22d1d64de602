package san

import (
	"fmt"
	"strings"
)

// blackState tracks the one-time decision about a turn's black slot.
type blackState uint8

const (
	blackPending blackState = iota
	blackPlayed
	blackSkipped
)

// A Turn is one white ply optionally paired with the following black ply.
type Turn struct {
	// Index is the 1-based turn number.
	Index int
	// White is always present once the turn exists.
	White string
	// Black is the black reply. It is empty when the slot is still pending
	// or was skipped; use HasBlack and Pending to tell them apart.
	Black string

	state blackState
}

// HasBlack reports whether black played a move in this turn.
func (t Turn) HasBlack() bool {
	return t.state == blackPlayed
}

// Pending reports whether the black slot is still undecided.
func (t Turn) Pending() bool {
	return t.state == blackPending
}

// Skipped reports whether black's move was deliberately left out.
func (t Turn) Skipped() bool {
	return t.state == blackSkipped
}

// Plies returns the number of moves recorded in the turn.
func (t Turn) Plies() int {
	if t.HasBlack() {
		return 2
	}
	return 1
}

// A Ledger is the ordered record of turns played in a session.
// It is append/amend-only: turns are appended with white set and black
// pending, and the black slot of the last turn is decided exactly once.
// Only the last turn may be pending.
//
// Example:
//
//	l := NewLedger()
//	l.Append("e4")
//	if err := l.SetLastBlack("e5"); err != nil {
//	    log.Fatal(err)
//	}
//	l.Append("Nf3")
//	fmt.Println(l.MoveText()) // 1. e4 e5 2. Nf3
type Ledger struct {
	turns []Turn
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a new turn with white set and black pending and returns it.
// The token is not validated again. A previous turn that is still pending is
// finalized as skipped.
func (l *Ledger) Append(white string) Turn {
	if n := len(l.turns); n > 0 && l.turns[n-1].Pending() {
		l.turns[n-1].state = blackSkipped
	}
	t := Turn{
		Index: len(l.turns) + 1,
		White: white,
		state: blackPending,
	}
	l.turns = append(l.turns, t)
	return t
}

// SetLastBlack records black's reply in the last turn. An empty reply means
// black is absent and is recorded as SkipLastBlack would.
// It fails with ErrContractViolation when the ledger is empty or the slot was
// already decided; the stored move is never overwritten.
func (l *Ledger) SetLastBlack(black string) error {
	if black == "" {
		return l.SkipLastBlack()
	}
	t, err := l.pendingLast()
	if err != nil {
		return err
	}
	t.Black = black
	t.state = blackPlayed
	return nil
}

// SkipLastBlack finalizes the last turn without a black move.
// It fails like SetLastBlack.
func (l *Ledger) SkipLastBlack() error {
	t, err := l.pendingLast()
	if err != nil {
		return err
	}
	t.state = blackSkipped
	return nil
}

func (l *Ledger) pendingLast() (*Turn, error) {
	if len(l.turns) == 0 {
		return nil, fmt.Errorf("%w: no turn to complete", ErrContractViolation)
	}
	t := &l.turns[len(l.turns)-1]
	if !t.Pending() {
		return nil, fmt.Errorf("%w: black of turn %d already decided", ErrContractViolation, t.Index)
	}
	return t, nil
}

// Turns returns the recorded turns in play order.
// The slice is a copy; changing it does not affect the ledger.
func (l *Ledger) Turns() []Turn {
	turns := make([]Turn, len(l.turns))
	copy(turns, l.turns)
	return turns
}

// Len returns the number of turns.
func (l *Ledger) Len() int {
	return len(l.turns)
}

// Last returns the most recent turn and false if the ledger is empty.
func (l *Ledger) Last() (Turn, bool) {
	if len(l.turns) == 0 {
		return Turn{}, false
	}
	return l.turns[len(l.turns)-1], true
}

// Plies returns the number of individual moves recorded.
func (l *Ledger) Plies() int {
	n := 0
	for _, t := range l.turns {
		n += t.Plies()
	}
	return n
}

// MoveText renders the turns as numbered move text, e.g. "1. e4 e5 2. Nf3".
func (l *Ledger) MoveText() string {
	parts := make([]string, 0, len(l.turns))
	for _, t := range l.turns {
		if t.HasBlack() {
			parts = append(parts, fmt.Sprintf("%d. %s %s", t.Index, t.White, t.Black))
		} else {
			parts = append(parts, fmt.Sprintf("%d. %s", t.Index, t.White))
		}
	}
	return strings.Join(parts, " ")
}
