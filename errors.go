package san

import "errors"

var (
	// ErrInvalidSyntax is returned when a token is not SAN.
	ErrInvalidSyntax = errors.New("san: invalid move syntax")
	// ErrIllegalMove is returned by rules engines when a syntactically valid
	// token cannot be played in the current position.
	ErrIllegalMove = errors.New("san: illegal move")
	// ErrContractViolation marks a broken invariant between the session and
	// the ledger, such as deciding a black slot twice or a recorded move that
	// no longer replays. Callers are not expected to continue past it.
	ErrContractViolation = errors.New("san: contract violation")
	// ErrNoMoveText is returned when imported text holds no moves.
	ErrNoMoveText = errors.New("san: no move text found")
)
