package san

// An Engine is the chess rules collaborator. The package never decides
// legality itself; it asks boards produced by an Engine.
type Engine interface {
	// Name identifies the engine in logs and archived records.
	Name() string
	// NewBoard returns an independent board in the standard starting
	// position.
	NewBoard() Board
}

// A Board is a mutable game position owned by one caller.
type Board interface {
	// Resolve parses token against the position and reports the moving
	// piece and its squares. Tokens that cannot be played fail with an
	// error wrapping ErrIllegalMove.
	Resolve(token string) (Resolution, error)
	// Apply plays a move previously returned by Resolve on this board.
	Apply(r Resolution) error
	// IsCheckmate reports whether the side to move is checkmated.
	IsCheckmate() bool
	// PieceAt returns the FEN letter of the piece on square ("P" for a
	// white pawn, "k" for the black king) or "" when the square is empty.
	PieceAt(square string) string
	// FEN returns the position in Forsyth-Edwards Notation.
	FEN() string
}

// A Resolution is a token resolved against a position.
type Resolution struct {
	// Token is the SAN text that was resolved.
	Token string
	// Piece is the uppercase letter of the moving piece: P, N, B, R, Q or K.
	Piece string
	// From and To are square names such as "e2" and "e4".
	From string
	To   string

	// Move is the engine's own representation, handed back to Apply.
	Move any
}
