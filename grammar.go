package san

import (
	"fmt"
	"regexp"
)

// Building blocks of the SAN surface grammar. Files are lowercase and piece
// letters uppercase; nothing here knows about a board.
const (
	fileClass    = `[a-h]`
	rankClass    = `[1-8]`
	pieceClass   = `[KQRBN]`
	officerClass = `[QRBN]`

	squarePattern    = fileClass + rankClass
	disambigPattern  = `(?:` + squarePattern + `|` + fileClass + `|` + rankClass + `)`
	promotionPattern = `=` + pieceClass
	checkPattern     = `[+#]`

	castlePattern = `O-O-O|O-O`

	suffixPattern = `(?:` + promotionPattern + `)?(?:` + checkPattern + `)?`

	// The king is never ambiguous, so only the other pieces take a
	// disambiguation prefix. This is what keeps "Ke4e5" out.
	pieceMovePattern = `(?:K|` + officerClass + disambigPattern + `?)x?` + squarePattern + suffixPattern
	pawnCapPattern   = fileClass + `x` + squarePattern + suffixPattern
	pawnAdvPattern   = squarePattern + suffixPattern
)

// sanPattern matches one whole SAN token. Castling is tried first; the
// remaining alternatives are structurally disjoint.
var sanPattern = regexp.MustCompile(
	`^(?:` + castlePattern + `|` + pieceMovePattern + `|` + pawnCapPattern + `|` + pawnAdvPattern + `)$`,
)

// Validate reports whether candidate is syntactically a SAN move.
// It only checks surface syntax, not whether the move is legal in any
// position, so "Qh4" is accepted without asking where the queen stands.
//
// Examples of accepted tokens: "e4", "Nf3", "Bxc6", "O-O-O", "exd5",
// "e8=Q", "Qh4+", "Rxf7#", "Nbd7", "R1a3".
func Validate(candidate string) bool {
	return sanPattern.MatchString(candidate)
}

// CheckSyntax is Validate for callers that prefer an error value.
// The returned error wraps ErrInvalidSyntax.
func CheckSyntax(candidate string) error {
	if !Validate(candidate) {
		return fmt.Errorf("%w: %q", ErrInvalidSyntax, candidate)
	}
	return nil
}
