/*
Package san records a chess game typed move by move in Standard Algebraic
Notation. It checks the surface syntax of each token, keeps the turns in a
ledger, draws the ledger as a variation tree and flattens it into a list of
piece moves by replaying it on a rules engine.

Legality is never decided here: every position question goes to an Engine.

Example usage:

	ledger := san.NewLedger()
	if san.Validate("e4") {
	    ledger.Append("e4")
	}
	_ = ledger.SetLastBlack("e5")

	fmt.Print(san.RenderTree(ledger.Turns()))
	fmt.Println(san.PGN(ledger, nil, san.NoOutcome))
*/
package san

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress or ended without a result.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// TagPairs represents a collection of PGN tag pairs.
type TagPairs map[string]string

// A Game is a ledger read back from PGN text.
type Game struct {
	Tags    TagPairs
	Ledger  *Ledger
	Outcome Outcome
}

// PGN returns the ledger as PGN text: the tag pairs, a blank line when there
// are any, and the move text followed by the outcome.
//
// Example:
//
//	fmt.Println(PGN(ledger, TagPairs{"Event": "Casual"}, WhiteWon))
//	// [Event "Casual"]
//	//
//	// 1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0
func PGN(l *Ledger, tags TagPairs, outcome Outcome) string {
	var sb strings.Builder

	tagPairList := make([]sortableTagPair, 0, len(tags))
	for tag, value := range tags {
		tagPairList = append(tagPairList, sortableTagPair{Key: tag, Value: value})
	}
	slices.SortFunc(tagPairList, cmpTags)

	for _, tagPair := range tagPairList {
		sb.WriteString(fmt.Sprintf("[%s \"%s\"]\n", tagPair.Key, tagPair.Value))
	}
	if len(tagPairList) > 0 {
		sb.WriteString("\n")
	}

	if moveText := l.MoveText(); moveText != "" {
		sb.WriteString(moveText)
		sb.WriteString(" ")
	}
	if outcome == "" {
		outcome = NoOutcome
	}
	sb.WriteString(outcome.String())
	return sb.String()
}

type sortableTagPair struct {
	Key   string
	Value string
}

// cmpTags puts the seven tag roster first and the rest in key order.
func cmpTags(a, b sortableTagPair) int {
	if a.Key == b.Key {
		return 0
	}

	for _, req := range []string{
		"Event",
		"Site",
		"Date",
		"Round",
		"White",
		"Black",
		"Result",
	} {
		if a.Key == req {
			return -1
		}
		if b.Key == req {
			return +1
		}
	}

	return strings.Compare(a.Key, b.Key)
}

// ParserError describes where PGN text stopped making sense.
type ParserError struct {
	Message  string
	Token    string
	Position int
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("san: %s at token %d (%q)", e.Message, e.Position, e.Token)
}

// ParseMoveText reads PGN text back into a ledger. Tag pair lines and brace
// comments are accepted, move numbers ("3." or "3...") place the following
// move, and a trailing result token sets the outcome. Every move must pass
// Validate; variations and annotation glyphs are not supported.
//
// A white move that is directly followed by the next move number leaves
// black skipped, which is how MoveText writes skipped replies.
//
// Example:
//
//	g, err := ParseMoveText("1. e4 e5 2. Nf3 *")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(g.Ledger.Len()) // 2
func ParseMoveText(text string) (*Game, error) {
	p := &parser{
		game: &Game{
			Tags:    make(TagPairs),
			Ledger:  NewLedger(),
			Outcome: NoOutcome,
		},
	}

	body, err := p.parseHeader(text)
	if err != nil {
		return nil, err
	}
	p.tokens = tokenizeMoveText(body)

	if err := p.parseMoveText(); err != nil {
		return nil, err
	}
	if p.game.Ledger.Len() == 0 {
		return nil, ErrNoMoveText
	}
	return p.game, nil
}

// parser holds the state needed while reading move text.
type parser struct {
	game     *Game
	tokens   []string
	position int
	// blackNext is set after "N..." and after a white move.
	blackNext bool
}

// parseHeader consumes the leading tag pair lines and returns the rest.
func (p *parser) parseHeader(text string) (string, error) {
	lines := strings.Split(text, "\n")
	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "[") {
			break
		}
		key, value, err := parseTagPair(line)
		if err != nil {
			return "", err
		}
		p.game.Tags[key] = value
	}
	return strings.Join(lines[i:], "\n"), nil
}

func parseTagPair(line string) (string, string, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
	key, rest, ok := strings.Cut(inner, " ")
	if !ok || !strings.HasSuffix(line, "]") {
		return "", "", &ParserError{Message: "malformed tag pair", Token: line}
	}
	value, err := strconv.Unquote(strings.TrimSpace(rest))
	if err != nil {
		return "", "", &ParserError{Message: "malformed tag value", Token: line}
	}
	return key, value, nil
}

func (p *parser) parseMoveText() error {
	for ; p.position < len(p.tokens); p.position++ {
		tok := p.tokens[p.position]

		switch {
		case isResult(tok):
			p.game.Outcome = Outcome(tok)
			if p.position != len(p.tokens)-1 {
				return &ParserError{Message: "moves after result", Token: tok, Position: p.position}
			}

		case isMoveNumber(tok):
			number, ellipsis := splitMoveNumber(tok)
			if err := p.checkMoveNumber(tok, number, ellipsis); err != nil {
				return err
			}
			p.blackNext = ellipsis

		default:
			if !Validate(tok) {
				return &ParserError{Message: "invalid move", Token: tok, Position: p.position}
			}
			p.addMove(tok)
		}
	}
	return nil
}

func (p *parser) checkMoveNumber(tok string, number int, ellipsis bool) error {
	want := p.game.Ledger.Len() + 1
	if ellipsis {
		want = p.game.Ledger.Len()
	}
	if number != want {
		return &ParserError{Message: "unexpected move number", Token: tok, Position: p.position}
	}
	return nil
}

func (p *parser) addMove(tok string) {
	last, ok := p.game.Ledger.Last()
	if ok && last.Pending() && p.blackNext {
		_ = p.game.Ledger.SetLastBlack(tok)
		p.blackNext = false
		return
	}
	p.game.Ledger.Append(tok)
	p.blackNext = true
}

// tokenizeMoveText splits move text on white space and drops brace comments.
// Move numbers stuck to their move ("1.e4") are split apart.
func tokenizeMoveText(text string) []string {
	var tokens []string
	depth := 0
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, splitNumberPrefix(cur.String())...)
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == '{':
			flush()
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func splitNumberPrefix(tok string) []string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 || i == len(tok) || tok[i] != '.' {
		return []string{tok}
	}
	j := i
	for j < len(tok) && tok[j] == '.' {
		j++
	}
	if j == len(tok) {
		return []string{tok}
	}
	return []string{tok[:j], tok[j:]}
}

func isResult(tok string) bool {
	switch Outcome(tok) {
	case NoOutcome, WhiteWon, BlackWon, Draw:
		return true
	}
	return false
}

func isMoveNumber(tok string) bool {
	number, _ := splitMoveNumber(tok)
	return number > 0
}

// splitMoveNumber parses "12." and "12..." tokens; number is 0 otherwise.
func splitMoveNumber(tok string) (number int, ellipsis bool) {
	digits := strings.TrimRight(tok, ".")
	dots := len(tok) - len(digits)
	if dots != 1 && dots != 3 {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, dots == 3
}
