// Package enginetest provides a scripted san.Engine for tests. Its boards
// know only the moves in their script and track where pieces stand so that
// replays are checked against the position.
package enginetest

import (
	"fmt"
	"strings"

	"github.com/mway1/san"
)

// Move is the scripted outcome of resolving a token.
type Move struct {
	Piece string
	From  string
	To    string
	Mate  bool
}

// Script maps SAN tokens to moves. Tokens must be unique across both sides.
type Script map[string]Move

// Openings covers the games used throughout the tests.
var Openings = Script{
	"e4":    {Piece: "P", From: "e2", To: "e4"},
	"e5":    {Piece: "P", From: "e7", To: "e5"},
	"d4":    {Piece: "P", From: "d2", To: "d4"},
	"d5":    {Piece: "P", From: "d7", To: "d5"},
	"f3":    {Piece: "P", From: "f2", To: "f3"},
	"g4":    {Piece: "P", From: "g2", To: "g4"},
	"a6":    {Piece: "P", From: "a7", To: "a6"},
	"Nf3":   {Piece: "N", From: "g1", To: "f3"},
	"Nc6":   {Piece: "N", From: "b8", To: "c6"},
	"Nf6":   {Piece: "N", From: "g8", To: "f6"},
	"Bb5":   {Piece: "B", From: "f1", To: "b5"},
	"Bc4":   {Piece: "B", From: "f1", To: "c4"},
	"Ba4":   {Piece: "B", From: "b5", To: "a4"},
	"Qh5":   {Piece: "Q", From: "d1", To: "h5"},
	"Qxf7#": {Piece: "Q", From: "h5", To: "f7", Mate: true},
	"Qh4#":  {Piece: "Q", From: "d8", To: "h4", Mate: true},
	"Qh4":   {Piece: "Q", From: "d8", To: "h4"},
}

// Engine is a san.Engine driven by a Script.
type Engine struct {
	Script Script
	// Boards counts the boards handed out.
	Boards int

	forget string
}

// New returns an engine for script.
func New(script Script) *Engine {
	return &Engine{Script: script}
}

// Name implements san.Engine.
func (e *Engine) Name() string {
	return "scripted"
}

// NewBoard implements san.Engine.
func (e *Engine) NewBoard() san.Board {
	script := e.Script
	if e.forget != "" && e.Boards > 0 {
		script = make(Script, len(e.Script))
		for token, m := range e.Script {
			if token != e.forget {
				script[token] = m
			}
		}
	}
	e.Boards++
	return &Board{script: script, pieces: startingPieces()}
}

// Forget makes every board after the first one unable to resolve token, so
// a replay disagrees with the game played on the first board.
func (e *Engine) Forget(token string) *Engine {
	e.forget = token
	return e
}

// Board is a scripted position.
type Board struct {
	script Script
	pieces map[string]string
	mated  bool
}

// Resolve looks token up in the script and checks the piece on its origin.
func (b *Board) Resolve(token string) (san.Resolution, error) {
	m, ok := b.script[token]
	if !ok {
		return san.Resolution{}, fmt.Errorf("%w: %s is not scripted", san.ErrIllegalMove, token)
	}
	if strings.ToUpper(b.pieces[m.From]) != m.Piece {
		return san.Resolution{}, fmt.Errorf("%w: no %s on %s", san.ErrIllegalMove, m.Piece, m.From)
	}
	return san.Resolution{Token: token, Piece: m.Piece, From: m.From, To: m.To, Move: m}, nil
}

func (b *Board) Apply(r san.Resolution) error {
	m, ok := r.Move.(Move)
	if !ok {
		return fmt.Errorf("%w: foreign resolution for %s", san.ErrIllegalMove, r.Token)
	}
	b.pieces[m.To] = b.pieces[m.From]
	delete(b.pieces, m.From)
	b.mated = m.Mate
	return nil
}

func (b *Board) IsCheckmate() bool {
	return b.mated
}

func (b *Board) PieceAt(square string) string {
	return b.pieces[square]
}

func (b *Board) FEN() string {
	return "scripted"
}

func startingPieces() map[string]string {
	pieces := make(map[string]string, 32)
	back := "RNBQKBNR"
	for file := 0; file < 8; file++ {
		pieces[san.SquareName(file, 0)] = string(back[file])
		pieces[san.SquareName(file, 1)] = "P"
		pieces[san.SquareName(file, 6)] = "p"
		pieces[san.SquareName(file, 7)] = strings.ToLower(string(back[file]))
	}
	return pieces
}
