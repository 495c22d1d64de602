// Package notnil plays moves on github.com/notnil/chess boards.
package notnil

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/mway1/san"
)

// Name is the configuration name of this engine.
const Name = "notnil"

// Engine hands out boards backed by chess.Game.
type Engine struct{}

// New returns the engine.
func New() *Engine {
	return &Engine{}
}

// Name implements san.Engine.
func (e *Engine) Name() string {
	return Name
}

// NewBoard implements san.Engine.
func (e *Engine) NewBoard() san.Board {
	return &board{game: chess.NewGame()}
}

type board struct {
	game *chess.Game
}

func (b *board) Resolve(token string) (san.Resolution, error) {
	pos := b.game.Position()
	move, err := chess.AlgebraicNotation{}.Decode(pos, token)
	if err != nil {
		return san.Resolution{}, fmt.Errorf("%w: %s: %v", san.ErrIllegalMove, token, err)
	}

	piece := pos.Board().Piece(move.S1())
	return san.Resolution{
		Token: token,
		Piece: strings.ToUpper(piece.Type().String()),
		From:  move.S1().String(),
		To:    move.S2().String(),
		Move:  move,
	}, nil
}

func (b *board) Apply(r san.Resolution) error {
	move, ok := r.Move.(*chess.Move)
	if !ok {
		return fmt.Errorf("%w: %s was not resolved by %s", san.ErrIllegalMove, r.Token, Name)
	}
	if err := b.game.Move(move); err != nil {
		return fmt.Errorf("%w: %s: %v", san.ErrIllegalMove, r.Token, err)
	}
	return nil
}

func (b *board) IsCheckmate() bool {
	return b.game.Method() == chess.Checkmate
}

func (b *board) PieceAt(square string) string {
	file, rank, ok := san.ParseSquare(square)
	if !ok {
		return ""
	}
	piece := b.game.Position().Board().Piece(chess.Square(rank*8 + file))
	if piece == chess.NoPiece {
		return ""
	}
	letter := piece.Type().String()
	if piece.Color() == chess.White {
		return strings.ToUpper(letter)
	}
	return letter
}

func (b *board) FEN() string {
	return b.game.FEN()
}
