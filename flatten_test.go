package san_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/enginetest"
)

func TestFlatten(t *testing.T) {
	l := san.NewLedger()
	l.Append("e4")
	require.NoError(t, l.SetLastBlack("e5"))

	moves, err := san.Flatten(l, enginetest.New(enginetest.Openings))
	require.NoError(t, err)
	assert.Equal(t, []san.FlattenedMove{
		{Seq: 1, Piece: "P", From: "e2", To: "e4"},
		{Seq: 2, Piece: "P", From: "e7", To: "e5"},
	}, moves)
}

func TestFlattenSkipsMissingBlack(t *testing.T) {
	l := san.NewLedger()
	l.Append("e4")
	require.NoError(t, l.SkipLastBlack())
	l.Append("d4")

	moves, err := san.Flatten(l, enginetest.New(enginetest.Openings))
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "Pe2 e4", moves[0].String())
	assert.Equal(t, "Pd2 d4", moves[1].String())
	assert.Equal(t, 2, moves[1].Seq)
}

func TestFlattenScholarsMate(t *testing.T) {
	l := san.NewLedger()
	for _, pair := range [][2]string{{"e4", "e5"}, {"Qh5", "Nc6"}, {"Bc4", "Nf6"}} {
		l.Append(pair[0])
		require.NoError(t, l.SetLastBlack(pair[1]))
	}
	l.Append("Qxf7#")

	moves, err := san.Flatten(l, enginetest.New(enginetest.Openings))
	require.NoError(t, err)
	require.Len(t, moves, 7)
	assert.Equal(t, san.FlattenedMove{Seq: 7, Piece: "Q", From: "h5", To: "f7"}, moves[6])
}

func TestFlattenEmptyLedger(t *testing.T) {
	moves, err := san.Flatten(san.NewLedger(), enginetest.New(enginetest.Openings))
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestFlattenContractViolation(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
	}{
		{"unknown move", []string{"Nf3", "Kxh8"}},
		// Ba4 needs a bishop on b5.
		{"piece not on origin", []string{"Ba4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := san.NewLedger()
			l.Append(tt.moves[0])
			if len(tt.moves) > 1 {
				require.NoError(t, l.SetLastBlack(tt.moves[1]))
			}

			moves, err := san.Flatten(l, enginetest.New(enginetest.Openings))
			require.ErrorIs(t, err, san.ErrContractViolation)
			assert.Nil(t, moves)
		})
	}
}

func TestFlattenUsesFreshBoard(t *testing.T) {
	engine := enginetest.New(enginetest.Openings)
	l := san.NewLedger()
	l.Append("e4")

	first, err := san.Flatten(l, engine)
	require.NoError(t, err)
	second, err := san.Flatten(l, engine)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, engine.Boards)
}

func TestFormatFlattened(t *testing.T) {
	moves := []san.FlattenedMove{
		{Seq: 1, Piece: "P", From: "e2", To: "e4"},
		{Seq: 2, Piece: "P", From: "e7", To: "e5"},
	}
	assert.Equal(t, "1. Pe2 e4  2. Pe7 e5", san.FormatFlattened(moves))
	assert.Equal(t, "", san.FormatFlattened(nil))
}

func TestReplay(t *testing.T) {
	l := san.NewLedger()
	l.Append("e4")
	require.NoError(t, l.SetLastBlack("e5"))

	engine := enginetest.New(enginetest.Openings)
	b, moves, err := san.Replay(l, engine)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Boards)
	assert.Equal(t, "1. Pe2 e4  2. Pe7 e5", san.FormatFlattened(moves))
	assert.Equal(t, "P", b.PieceAt("e4"))
	assert.Equal(t, "p", b.PieceAt("e5"))
	assert.Equal(t, "", b.PieceAt("e2"))

	l.Append("Ba4")
	_, _, err = san.Replay(l, enginetest.New(enginetest.Openings))
	require.ErrorIs(t, err, san.ErrContractViolation)
}
