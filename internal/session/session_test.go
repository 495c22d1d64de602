package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/archive"
	"github.com/mway1/san/internal/enginetest"
	"github.com/mway1/san/internal/logger"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
}

func runSession(t *testing.T, input string, opts Options) (Result, string) {
	t.Helper()
	var out bytes.Buffer
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	c := New(enginetest.New(enginetest.Openings), NewScanner(strings.NewReader(input)), &out, logger.Nop(), opts)
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	return res, out.String()
}

func TestWhiteMates(t *testing.T) {
	res, out := runSession(t, "e4\ne5\nQh5\nNc6\nBc4\nNf6\nQxf7#\n", Options{})

	assert.Equal(t, san.WhiteWon, res.Outcome)
	assert.Equal(t, 7, res.Ledger.Plies())
	assert.Equal(t, "1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7#", res.Ledger.MoveText())
	assert.Contains(t, out, "¡Jaque mate detectado en movimiento de las Blancas ('Qxf7#')! Partida finalizada.")
	// No black prompt after the mate.
	assert.NotContains(t, out, "Turno 4 - Jugada de las Negras")
}

func TestBlackMates(t *testing.T) {
	res, out := runSession(t, "f3\ne5\ng4\nQh4#\n", Options{})

	assert.Equal(t, san.BlackWon, res.Outcome)
	assert.Equal(t, "1. f3 e5 2. g4 Qh4#", res.Ledger.MoveText())
	assert.Contains(t, out, "¡Jaque mate detectado en movimiento de las Negras ('Qh4#')! Partida finalizada.")
}

func TestPromptsAndBoard(t *testing.T) {
	_, out := runSession(t, "e4\n", Options{})

	assert.True(t, strings.HasPrefix(out, "Validación interactiva de una partida en SAN hasta jaque mate\n"))
	assert.Contains(t, out, "Tablero inicial:\n    a b c d e f g h\n")
	assert.Contains(t, out, "Turno 1 - Jugada de las Blancas: ")
	assert.Contains(t, out, "\n1. e4\n")
	assert.Contains(t, out, "Estado actual del tablero:\n")
	assert.Contains(t, out, "4 | . . . . P . . . |")
	assert.Contains(t, out, "Turno 1 - Jugada de las Negras: ")
}

func TestInvalidMovesAreRetried(t *testing.T) {
	input := strings.Join([]string{
		"e9",  // not SAN
		"",    // white may not skip
		"Nc3", // SAN but not playable here
		"e4",
		"Ke4e5", // not SAN
		"",      // black skips
		"d4",
	}, "\n") + "\n"

	res, out := runSession(t, input, Options{})

	assert.Equal(t, san.NoOutcome, res.Outcome)
	assert.Contains(t, out, "Jugada inválida para Blancas en el turno 1: 'e9'. Intenta de nuevo.\n")
	assert.Contains(t, out, "Jugada inválida para Blancas en el turno 1: ''. Intenta de nuevo.\n")
	assert.Contains(t, out, "Jugada inválida para Blancas en el turno 1: 'Nc3'. Intenta de nuevo.\n")
	assert.Contains(t, out, "Jugada inválida para Negras en el turno 1: 'Ke4e5'. Intenta de nuevo o presiona enter para omitir.\n")
	assert.Contains(t, out, "Turno 2 - Jugada de las Blancas: ")

	turns := res.Ledger.Turns()
	require.Len(t, turns, 2)
	assert.True(t, turns[0].Skipped())
	assert.Equal(t, "d4", turns[1].White)
	assert.True(t, turns[1].Pending())
}

func TestCommands(t *testing.T) {
	input := "e4\ne5\narbol\nResultado\npgn\ntablero\nayuda\nsalir\n"
	res, out := runSession(t, input, Options{})

	assert.Equal(t, san.NoOutcome, res.Outcome)
	assert.Equal(t, 1, res.Ledger.Len())
	assert.Contains(t, out, "Partida\n└── e4\n    └── e5\n")
	assert.Contains(t, out, "1. Pe2 e4  2. Pe7 e5\n")
	assert.Contains(t, out, "[Event \"Partida SAN\"]")
	assert.Contains(t, out, "1. e4 e5 *\n")
	assert.Contains(t, out, helpText)
	// Commands do not consume the turn.
	assert.Equal(t, 6, strings.Count(out, "Turno 2 - Jugada de las Blancas: "))
}

func TestEnglishCommands(t *testing.T) {
	for _, name := range []string{"tree", "result", "pgn", "board", "help", "quit", "ÁRBOL"} {
		_, ok := parseCommand(name)
		assert.True(t, ok, name)
	}
	for _, token := range []string{"e4", "Nf3", "O-O", "b8=Q"} {
		_, ok := parseCommand(token)
		assert.False(t, ok, token)
	}
}

func TestArchive(t *testing.T) {
	ctx := context.Background()
	store := archive.NewMemory()

	res, out := runSession(t, "f3\ne5\ng4\nQh4#\n", Options{Archive: store})
	require.NotEmpty(t, res.ArchiveID)
	assert.Contains(t, out, "Partida archivada con id "+res.ArchiveID)

	rec, err := store.Load(ctx, res.ArchiveID)
	require.NoError(t, err)
	assert.Equal(t, "scripted", rec.Engine)
	assert.Equal(t, san.BlackWon, rec.Outcome)
	assert.Equal(t, 4, rec.Plies)
	assert.Contains(t, rec.PGN, "[Result \"0-1\"]")
	assert.Contains(t, rec.PGN, "[Date \"2024.05.01\"]")

	g, err := rec.Game()
	require.NoError(t, err)
	assert.Equal(t, res.Ledger.Turns(), g.Ledger.Turns())
}

func TestArchiveSkipsEmptyGames(t *testing.T) {
	store := archive.NewMemory()
	res, _ := runSession(t, "quit\n", Options{Archive: store})
	assert.Empty(t, res.ArchiveID)

	list, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExports(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "board.svg")
	pdfPath := filepath.Join(dir, "sheet.pdf")

	_, out := runSession(t, "e4\ne5\nsvg\npdf\n", Options{SVGPath: svgPath, PDFPath: pdfPath})
	assert.Contains(t, out, "Guardado en "+svgPath)
	assert.Contains(t, out, "Guardado en "+pdfPath)

	svgData, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svgData), "<svg")

	pdfData, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfData, []byte("%PDF")))
}

func TestExportWithoutPath(t *testing.T) {
	_, out := runSession(t, "svg\n", Options{})
	assert.Contains(t, out, "No hay ruta configurada para exportar.")
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := New(enginetest.New(enginetest.Openings), NewScanner(strings.NewReader("e4\n")), &out, logger.Nop(), Options{})
	res, err := c.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, san.NoOutcome, res.Outcome)
	assert.Equal(t, 0, c.Ledger().Len())
}

func TestReplayDisagreementAborts(t *testing.T) {
	store := archive.NewMemory()
	rules := enginetest.New(enginetest.Openings).Forget("e4")

	var out bytes.Buffer
	in := NewScanner(strings.NewReader("e4\ne5\nresultado\nNf3\n"))
	c := New(rules, in, &out, logger.Nop(), Options{Archive: store, Now: fixedNow})
	res, err := c.Run(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, san.ErrContractViolation), "expected a contract violation but got %v", err)
	assert.Equal(t, san.NoOutcome, res.Outcome)
	assert.Empty(t, res.ArchiveID)
	// The move after the failed command is never read.
	assert.NotContains(t, out.String(), "\n1. e4 e5 2. Nf3\n")

	list, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
