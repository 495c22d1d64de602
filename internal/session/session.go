// Package session runs the interactive game loop: it prompts for white and
// black moves, checks them with san.Validate and the rules engine, records
// them in a ledger and answers the view commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/archive"
	"github.com/mway1/san/internal/board"
	"github.com/mway1/san/internal/scoresheet"
)

type side string

const (
	white side = "Blancas"
	black side = "Negras"
)

// Options are the optional collaborators of a Controller.
type Options struct {
	// Archive receives the game when it ends. Nil disables archiving.
	Archive archive.Archive
	// SVGPath and PDFPath are where the svg and pdf commands write.
	SVGPath string
	PDFPath string
	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// Result describes how a session ended.
type Result struct {
	Outcome   san.Outcome
	Ledger    *san.Ledger
	ArchiveID string
}

// Controller drives one game. It is not safe for concurrent use.
type Controller struct {
	engine san.Engine
	board  san.Board
	ledger *san.Ledger
	in     LineReader
	out    io.Writer
	log    *zap.SugaredLogger
	opts   Options

	lastMove  *san.Resolution
	startedAt time.Time
}

// New prepares a session reading from in and printing to out.
func New(engine san.Engine, in LineReader, out io.Writer, log *zap.SugaredLogger, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		engine: engine,
		board:  engine.NewBoard(),
		ledger: san.NewLedger(),
		in:     in,
		out:    out,
		log:    log,
		opts:   opts,
	}
}

// Ledger returns the turns recorded so far.
func (c *Controller) Ledger() *san.Ledger {
	return c.ledger
}

// errQuit ends the loop at the user's request.
var errQuit = errors.New("quit")

// Run plays the game until checkmate, the quit command or the end of input.
// Errors wrapping san.ErrContractViolation abort the session.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	c.startedAt = c.opts.Now()
	c.log.Infow("session started", "engine", c.engine.Name())

	c.printf("Validación interactiva de una partida en SAN hasta jaque mate\n")
	c.printf("\nTablero inicial:\n%s", board.Text(c.board))

	outcome, err := c.play(ctx)
	if err != nil && !endsNormally(err) {
		c.log.Errorw("session aborted", "error", err, "turns", c.ledger.Len())
		return Result{Outcome: san.NoOutcome, Ledger: c.ledger}, err
	}

	res := Result{Outcome: outcome, Ledger: c.ledger}
	res.ArchiveID, err = c.archive(context.WithoutCancel(ctx), outcome)
	if err != nil {
		c.log.Errorw("archive failed", "error", err)
		c.printf("No se pudo archivar la partida: %v\n", err)
	}
	c.log.Infow("session finished", "outcome", outcome, "plies", c.ledger.Plies(), "archive_id", res.ArchiveID)
	return res, nil
}

// endsNormally tells the ways a user leaves a game apart from failures.
func endsNormally(err error) bool {
	return errors.Is(err, errQuit) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

func (c *Controller) play(ctx context.Context) (san.Outcome, error) {
	for turn := 1; ; turn++ {
		move, err := c.readMove(ctx, turn, white)
		if err != nil {
			return san.NoOutcome, err
		}
		c.ledger.Append(move)
		c.printProgress()
		if c.isMate(move) {
			c.printf("\n¡Jaque mate detectado en movimiento de las Blancas ('%s')! Partida finalizada.\n", move)
			return san.WhiteWon, nil
		}

		move, err = c.readMove(ctx, turn, black)
		if err != nil {
			return san.NoOutcome, err
		}
		if move == "" {
			err = c.ledger.SkipLastBlack()
		} else {
			err = c.ledger.SetLastBlack(move)
		}
		if err != nil {
			return san.NoOutcome, err
		}
		c.printProgress()
		if move != "" && c.isMate(move) {
			c.printf("\n¡Jaque mate detectado en movimiento de las Negras ('%s')! Partida finalizada.\n", move)
			return san.BlackWon, nil
		}
	}
}

// readMove prompts until the user enters a playable move for s, which it
// applies to the live board. Black may answer with an empty line to skip;
// readMove then returns "".
func (c *Controller) readMove(ctx context.Context, turn int, s side) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		c.printf("Turno %d - Jugada de las %s: ", turn, s)
		line, err := c.in.ReadLine()
		if err != nil {
			return "", err
		}
		input := strings.TrimSpace(line)

		if cmd, ok := parseCommand(input); ok {
			if err := c.runCommand(cmd); err != nil {
				return "", err
			}
			continue
		}
		if s == black && input == "" {
			c.log.Debugw("black skipped", "turn", turn)
			return "", nil
		}

		if err := c.tryMove(input); err != nil {
			c.log.Debugw("move rejected", "turn", turn, "side", s, "input", input, "error", err)
			c.printf("Jugada inválida para %s en el turno %d: '%s'. Intenta de nuevo", s, turn, input)
			if s == black {
				c.printf(" o presiona enter para omitir")
			}
			c.printf(".\n")
			continue
		}
		return input, nil
	}
}

// tryMove checks syntax first and only then asks the engine, so the board is
// untouched by anything that is not SAN.
func (c *Controller) tryMove(input string) error {
	if err := san.CheckSyntax(input); err != nil {
		return err
	}
	r, err := c.board.Resolve(input)
	if err != nil {
		return err
	}
	if err := c.board.Apply(r); err != nil {
		return err
	}
	c.lastMove = &r
	return nil
}

func (c *Controller) isMate(move string) bool {
	return strings.Contains(move, "#") || c.board.IsCheckmate()
}

func (c *Controller) runCommand(cmd command) error {
	switch cmd {
	case cmdTree:
		return san.WriteTree(c.out, c.ledger.Turns())
	case cmdResult:
		moves, err := san.Flatten(c.ledger, c.engine)
		if err != nil {
			return err
		}
		c.printf("%s\n", san.FormatFlattened(moves))
	case cmdPGN:
		c.printf("%s\n", san.PGN(c.ledger, c.tags(san.NoOutcome), san.NoOutcome))
	case cmdBoard:
		c.printf("%s", board.Text(c.board))
	case cmdSVG:
		c.exportFile(c.opts.SVGPath, c.writeSVG)
	case cmdPDF:
		c.exportFile(c.opts.PDFPath, c.writePDF)
	case cmdHelp:
		c.printf("%s", helpText)
	case cmdQuit:
		return errQuit
	}
	return nil
}

func (c *Controller) writeSVG(w io.Writer) error {
	opts := board.DefaultSVGOptions
	if c.lastMove != nil {
		opts.Highlight = []string{c.lastMove.From, c.lastMove.To}
	}
	return board.SVG(w, c.board, &opts)
}

func (c *Controller) writePDF(w io.Writer) error {
	moves, err := san.Flatten(c.ledger, c.engine)
	if err != nil {
		return err
	}
	return scoresheet.Write(w, scoresheet.Sheet{
		Title:    "Partida " + c.startedAt.Format("2006-01-02 15:04"),
		Outcome:  san.NoOutcome,
		Turns:    c.ledger.Turns(),
		Moves:    moves,
		MoveText: c.ledger.MoveText(),
	})
}

// exportFile reports I/O problems to the user and keeps the game going.
func (c *Controller) exportFile(path string, write func(io.Writer) error) {
	if path == "" {
		c.printf("No hay ruta configurada para exportar.\n")
		return
	}
	f, err := os.Create(path)
	if err != nil {
		c.log.Warnw("export failed", "path", path, "error", err)
		c.printf("No se pudo crear %s: %v\n", path, err)
		return
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		c.log.Warnw("export failed", "path", path, "error", err)
		c.printf("No se pudo escribir %s: %v\n", path, err)
		return
	}
	c.log.Infow("exported", "path", path)
	c.printf("Guardado en %s\n", path)
}

func (c *Controller) printProgress() {
	c.printf("\n%s\n", c.ledger.MoveText())
	c.printf("\nEstado actual del tablero:\n%s", board.Text(c.board))
}

func (c *Controller) tags(outcome san.Outcome) san.TagPairs {
	return san.TagPairs{
		"Event":  "Partida SAN",
		"Site":   "?",
		"Date":   c.startedAt.Format("2006.01.02"),
		"Round":  "-",
		"White":  "?",
		"Black":  "?",
		"Result": outcome.String(),
	}
}

func (c *Controller) archive(ctx context.Context, outcome san.Outcome) (string, error) {
	if c.opts.Archive == nil || c.ledger.Len() == 0 {
		return "", nil
	}
	rec := archive.NewRecord(c.engine.Name(), c.ledger, c.tags(outcome), outcome, c.startedAt, c.opts.Now())
	if err := c.opts.Archive.Save(ctx, rec); err != nil {
		return "", err
	}
	c.printf("Partida archivada con id %s\n", rec.ID)
	return rec.ID, nil
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
