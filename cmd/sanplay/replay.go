package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"go.uber.org/zap"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/board"
	"github.com/mway1/san/internal/crosscheck"
)

// readGameText returns the contents of path, decompressing .bz2 archives.
func readGameText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", path, err)
		}
		defer bz.Close()
		r = bz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func replay(path string, rules san.Engine, out io.Writer, log *zap.SugaredLogger) int {
	text, err := readGameText(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := writeReplay(out, text, rules, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// writeReplay prints the move text, the variation tree, the flattened moves
// and the final board of the game in text.
func writeReplay(out io.Writer, text string, rules san.Engine, log *zap.SugaredLogger) error {
	game, err := san.ParseMoveText(text)
	if err != nil {
		return err
	}
	final, moves, err := san.Replay(game.Ledger, rules)
	if err != nil {
		return err
	}
	if err := crosscheck.Agree(text, final); err != nil {
		log.Warnw("replay crosscheck", "error", err)
	}

	fmt.Fprintln(out, game.Ledger.MoveText(), game.Outcome)
	fmt.Fprintln(out)
	fmt.Fprint(out, san.RenderTree(game.Ledger.Turns()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, san.FormatFlattened(moves))
	fmt.Fprintln(out)
	return board.WriteText(out, final)
}
