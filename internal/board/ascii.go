// Package board draws positions held by a san.Board.
package board

import (
	"io"
	"strconv"
	"strings"

	"github.com/mway1/san"
)

const (
	fileLabels = "    a b c d e f g h"
	frame      = "  +-----------------+"
	emptyMark  = "."
)

// Text returns the position with file and rank labels, rank 8 on top:
//
//	    a b c d e f g h
//	  +-----------------+
//	8 | r n b q k b n r |
//	...
//	1 | R N B Q K B N R |
//	  +-----------------+
func Text(b san.Board) string {
	var sb strings.Builder
	sb.WriteString(fileLabels + "\n")
	sb.WriteString(frame + "\n")
	for rank := 7; rank >= 0; rank-- {
		cells := make([]string, 8)
		for file := 0; file < 8; file++ {
			cells[file] = symbol(b, file, rank)
		}
		sb.WriteString(strconv.Itoa(rank + 1))
		sb.WriteString(" | ")
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString(" |\n")
	}
	sb.WriteString(frame + "\n")
	return sb.String()
}

// WriteText writes Text(b) to w.
func WriteText(w io.Writer, b san.Board) error {
	_, err := io.WriteString(w, Text(b))
	return err
}

func symbol(b san.Board, file, rank int) string {
	if p := b.PieceAt(san.SquareName(file, rank)); p != "" {
		return p
	}
	return emptyMark
}
