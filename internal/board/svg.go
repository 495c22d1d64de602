package board

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/mway1/san"
)

// SVGOptions controls the board image.
type SVGOptions struct {
	SquareSize int
	Light      string
	Dark       string
	// Highlight marks squares, typically the last move's origin and target.
	Highlight []string
}

// DefaultSVGOptions are the colors used when none are given.
var DefaultSVGOptions = SVGOptions{
	SquareSize: 45,
	Light:      "#f0d9b5",
	Dark:       "#b58863",
}

const highlightColor = "#cdd26a"

var pieceGlyphs = map[string]string{
	"K": "♔", "Q": "♕", "R": "♖", "B": "♗", "N": "♘", "P": "♙",
	"k": "♚", "q": "♛", "r": "♜", "b": "♝", "n": "♞", "p": "♟",
}

// SVG writes an image of the position to w, white at the bottom.
func SVG(w io.Writer, b san.Board, opts *SVGOptions) error {
	o := DefaultSVGOptions
	if opts != nil {
		o = *opts
		if o.SquareSize <= 0 {
			o.SquareSize = DefaultSVGOptions.SquareSize
		}
		if o.Light == "" {
			o.Light = DefaultSVGOptions.Light
		}
		if o.Dark == "" {
			o.Dark = DefaultSVGOptions.Dark
		}
	}

	highlighted := make(map[string]bool, len(o.Highlight))
	for _, sq := range o.Highlight {
		highlighted[sq] = true
	}

	size := o.SquareSize
	canvas := svg.New(w)
	canvas.Start(size*8, size*8)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			name := san.SquareName(file, rank)
			x, y := file*size, (7-rank)*size

			color := o.Light
			if (file+rank)%2 == 0 {
				color = o.Dark
			}
			if highlighted[name] {
				color = highlightColor
			}
			canvas.Rect(x, y, size, size, "fill:"+color)

			if glyph, ok := pieceGlyphs[b.PieceAt(name)]; ok {
				style := fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central", size*3/4)
				canvas.Text(x+size/2, y+size/2, glyph, style)
			}
		}
	}
	canvas.End()
	return nil
}
