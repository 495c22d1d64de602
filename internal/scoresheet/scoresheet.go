// Package scoresheet exports a recorded game as a PDF page.
package scoresheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/mway1/san"
)

// Sheet is everything printed on the page.
type Sheet struct {
	Title    string
	Outcome  san.Outcome
	Turns    []san.Turn
	Moves    []san.FlattenedMove
	MoveText string
}

// The core PDF fonts are not UTF-8, so the tree connectors are drawn in ASCII.
var treeASCII = strings.NewReplacer(
	"├── ", "|-- ",
	"└── ", "`-- ",
	"│   ", "|   ",
)

// Write renders s as a single A4 page in Courier.
func Write(w io.Writer, s Sheet) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Courier", "B", 14)
	pdf.Cell(0, 10, s.Title)
	pdf.Ln(12)

	pdf.SetFont("Courier", "B", 10)
	pdf.Cell(0, 6, "Move text")
	pdf.Ln(6)
	pdf.SetFont("Courier", "", 10)
	outcome := s.Outcome
	if outcome == "" {
		outcome = san.NoOutcome
	}
	pdf.MultiCell(0, 4.5, strings.TrimSpace(s.MoveText+" "+outcome.String()), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Courier", "B", 10)
	pdf.Cell(0, 6, "Moves")
	pdf.Ln(6)
	pdf.SetFont("Courier", "", 10)
	for _, m := range s.Moves {
		pdf.Cell(0, 4.5, fmt.Sprintf("%3d. %s", m.Seq, m))
		pdf.Ln(4.5)
	}
	pdf.Ln(4)

	pdf.SetFont("Courier", "B", 10)
	pdf.Cell(0, 6, "Tree")
	pdf.Ln(6)
	pdf.SetFont("Courier", "", 10)
	for _, line := range san.TreeLines(s.Turns) {
		pdf.Cell(0, 4.5, treeASCII.Replace(line))
		pdf.Ln(4.5)
	}

	return pdf.Output(w)
}
