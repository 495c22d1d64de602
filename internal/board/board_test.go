package board

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mway1/san/internal/enginetest"
)

const startText = `    a b c d e f g h
  +-----------------+
8 | r n b q k b n r |
7 | p p p p p p p p |
6 | . . . . . . . . |
5 | . . . . . . . . |
4 | . . . . . . . . |
3 | . . . . . . . . |
2 | P P P P P P P P |
1 | R N B Q K B N R |
  +-----------------+
`

func TestTextStartPosition(t *testing.T) {
	b := enginetest.New(enginetest.Openings).NewBoard()
	if got := Text(b); got != startText {
		t.Fatalf("expected:\n%s\nbut got:\n%s", startText, got)
	}
}

func TestTextAfterMove(t *testing.T) {
	b := enginetest.New(enginetest.Openings).NewBoard()
	r, err := b.Resolve("e4")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(r); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[6] != "4 | . . . . P . . . |" {
		t.Fatalf("unexpected rank 4: %q", lines[6])
	}
	if lines[8] != "2 | P P P P . P P P |" {
		t.Fatalf("unexpected rank 2: %q", lines[8])
	}
}

func TestSVG(t *testing.T) {
	b := enginetest.New(enginetest.Openings).NewBoard()

	var buf bytes.Buffer
	if err := SVG(&buf, b, &SVGOptions{SquareSize: 10, Highlight: []string{"e2", "e4"}}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", `width="80"`, "♔", "♚", highlightColor, DefaultSVGOptions.Light, "</svg>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected svg to contain %q", want)
		}
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Fatalf("expected 64 squares but got %d", n)
	}
}

func TestSVGDefaults(t *testing.T) {
	b := enginetest.New(enginetest.Openings).NewBoard()

	var buf bytes.Buffer
	if err := SVG(&buf, b, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `width="360"`) {
		t.Fatalf("expected default board width 360")
	}
}
