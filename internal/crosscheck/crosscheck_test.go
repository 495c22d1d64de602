package crosscheck

import (
	"errors"
	"testing"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/engine/corentings"
)

const foolsMate = "[Event \"Casual\"]\n\n1. f3 e5 2. g4 Qh4# 0-1\n"

func TestPlacement(t *testing.T) {
	got, err := Placement(foolsMate)
	if err != nil {
		t.Fatal(err)
	}
	want := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR"
	if got != want {
		t.Fatalf("expected %s but got %s", want, got)
	}
}

func TestAgree(t *testing.T) {
	g, err := san.ParseMoveText(foolsMate)
	if err != nil {
		t.Fatal(err)
	}
	b := corentings.New().NewBoard()
	for _, turn := range g.Ledger.Turns() {
		for _, tok := range []string{turn.White, turn.Black} {
			r, err := b.Resolve(tok)
			if err != nil {
				t.Fatal(err)
			}
			if err := b.Apply(r); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := Agree(foolsMate, b); err != nil {
		t.Fatalf("expected positions to agree: %v", err)
	}

	fresh := corentings.New().NewBoard()
	if err := Agree(foolsMate, fresh); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch but got %v", err)
	}
}

func TestPlacementNoGame(t *testing.T) {
	if _, err := Placement(""); err == nil {
		t.Fatalf("expected an error for empty text")
	}
}
