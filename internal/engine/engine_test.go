package engine

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", Default},
		{"corentings", "corentings"},
		{"notnil", "notnil"},
	}
	for _, tt := range tests {
		e, err := New(tt.name)
		if err != nil {
			t.Fatal(err)
		}
		if e.Name() != tt.want {
			t.Fatalf("expected engine %s but got %s", tt.want, e.Name())
		}
	}
}

func TestNewUnknown(t *testing.T) {
	if _, err := New("stockfish"); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine but got %v", err)
	}
}
