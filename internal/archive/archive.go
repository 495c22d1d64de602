// Package archive keeps finished games so they can be listed and redrawn.
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mway1/san"
)

var (
	// ErrGameNotFound is returned by Load for ids that were never saved.
	ErrGameNotFound = errors.New("game not found")
	// ErrUnknownStore is returned by Open for unknown ARCHIVE values.
	ErrUnknownStore = errors.New("unknown archive backend")
)

// Record is one archived game. PGN carries the tags and the move text, so the
// ledger can be rebuilt with san.ParseMoveText.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	Engine    string      `json:"engine" bson:"engine"`
	PGN       string      `json:"pgn" bson:"pgn"`
	Outcome   san.Outcome `json:"outcome" bson:"outcome"`
	Plies     int         `json:"plies" bson:"plies"`
	StartedAt time.Time   `json:"started_at" bson:"started_at"`
	EndedAt   time.Time   `json:"ended_at" bson:"ended_at"`
}

// NewRecord captures ledger under a fresh id.
func NewRecord(engine string, ledger *san.Ledger, tags san.TagPairs, outcome san.Outcome, startedAt, endedAt time.Time) Record {
	return Record{
		ID:        uuid.New().String(),
		Engine:    engine,
		PGN:       san.PGN(ledger, tags, outcome),
		Outcome:   outcome,
		Plies:     ledger.Plies(),
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}
}

// Game parses the stored PGN back into a ledger.
func (r Record) Game() (*san.Game, error) {
	return san.ParseMoveText(r.PGN)
}

// Archive stores records. List returns the most recently ended games first.
type Archive interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	Close(ctx context.Context) error
}
