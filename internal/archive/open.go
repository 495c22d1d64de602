package archive

import (
	"context"
	"fmt"

	"github.com/mway1/san/internal/config"
)

// Open returns the archive selected by cfg.Archive, connected and ready.
// The "none" backend yields a nil Archive.
func Open(ctx context.Context, cfg config.Config) (Archive, error) {
	switch cfg.Archive {
	case "", config.ArchiveNone:
		return nil, nil
	case config.ArchiveMemory:
		return NewMemory(), nil
	case config.ArchiveRedis:
		r := NewRedis(cfg.RedisUrl)
		if err := r.Init(ctx); err != nil {
			return nil, err
		}
		return r, nil
	case config.ArchiveMongo:
		m := NewMongo(cfg.MongoUri, cfg.MongoDatabase)
		if err := m.Init(ctx); err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Archive)
}
