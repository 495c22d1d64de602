package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "sanplay:game:"
	redisIndexKey  = "sanplay:games"
	redisTimeout   = 5 * time.Second
)

// Redis stores each record as JSON and keeps a sorted set of ids scored by
// the end time.
type Redis struct {
	addr   string
	client *redis.Client
}

// NewRedis returns a store for the server at addr. Call Init before use.
//
// Example:
//
//	store := NewRedis("localhost:6379")
//	if err := store.Init(ctx); err != nil {
//	    return err
//	}
//	defer store.Close(ctx)
func NewRedis(addr string) *Redis {
	return &Redis{addr: addr}
}

// Init connects and pings the server.
func (r *Redis) Init(ctx context.Context) error {
	r.client = redis.NewClient(&redis.Options{
		Addr: r.addr,
		DB:   0,
	})

	ctxPing, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := r.client.Ping(ctxPing).Err(); err != nil {
		return fmt.Errorf("connect to redis at %s: %w", r.addr, err)
	}
	return nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Save writes rec and indexes it by end time in one transaction.
func (r *Redis) Save(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisKey(rec.ID), data, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{
			Score:  float64(rec.EndedAt.UnixMilli()),
			Member: rec.ID,
		})
		return nil
	})
	return err
}

// Load returns the record with id or ErrGameNotFound.
func (r *Redis) Load(ctx context.Context, id string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrGameNotFound
	} else if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode game %s: %w", id, err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. Indexed ids whose record
// is gone are skipped.
func (r *Redis) List(ctx context.Context, limit int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := r.client.ZRevRange(ctx, redisIndexKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	recs := make([]Record, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// Indexed but expired or deleted.
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("decode game %s: %w", ids[i], err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Close releases the client.
func (r *Redis) Close(context.Context) error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
