package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
)

const (
	matchKeyPrefix   = "match:"
	maxUpdateRetries = 5
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	Update(ctx context.Context, id string, fn func(match *entity.Match) error) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbMatch struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchRepository stores matches as JSON. Every write refreshes the key
// expiry to ttl, zero keeps matches forever.
func NewMatchRepository(client *redis.Client, ttl time.Duration) MatchRepository {
	return &dbMatch{
		client: client,
		ttl:    ttl,
	}
}

func matchKey(id string) string {
	return matchKeyPrefix + id
}

func (that *dbMatch) Create(ctx context.Context, match *entity.Match) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	err = that.client.Set(ctx, matchKey(match.ID), matchJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	return that.get(ctx, that.client, id)
}

// Update loads the match, hands it to fn and writes it back only when the key
// was not touched in between. Conflicting writers are retried.
func (that *dbMatch) Update(ctx context.Context, id string, fn func(match *entity.Match) error) (*entity.Match, error) {
	key := matchKey(id)

	var updated *entity.Match

	txf := func(tx *redis.Tx) error {
		match, err := that.get(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = fn(match); err != nil {
			return err
		}

		matchJSON, err := json.Marshal(match)
		if err != nil {
			return fmt.Errorf("could not marshal match: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, matchJSON, that.ttl)
			return nil
		})
		if err != nil {
			return err //nolint: wrapcheck // TxFailedErr is checked by the caller
		}

		updated = match

		return nil
	}

	for range maxUpdateRetries {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return updated, nil
	}

	return nil, apperror.ErrUpdateConflict
}

func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, matchKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete match by ID: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrMatchNotFound
	}

	return nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (that *dbMatch) get(ctx context.Context, client stringGetter, id string) (*entity.Match, error) {
	response, err := client.Get(ctx, matchKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var match entity.Match
	if err = json.Unmarshal(response, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}
