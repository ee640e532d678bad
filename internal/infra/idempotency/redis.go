package idempotency

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:booking:"

type redisState struct {
	Status      string     `json:"status"`
	RequestHash string     `json:"requestHash"`
	BookingID   *uuid.UUID `json:"bookingId,omitempty"`
}

type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(key uuid.UUID) string {
	return keyPrefix + key.String()
}

// Reserve uses SET NX so exactly one caller wins a fresh key. A loser reads
// the winner's state; if that expired in between, it tries again.
func (s *RedisStore) Reserve(ctx context.Context, key uuid.UUID, requestHash string) (*commands.IdempotencyRecord, error) {
	k := s.key(key)
	raw, err := json.Marshal(redisState{Status: commands.IdempotencyStatusProcessing, RequestHash: requestHash})
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		_, err := s.client.SetArgs(ctx, k, raw, redis.SetArgs{Mode: "NX", TTL: s.ttl}).Result()
		if err == nil {
			return nil, nil
		}
		if !errs.Is(err, redis.Nil) {
			return nil, errs.Wrap(err, "redis set")
		}

		data, err := s.client.Get(ctx, k).Bytes()
		if errs.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, errs.Wrap(err, "redis get")
		}

		var state redisState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, errs.Wrap(err, "redis unmarshal")
		}
		return &commands.IdempotencyRecord{
			Key:         key,
			Status:      state.Status,
			RequestHash: state.RequestHash,
			BookingID:   state.BookingID,
		}, nil
	}
	return nil, errs.Newf("idempotency key %s kept expiring during reserve", key)
}

func (s *RedisStore) MarkCompleted(ctx context.Context, key uuid.UUID, requestHash string, bookingID uuid.UUID) error {
	raw, err := json.Marshal(redisState{
		Status:      commands.IdempotencyStatusCompleted,
		RequestHash: requestHash,
		BookingID:   &bookingID,
	})
	if err != nil {
		return errs.Wrap(err, "redis marshal")
	}
	return errs.Wrap(s.client.Set(ctx, s.key(key), raw, s.ttl).Err(), "redis set completed")
}

func (s *RedisStore) Release(ctx context.Context, key uuid.UUID) error {
	return errs.Wrap(s.client.Del(ctx, s.key(key)).Err(), "redis del")
}
