package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisKeyPrefix = "panel:"

// RedisStore shares credentials between several operator processes on one host.
type RedisStore struct {
	client redis.UniversalClient
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, slot Slot) (string, bool) {
	token, err := s.client.Get(ctx, redisKey(slot)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		log.Err(err).Str("slot", string(slot)).Msg("tokenstore: redis get failed")
		return "", false
	}
	return token, token != ""
}

func (s *RedisStore) Set(ctx context.Context, slot Slot, token string) error {
	if token == "" {
		if err := s.client.Del(ctx, redisKey(slot)).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", slot, err)
		}
		return nil
	}
	if err := s.client.Set(ctx, redisKey(slot), token, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", slot, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(allSlots))
	for _, slot := range allSlots {
		keys = append(keys, redisKey(slot))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

func redisKey(slot Slot) string {
	return redisKeyPrefix + string(slot)
}
