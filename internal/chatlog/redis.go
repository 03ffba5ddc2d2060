package chatlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/studio101-core/server/internal/core/error"
	logx "github.com/studio101-core/server/pkg/logger"
)

// RedisRepository keeps a rolling per-session chat history in a Redis list.
type RedisRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisRepository(rdb redis.Cmdable, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("chat:%s:messages", sessionID)
}

func (r *RedisRepository) Append(ctx context.Context, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", rec.SessionID).Msg("failed to marshal chat record")
		return fmt.Errorf("marshal chat record: %w", err)
	}
	key := r.sessionKey(rec.SessionID)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push chat record to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on chat key")
		}
	}
	return nil
}

// History returns the session's records, oldest first.
func (r *RedisRepository) History(ctx context.Context, sessionID string) ([]Record, error) {
	key := r.sessionKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Record{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load chat history from redis")
		return nil, errx.WrapRedis(err)
	}

	out := make([]Record, 0, len(rows))
	for i, s := range rows {
		var rec Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal chat record")
			return nil, fmt.Errorf("unmarshal chat record at index %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *RedisRepository) Clear(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete chat history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisRepository) Count(ctx context.Context, sessionID string) (int, error) {
	key := r.sessionKey(sessionID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get chat message count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ Sink = (*RedisRepository)(nil)
