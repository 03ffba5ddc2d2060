package order

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

// RedisPendingStore stashes pending orders under order_<orderId> and guards
// finalization with order_<orderId>:finalized.
type RedisPendingStore struct {
	rdb redis.Cmdable
}

func NewRedisPendingStore(rdb redis.Cmdable) *RedisPendingStore {
	return &RedisPendingStore{rdb: rdb}
}

func (s *RedisPendingStore) orderKey(orderID string) string {
	return "order_" + orderID
}

func (s *RedisPendingStore) flagKey(orderID string) string {
	return "order_" + orderID + ":finalized"
}

func (s *RedisPendingStore) Save(ctx context.Context, p Pending, ttl time.Duration) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending order: %w", err)
	}
	key := s.orderKey(p.OrderID)
	if err := s.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to stash pending order")
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *RedisPendingStore) Load(ctx context.Context, orderID string) (*Pending, error) {
	key := s.orderKey(orderID)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrOrderNotFound
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load pending order")
		return nil, errx.WrapRedis(err)
	}

	var p Pending
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal pending order %s: %w", orderID, err)
	}
	return &p, nil
}

func (s *RedisPendingStore) Delete(ctx context.Context, orderID string) error {
	if err := s.rdb.Del(ctx, s.orderKey(orderID)).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *RedisPendingStore) Claim(ctx context.Context, orderID string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, s.flagKey(orderID), time.Now().Unix(), ttl).Result()
	if err != nil {
		logx.Error().Err(err).Str("order_id", orderID).Msg("failed to claim order finalization")
		return false, errx.WrapRedis(err)
	}
	return ok, nil
}

func (s *RedisPendingStore) Release(ctx context.Context, orderID string) error {
	if err := s.rdb.Del(ctx, s.flagKey(orderID)).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

var _ PendingStore = (*RedisPendingStore)(nil)
