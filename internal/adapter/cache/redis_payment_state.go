package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

func paymentKey(reference string) string { return "pay:state:" + reference }

// RedisPaymentStateStore persists the ephemeral payment-session record under
// its gateway reference, TTL-bound: once the grace window passes the attempt
// is gone, matching the session's ephemeral lifetime.
type RedisPaymentStateStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPaymentStateStore(rdb *redis.Client, ttl time.Duration) *RedisPaymentStateStore {
	return &RedisPaymentStateStore{rdb: rdb, ttl: ttl}
}

func (s *RedisPaymentStateStore) Put(ctx context.Context, ps domain.PaymentSession) error {
	raw, err := json.Marshal(ps)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, paymentKey(ps.Reference), raw, s.ttl).Err()
}

func (s *RedisPaymentStateStore) Get(ctx context.Context, reference string) (domain.PaymentSession, bool, error) {
	raw, err := s.rdb.Get(ctx, paymentKey(reference)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PaymentSession{}, false, nil
	}
	if err != nil {
		return domain.PaymentSession{}, false, err
	}
	var ps domain.PaymentSession
	if err := json.Unmarshal(raw, &ps); err != nil {
		return domain.PaymentSession{}, false, err
	}
	return ps, true, nil
}

var _ usecase.PaymentStateStore = (*RedisPaymentStateStore)(nil)
