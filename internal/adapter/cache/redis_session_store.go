package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

const authChannel = "impressa:auth_change"

func sessionKey(id string) string { return "sess:" + id }

// RedisSessionStore keeps one hash per visitor session (token, user profile,
// delivery address) and doubles as the auth-change bus: changes are published
// on a pub/sub channel so every view holding session state can invalidate.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (domain.Session, error) {
	fields, err := s.rdb.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return domain.Session{}, err
	}

	sess := domain.Session{ID: sessionID}
	sess.Token = fields["token"]
	if raw, ok := fields["user"]; ok && raw != "" {
		var u domain.User
		if json.Unmarshal([]byte(raw), &u) == nil {
			sess.User = &u
		}
	}
	// address may be in the structured form or the legacy string form
	addr, err := domain.ParseStoredAddress([]byte(fields["address"]))
	if err != nil {
		return domain.Session{}, err
	}
	sess.Address = addr
	if phone, ok := fields["phone"]; ok && sess.Address.Phone == "" {
		sess.Address.Phone = phone
	}
	return sess, nil
}

func (s *RedisSessionStore) SaveAuth(ctx context.Context, sessionID, token string, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	key := sessionKey(sessionID)
	if err := s.rdb.HSet(ctx, key, "token", token, "user", string(raw)).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, s.ttl).Err()
}

func (s *RedisSessionStore) ClearAuth(ctx context.Context, sessionID string) error {
	return s.rdb.HDel(ctx, sessionKey(sessionID), "token", "user").Err()
}

func (s *RedisSessionStore) SaveAddress(ctx context.Context, sessionID string, addr domain.DeliveryAddress) error {
	raw, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	key := sessionKey(sessionID)
	// phone is tracked separately too; legacy readers look for it there
	if err := s.rdb.HSet(ctx, key, "address", string(raw), "phone", addr.Phone).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, s.ttl).Err()
}

func (s *RedisSessionStore) PublishAuthChange(ctx context.Context, sessionID string) error {
	return s.rdb.Publish(ctx, authChannel, sessionID).Err()
}

// SubscribeAuthChanges yields the session ids of changed sessions until the
// returned cancel func is called or ctx ends.
func (s *RedisSessionStore) SubscribeAuthChanges(ctx context.Context) (<-chan string, func(), error) {
	sub := s.rdb.Subscribe(ctx, authChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()
	cancel := func() { _ = sub.Close() }
	return out, cancel, nil
}

var (
	_ usecase.SessionStore = (*RedisSessionStore)(nil)
	_ usecase.AuthEvents   = (*RedisSessionStore)(nil)
)
