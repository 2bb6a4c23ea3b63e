package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"researchai/pkg/domain"
)

const (
	sessionKey = "researchai:session"
	prefsKey   = "researchai:prefs"
)

// RedisStore keeps the session in Redis with TTL, for installs where the
// client runs on a shared host and state should not live on local disk.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(addr, password string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func (s *RedisStore) Load() (domain.Session, bool, error) {
	ctx, cancel := opCtx()
	defer cancel()
	val, err := s.client.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return domain.Session{}, false, err
	}
	return sess, sess.Valid(), nil
}

func (s *RedisStore) Save(sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ctx, cancel := opCtx()
	defer cancel()
	return s.client.Set(ctx, sessionKey, data, s.ttl).Err()
}

func (s *RedisStore) Clear() error {
	ctx, cancel := opCtx()
	defer cancel()
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

func (s *RedisStore) ClearAll() error {
	ctx, cancel := opCtx()
	defer cancel()
	if err := s.client.Del(ctx, sessionKey, prefsKey).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

func (s *RedisStore) LoadPrefs() (domain.Preferences, error) {
	ctx, cancel := opCtx()
	defer cancel()
	val, err := s.client.Get(ctx, prefsKey).Result()
	if err == redis.Nil {
		return domain.Preferences{}, nil
	}
	if err != nil {
		return domain.Preferences{}, err
	}
	var prefs domain.Preferences
	if err := json.Unmarshal([]byte(val), &prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}

func (s *RedisStore) SavePrefs(prefs domain.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	ctx, cancel := opCtx()
	defer cancel()
	// Preferences have no expiry; only the session itself ages out.
	return s.client.Set(ctx, prefsKey, data, 0).Err()
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*time.Second)
}
