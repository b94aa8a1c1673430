package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash is a one-shot notice surfaced on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SessionManager is what handlers and middleware consume; SessionStore is
// the Redis-backed implementation.
type SessionManager interface {
	NewToken() string
	Login(ctx context.Context, token, userID string) error
	UserID(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	AddFlash(ctx context.Context, token string, f Flash) error
	PopFlashes(ctx context.Context, token string) ([]Flash, error)
}

// SessionStore keeps opaque session tokens and flash messages in Redis.
// Sessions map a token to a staff user id; flashes are a per-token list
// consumed in full by the next page load.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string { return "session:" + token }
func flashKey(token string) string   { return "flash:" + token }

// NewToken mints an anonymous session token. Nothing is stored until the
// token accumulates a login or a flash.
func (s *SessionStore) NewToken() string {
	return uuid.New().String()
}

// Login associates the token with a staff user id.
func (s *SessionStore) Login(ctx context.Context, token, userID string) error {
	if err := s.rdb.Set(ctx, sessionKey(token), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// UserID returns the logged-in user id for the token, or "" when the token
// is anonymous or expired.
func (s *SessionStore) UserID(ctx context.Context, token string) (string, error) {
	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("load session: %w", err)
	}
	return val, nil
}

func (s *SessionStore) Logout(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) AddFlash(ctx context.Context, token string, f Flash) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, flashKey(token), payload)
	pipe.Expire(ctx, flashKey(token), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store flash: %w", err)
	}
	return nil
}

// PopFlashes drains and returns all pending flashes for the token.
func (s *SessionStore) PopFlashes(ctx context.Context, token string) ([]Flash, error) {
	pipe := s.rdb.TxPipeline()
	rangeCmd := pipe.LRange(ctx, flashKey(token), 0, -1)
	pipe.Del(ctx, flashKey(token))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("drain flashes: %w", err)
	}

	raw := rangeCmd.Val()
	flashes := make([]Flash, 0, len(raw))
	for _, item := range raw {
		var f Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}
