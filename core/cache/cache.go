package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
)

// Cache is the session storage backend. State survives at least one HTTP
// round trip; the TTL is refreshed on every write.
type Cache interface {
	GetSession(ctx context.Context, sessionID string) (*session.State, error)
	SaveSession(ctx context.Context, state *session.State) error
	DeleteSession(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
	Client() *redis.Client
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(cfg config.RedisConfig, ttl time.Duration) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Error("Cache:NewCache:Ping:Error", "error", err, "addr", cfg.Addr)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Cache:NewCache:Connected", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client, ttl: ttl}, nil
}

func sessionKey(sessionID string) string {
	return constants.RedisKeySession + sessionID
}

// GetSession loads the per-session state. A missing key yields (nil, nil).
func (c *redisCache) GetSession(ctx context.Context, sessionID string) (*session.State, error) {
	raw, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Cache:GetSession:Error", "error", err, "session_id", sessionID)
		return nil, err
	}

	var state session.State
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.Error("Cache:GetSession:Unmarshal:Error", "error", err, "session_id", sessionID)
		return nil, err
	}
	return &state, nil
}

func (c *redisCache) SaveSession(ctx context.Context, state *session.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, sessionKey(state.ID), raw, c.ttl).Err(); err != nil {
		logger.Error("Cache:SaveSession:Error", "error", err, "session_id", state.ID)
		return err
	}
	return nil
}

func (c *redisCache) DeleteSession(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Client exposes the underlying connection for components that share the
// redis instance (asynq).
func (c *redisCache) Client() *redis.Client {
	return c.client
}
