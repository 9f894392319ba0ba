package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"agency-backend/internal/config"
	"agency-backend/internal/logger"
)

const (
	accessTokenKey  = "session:access"
	refreshTokenKey = "session:refresh"
	tokenTTL        = 7 * 24 * time.Hour
)

// Cache keeps the upstream token pair in Redis so a restarted process can
// resume its session without forcing a re-login. Redis is optional: with no
// address configured, or when the ping fails, every method is a no-op.
type Cache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewCache(cfg *config.Config) *Cache {
	c := &Cache{log: logger.WithComponent("authcache")}
	if cfg.Redis.Addr == "" {
		return c
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis unreachable, session persistence disabled")
		return c
	}

	c.client = client
	c.log.Info().Str("addr", cfg.Redis.Addr).Msg("session cache connected")
	return c
}

func (c *Cache) StoreTokens(ctx context.Context, access, refresh string) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, accessTokenKey, access, tokenTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("access token cache write failed")
	}
	if err := c.client.Set(ctx, refreshTokenKey, refresh, tokenTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("refresh token cache write failed")
	}
}

func (c *Cache) LoadTokens(ctx context.Context) (access, refresh string, ok bool) {
	if c.client == nil {
		return "", "", false
	}
	access, err := c.client.Get(ctx, accessTokenKey).Result()
	if err != nil {
		return "", "", false
	}
	refresh, _ = c.client.Get(ctx, refreshTokenKey).Result()
	return access, refresh, access != ""
}

func (c *Cache) Clear(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, accessTokenKey, refreshTokenKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("token cache clear failed")
	}
}
