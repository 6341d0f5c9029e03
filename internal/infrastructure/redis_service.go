package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisService stores session tokens. A nil client means Redis is disabled and every call is a no-op.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(ctx context.Context, cfg RedisConfig) *RedisService {
	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err == nil {
			client := redis.NewClient(opt)
			// Test connection
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn().Err(err).Msg("Redis connection failed with REDIS_URL")
				_ = client.Close()
			} else {
				log.Info().Str("addr", opt.Addr).Msg("Connected to Redis")
				return &RedisService{client: client}
			}
		} else {
			log.Warn().Err(err).Msg("Invalid REDIS_URL")
		}
	}

	if cfg.Host == "" {
		log.Info().Msg("Redis not configured, token revocation disabled")
		return &RedisService{}
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed, token revocation disabled")
		_ = client.Close()
		return &RedisService{}
	}

	log.Info().Str("addr", client.Options().Addr).Msg("Connected to Redis")
	return &RedisService{client: client}
}

func NewRedisServiceFromClient(client *redis.Client) *RedisService {
	return &RedisService{client: client}
}

func (r *RedisService) Enabled() bool {
	return r.client != nil
}

func tokenKey(token string) string {
	return "token:" + token
}

func (r *RedisService) SetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if r.client == nil {
		return nil // Redis disabled
	}
	return r.client.Set(ctx, tokenKey(token), userID, ttl).Err()
}

func (r *RedisService) GetToken(ctx context.Context, token string) (string, error) {
	if r.client == nil {
		return "", redis.Nil // Redis disabled, return nil as if key doesn't exist
	}
	return r.client.Get(ctx, tokenKey(token)).Result()
}

func (r *RedisService) DeleteToken(ctx context.Context, token string) error {
	if r.client == nil {
		return nil // Redis disabled
	}
	return r.client.Del(ctx, tokenKey(token)).Err()
}

func (r *RedisService) Close() error {
	if r.client == nil {
		return nil // Redis disabled
	}
	return r.client.Close()
}
