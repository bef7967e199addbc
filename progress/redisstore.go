package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"breathbot/config"
)

// KV is the slice of the redis client the store needs.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewRedisClient connects and pings the configured redis server.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisStore keeps the progress document as a JSON string under one key.
type RedisStore struct {
	kv  KV
	key string
}

func NewRedisStore(kv KV, key string) *RedisStore {
	return &RedisStore{kv: kv, key: key}
}

func (r *RedisStore) Describe() string { return "redis:" + r.key }

// Load returns an empty document when the key does not exist yet.
func (r *RedisStore) Load(ctx context.Context) (State, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StoreTimeout)
	defer cancel()

	data, err := r.kv.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress key: %w", err)
	}
	return decode(data)
}

func (r *RedisStore) Save(ctx context.Context, s State) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, config.StoreTimeout)
	defer cancel()

	if err := r.kv.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set progress key: %w", err)
	}
	return nil
}
