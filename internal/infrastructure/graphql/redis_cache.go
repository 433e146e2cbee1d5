package graphql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mdaskas/customer-console/internal/domain/entity"
	"github.com/mdaskas/customer-console/pkg/config"
)

const redisKeyPrefix = "console:gql:"

// RedisCache caché compartida entre réplicas de la consola. Cada entrada es una clave y cada
// tipo de entidad un SET con las claves que lo referencian.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ ResponseCache = (*RedisCache)(nil)

// NewRedisCache conecta y verifica con PING.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return b, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, tags []entity.Type, data []byte) error {
	k := redisKeyPrefix + key
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, k, data, r.ttl)
	for _, t := range tags {
		pipe.SAdd(ctx, tagKey(t), k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate borra las entradas de cada tipo y su SET. El SET se vigila con WATCH: si otra
// réplica agrega una clave entre SMEMBERS y DEL la transacción se reintenta.
func (r *RedisCache) Invalidate(ctx context.Context, tags ...entity.Type) error {
	for _, t := range tags {
		if err := r.invalidateTag(ctx, tagKey(t)); err != nil {
			return err
		}
	}
	return nil
}

const maxInvalidateRetries = 5

func (r *RedisCache) invalidateTag(ctx context.Context, tk string) error {
	txf := func(tx *redis.Tx) error {
		keys, err := tx.SMembers(ctx, tk).Result()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, append(keys, tk)...)
			return nil
		})
		return err
	}
	for i := 0; i < maxInvalidateRetries; i++ {
		err := r.rdb.Watch(ctx, txf, tk)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis invalidate %s: %w", tk, err)
		}
		return nil
	}
	return fmt.Errorf("redis invalidate %s: %w", tk, redis.TxFailedErr)
}

// Close cierra el pool de conexiones.
func (r *RedisCache) Close() error {
	return r.rdb.Close()
}

func tagKey(t entity.Type) string {
	return redisKeyPrefix + "tag:" + string(t)
}
