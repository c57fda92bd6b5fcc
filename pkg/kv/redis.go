package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ethioagri/gebeya/config"
	"github.com/ethioagri/gebeya/pkg/metrics"
)

// Redis is a Store backed by a shared Redis instance. Records are plain
// string values; key enumeration uses KEYS with a prefix pattern, which is
// fine at this scale (one key per farmer plus the session record).
type Redis struct {
	rdb *redis.Client
	ctx context.Context
}

// OpenRedis connects to REDIS_ADDR and verifies the connection with a ping.
func OpenRedis() (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kv/redis: ping: %w", err)
	}

	return &Redis{rdb: rdb, ctx: ctx}, nil
}

func (r *Redis) Get(key string, dest interface{}) bool {
	val, err := r.rdb.Get(r.ctx, key).Result()
	if err != nil {
		metrics.RecordKVMiss("redis")
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.RecordKVMiss("redis")
		return false
	}

	metrics.RecordKVOp("redis", "get")
	return true
}

func (r *Redis) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := r.rdb.Set(r.ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("kv/redis: set %s: %w", key, err)
	}

	metrics.RecordKVOp("redis", "put")
	return nil
}

func (r *Redis) Delete(key string) error {
	if err := r.rdb.Del(r.ctx, key).Err(); err != nil {
		return fmt.Errorf("kv/redis: del %s: %w", key, err)
	}

	metrics.RecordKVOp("redis", "delete")
	return nil
}

func (r *Redis) Keys(prefix string) []string {
	keys, err := r.rdb.Keys(r.ctx, prefix+"*").Result()
	if err != nil {
		return nil
	}
	return keys
}
