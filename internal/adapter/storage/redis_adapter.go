package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rollCallKeyPrefix     = "rollcall:"
	defaultRollCallTTL    = 10 * time.Minute
	defaultIdempotencyTTL = 24 * time.Hour
)

// Roll calls live in a hash of {version, lines}. A hash holding only a
// version is a tombstone: the roster changed and nothing newer is cached yet.

// KEYS[1] roll call hash, ARGV[1] version, ARGV[2] lines as JSON, ARGV[3] ttl in milliseconds
var setRollCallScript = redis.NewScript(`
local key = KEYS[1]
local current = redis.call('HGET', key, 'version')
if current and tonumber(current) > tonumber(ARGV[1]) then
	return 0
end

redis.call('HSET', key, 'version', ARGV[1], 'lines', ARGV[2])
redis.call('PEXPIRE', key, ARGV[3])

return 1
`)

// KEYS[1] roll call hash, ARGV[1] version, ARGV[2] ttl in milliseconds
var invalidateRollCallScript = redis.NewScript(`
local key = KEYS[1]
local current = redis.call('HGET', key, 'version')
if current and tonumber(current) >= tonumber(ARGV[1]) then
	return 0
end

redis.call('DEL', key)
redis.call('HSET', key, 'version', ARGV[1])
redis.call('PEXPIRE', key, ARGV[2])

return 1
`)

type RedisAdapter struct {
	client         *redis.Client
	rollCallTTL    time.Duration
	idempotencyTTL time.Duration
}

// NewRedisAdapter uses the package defaults for any zero TTL.
func NewRedisAdapter(client *redis.Client, rollCallTTL, idempotencyTTL time.Duration) *RedisAdapter {
	if rollCallTTL <= 0 {
		rollCallTTL = defaultRollCallTTL
	}
	if idempotencyTTL <= 0 {
		idempotencyTTL = defaultIdempotencyTTL
	}
	return &RedisAdapter{
		client:         client,
		rollCallTTL:    rollCallTTL,
		idempotencyTTL: idempotencyTTL,
	}
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, r.idempotencyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (r *RedisAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisAdapter) GetRollCall(ctx context.Context, vesselID string) ([]string, bool, error) {
	raw, err := r.client.HGet(ctx, rollCallKeyPrefix+vesselID, "lines").Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	lines := []string{}
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, false, fmt.Errorf("decode roll call: %w", err)
	}
	return lines, true, nil
}

func (r *RedisAdapter) SetRollCall(ctx context.Context, vesselID string, version int, lines []string) error {
	if lines == nil {
		lines = []string{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode roll call: %w", err)
	}

	return setRollCallScript.Run(ctx, r.client, []string{rollCallKeyPrefix + vesselID},
		version, string(raw), r.rollCallTTL.Milliseconds()).Err()
}

func (r *RedisAdapter) InvalidateRollCall(ctx context.Context, vesselID string, version int) error {
	return invalidateRollCallScript.Run(ctx, r.client, []string{rollCallKeyPrefix + vesselID},
		version, r.rollCallTTL.Milliseconds()).Err()
}
