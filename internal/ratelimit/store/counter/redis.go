package counter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"voltid/internal/ratelimit/models"
)

// slidingWindowScript trims the sorted set to the window, then adds the hit
// only when the remaining count is under the limit. Returns
// {allowed, count, oldest_ms}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, member)
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', key, window)
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestMs = now
if oldest[2] then
  oldestMs = tonumber(oldest[2])
end
return {allowed, count, oldestMs}
`)

// Redis is a sliding-window counter shared by every server instance.
type Redis struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix, now: time.Now}
}

func (s *Redis) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	now := s.now()
	res, err := slidingWindowScript.Run(ctx, s.client, []string{s.key(key)},
		now.UnixMilli(), window.Milliseconds(), limit, uuid.NewString()).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("sliding window allow: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("sliding window allow: unexpected reply length %d", len(res))
	}
	remaining := limit - int(res[1])
	if remaining < 0 {
		remaining = 0
	}
	return &models.Result{
		Allowed:   res[0] == 1,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.UnixMilli(res[2]).Add(window),
	}, nil
}

func (s *Redis) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("sliding window reset: %w", err)
	}
	return nil
}

// Count ignores hits that have aged out but not yet been trimmed.
func (s *Redis) Count(ctx context.Context, key string, window time.Duration) (int, error) {
	minScore := "(" + strconv.FormatInt(s.now().Add(-window).UnixMilli(), 10)
	n, err := s.client.ZCount(ctx, s.key(key), minScore, "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("sliding window count: %w", err)
	}
	return int(n), nil
}
