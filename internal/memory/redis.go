package memory

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/ndtplanner-backend/internal/platform/envutil"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

// redisStore keeps memory in Redis lists so multiple API replicas share the
// same short-term context. One list per (agent, key).
type redisStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisStore connects using REDIS_ADDR. Callers should fall back to the
// file store when the address is unset.
func NewRedisStore(log *logger.Logger) (Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := time.Duration(envutil.Int("MEMORY_TTL_SECONDS", 86400)) * time.Second
	return &redisStore{
		log: log.With("service", "RedisMemoryStore"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func memoryKey(agent, key string) string {
	return "ndt:memory:" + agent + ":" + key
}

func (s *redisStore) Save(ctx context.Context, agent, key, value string) error {
	k := memoryKey(agent, key)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, k, value)
	pipe.LTrim(ctx, k, -64, -1)
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) Recent(ctx context.Context, agent, key string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 3
	}
	values, err := s.rdb.LRange(ctx, memoryKey(agent, key), int64(-limit), -1).Result()
	if err != nil {
		return nil, err
	}
	return values, nil
}
