package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jnanasetu/platform/core"
)

type cachedGenerator struct {
	next   Generator
	rdb    *redis.Client
	ttl    time.Duration
	logger core.Logger
}

var _ Generator = (*cachedGenerator)(nil)

// WithCache wraps a Generator with a redis read-through cache. Cache failures
// are logged and treated as misses; the wrapped generator is the source of
// truth.
func WithCache(next Generator, rdb *redis.Client, conf *core.Config, logger core.Logger) *cachedGenerator {
	return &cachedGenerator{
		next:   next,
		rdb:    rdb,
		ttl:    conf.Questions.CacheTTL,
		logger: logger,
	}
}

func cacheKey(topic, difficulty string, n int) string {
	return fmt.Sprintf("questions:%s:%s:%d", topic, difficulty, n)
}

func (g *cachedGenerator) Generate(ctx context.Context, topic, difficulty string, n int) ([]Question, error) {
	key := cacheKey(topic, difficulty, n)

	if raw, err := g.rdb.Get(ctx, key).Bytes(); err == nil {
		var qs []Question
		if err := json.Unmarshal(raw, &qs); err == nil {
			return qs, nil
		}
		g.logger.Warn(fmt.Sprintf("dropping corrupt cache entry %s", key))
		g.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		g.logger.Warn(fmt.Sprintf("questions cache read: %v", err))
	}

	qs, err := g.next.Generate(ctx, topic, difficulty, n)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(qs); err == nil {
		if err := g.rdb.Set(ctx, key, raw, g.ttl).Err(); err != nil {
			g.logger.Warn(fmt.Sprintf("questions cache write: %v", err))
		}
	}
	return qs, nil
}
