package answercache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/careatlas/orgconnect/internal/db"
	"github.com/careatlas/orgconnect/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "answer_cache:"

// store is the consumer interface for the answer cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores generated answers keyed by document text and question, so a
// repeated question over the same document skips the completion provider
// entirely. Cache failures degrade to misses, never to errors.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates an answer cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns a cached answer for the document/question pair, ok=false on miss.
func (c *Cache) Get(ctx context.Context, docText, question string) (string, bool) {
	key := c.cacheKey(docText, question)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached answer", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return "", false
	}
	if len(data) == 0 {
		c.incCache("miss")
		return "", false
	}

	c.incCache("hit")
	return string(data), true
}

// Put stores an answer for the document/question pair with the configured TTL.
func (c *Cache) Put(ctx context.Context, docText, question, answer string) {
	key := c.cacheKey(docText, question)
	if err := c.store.SetWithTTL(ctx, key, []byte(answer), c.ttl); err != nil {
		c.logger.Warn("Failed to cache answer", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) cacheKey(docText, question string) string {
	h := sha256.New()
	h.Write([]byte(docText))
	h.Write([]byte{0})
	h.Write([]byte(question))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
