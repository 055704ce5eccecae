package answercache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_answer_cache_total"},
		[]string{"result"},
	)
	return New(ms, ttl, counter, zap.NewNop()), ms
}
