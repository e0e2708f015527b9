package store

import (
	"context"
	"fmt"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
)

const (
	BackendStub  = "stub"
	BackendRedis = "redis"
)

// New opens the registry store for backend. The returned close func
// releases any connection the backend holds.
func New(ctx context.Context, backend, redisURL string, poolSize int) (registry.Store, func() error, error) {
	switch backend {
	case "", BackendStub:
		return NewStubStore(), func() error { return nil }, nil
	case BackendRedis:
		client, err := NewRedisClient(ctx, redisURL, poolSize)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		return NewRedisStore(client), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown registry backend %q", backend)
	}
}
