package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
)

const functionsKey = "registry:functions"

// HashClient is the part of a redis client the store needs. *redis.Client
// and *redis.ClusterClient satisfy it.
type HashClient interface {
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

type redisStore struct {
	client HashClient
}

func NewRedisClient(ctx context.Context, url string, poolSize int) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	opt.PoolSize = poolSize

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewRedisStore keeps descriptors in a single hash keyed by function name,
// so registering an existing name replaces its URL.
func NewRedisStore(client HashClient) registry.Store {
	return &redisStore{client: client}
}

func (r *redisStore) Save(ctx context.Context, descriptor registry.FunctionDescriptor) error {
	if err := r.client.HSet(ctx, functionsKey, descriptor.Name, descriptor.URL).Err(); err != nil {
		return fmt.Errorf("failed to store function in redis: %w", err)
	}
	return nil
}

func (r *redisStore) List(ctx context.Context) ([]registry.FunctionDescriptor, error) {
	entries, err := r.client.HGetAll(ctx, functionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list functions from redis: %w", err)
	}

	out := make([]registry.FunctionDescriptor, 0, len(entries))
	for name, url := range entries {
		out = append(out, registry.FunctionDescriptor{Name: name, URL: url})
	}
	slices.SortFunc(out, func(a, b registry.FunctionDescriptor) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return out, nil
}
