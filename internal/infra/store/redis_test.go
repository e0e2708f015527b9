package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
	"github.com/WilsonSunBritten/serverless-tools/internal/infra/store"
)

type fakeHashClient struct {
	hashes map[string]map[string]string
	err    error
}

func newFakeHashClient() *fakeHashClient {
	return &fakeHashClient{hashes: map[string]map[string]string{}}
}

func (f *fakeHashClient) HSet(_ context.Context, key string, values ...any) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	h, ok := f.hashes[key]
	if !ok {
		h = map[string]string{}
		f.hashes[key] = h
	}
	var added int64
	for i := 0; i+1 < len(values); i += 2 {
		field := values[i].(string)
		if _, exists := h[field]; !exists {
			added++
		}
		h[field] = values[i+1].(string)
	}
	return redis.NewIntResult(added, nil)
}

func (f *fakeHashClient) HGetAll(_ context.Context, key string) *redis.MapStringStringCmd {
	if f.err != nil {
		return redis.NewMapStringStringResult(nil, f.err)
	}
	out := map[string]string{}
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return redis.NewMapStringStringResult(out, nil)
}

func TestRedisStore_ReplacesByNameAndSorts(t *testing.T) {
	ctx := context.Background()
	client := newFakeHashClient()
	s := store.NewRedisStore(client)

	require.NoError(t, s.Save(ctx, registry.FunctionDescriptor{Name: "b", URL: "http://b"}))
	require.NoError(t, s.Save(ctx, registry.FunctionDescriptor{Name: "c", URL: "http://c"}))
	require.NoError(t, s.Save(ctx, registry.FunctionDescriptor{Name: "a", URL: "http://a"}))
	require.NoError(t, s.Save(ctx, registry.FunctionDescriptor{Name: "b", URL: "http://b2"}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []registry.FunctionDescriptor{
		{Name: "a", URL: "http://a"},
		{Name: "b", URL: "http://b2"},
		{Name: "c", URL: "http://c"},
	}, got)
	assert.Len(t, client.hashes["registry:functions"], 3)
}

func TestRedisStore_EmptyHash(t *testing.T) {
	got, err := store.NewRedisStore(newFakeHashClient()).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStore_WrapsClientErrors(t *testing.T) {
	boom := errors.New("connection refused")
	client := newFakeHashClient()
	client.err = boom
	s := store.NewRedisStore(client)

	err := s.Save(context.Background(), registry.FunctionDescriptor{Name: "a", URL: "http://a"})
	assert.ErrorIs(t, err, boom)

	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
