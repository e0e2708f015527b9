package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
	"github.com/WilsonSunBritten/serverless-tools/internal/infra/store"
)

func TestStubStore_PersistsNothing(t *testing.T) {
	s := store.NewStubStore()

	require.NoError(t, s.Save(context.Background(), registry.FunctionDescriptor{Name: "A", URL: "http://a"}))

	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNew_Backends(t *testing.T) {
	s, closeFn, err := store.New(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.NoError(t, closeFn())

	_, _, err = store.New(context.Background(), "table-storage", "", 0)
	assert.ErrorContains(t, err, "unknown registry backend")

	_, _, err = store.New(context.Background(), store.BackendRedis, "not a url", 1)
	assert.Error(t, err)
}

// Runs against a real server when SERVERLESS_TOOLS_TEST_REDIS_URL is set.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("SERVERLESS_TOOLS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SERVERLESS_TOOLS_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := store.NewRedisClient(ctx, url, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Del(ctx, "registry:functions").Err())

	s := store.NewRedisStore(client)
	require.NoError(t, s.Save(ctx, registry.FunctionDescriptor{Name: "b", URL: "http://b"}))
	require.NoError(t, s.Save(ctx, registry.FunctionDescriptor{Name: "a", URL: "http://a"}))
	require.NoError(t, s.Save(ctx, registry.FunctionDescriptor{Name: "b", URL: "http://b2"}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []registry.FunctionDescriptor{
		{Name: "a", URL: "http://a"},
		{Name: "b", URL: "http://b2"},
	}, got)
}
