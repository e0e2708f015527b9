package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WilsonSunBritten/serverless-tools/internal/config"
	httptransport "github.com/WilsonSunBritten/serverless-tools/internal/transport/http"
)

func TestFunctionsServer_RunStopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Functions.Addr = "127.0.0.1:0"
	cfg.Registry.Backend = "stub"

	srv, err := httptransport.NewFunctionsServer(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, time.Second) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewAuthServer_RequiresProjectID(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Auth.Firebase.JWKSURL = "http://127.0.0.1:1/keys"

	_, err := httptransport.NewAuthServer(cfg)
	assert.ErrorContains(t, err, "project id")
}

func TestNewFunctionsServer_UnknownBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Registry.Backend = "table-storage"

	_, err := httptransport.NewFunctionsServer(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown registry backend")
}
