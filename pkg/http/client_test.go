package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/WilsonSunBritten/serverless-tools/pkg/http"
)

func TestClient_GetDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"SampleFunction"}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	resp, err := httpclient.New().Get(context.Background(), srv.URL,
		httpclient.WithAuthToken("tok"),
		httpclient.WithResult(&out),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "SampleFunction", out.Name)
}

func TestClient_DoesNotRetryServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	resp, err := httpclient.New().Post(context.Background(), srv.URL, httpclient.WithBody(map[string]string{"a": "b"}))
	require.NoError(t, err)
	assert.True(t, resp.IsError())
	assert.Equal(t, 1, calls)
}
