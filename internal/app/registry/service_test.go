package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appregistry "github.com/WilsonSunBritten/serverless-tools/internal/app/registry"
	"github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
	"github.com/WilsonSunBritten/serverless-tools/internal/infra/store"
)

func TestService_ListFunctions_SeedOnly(t *testing.T) {
	domain := registry.NewService(registry.Seed(""), store.NewStubStore())
	svc := appregistry.NewService(domain)

	require.NoError(t, svc.RegisterFunction(context.Background(), registry.FunctionDescriptor{
		Name: "TestFunction",
		URL:  "http://localhost:7073",
	}))

	got, err := svc.ListFunctions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []registry.FunctionDescriptor{
		{Name: "SampleFunction", URL: "http://127.0.0.1:7072"},
	}, got)
}

func TestService_RegisterFunction_PropagatesValidationError(t *testing.T) {
	domain := registry.NewService(registry.Seed(""), store.NewStubStore())
	svc := appregistry.NewService(domain)

	err := svc.RegisterFunction(context.Background(), registry.FunctionDescriptor{Name: "X"})

	assert.True(t, errors.Is(err, registry.ErrInvalidDescriptor))
}
