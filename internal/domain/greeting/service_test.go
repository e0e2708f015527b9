package greeting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
	"github.com/WilsonSunBritten/serverless-tools/internal/domain/greeting"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 17, 9, 30, 15, 123456789, time.FixedZone("CEST", 2*60*60))
}

func TestService_Greet(t *testing.T) {
	svc := greeting.NewService(fixedNow)

	got, err := svc.Greet(context.Background(), map[string]string{
		authz.UserContextKey: `{"email":"a@x.com","name":"Ann"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello Ann! This is a protected endpoint.", got.Message)
	assert.Equal(t, "2026-10-17T07:30:15.123Z", got.Timestamp)
}

func TestService_Greet_InvalidContext(t *testing.T) {
	svc := greeting.NewService(fixedNow)

	for name, ctx := range map[string]map[string]string{
		"nil":         nil,
		"no user":     {"other": "x"},
		"empty":       {authz.UserContextKey: ""},
		"not json":    {authz.UserContextKey: "{"},
		"null":        {authz.UserContextKey: "null"},
		"string":      {authz.UserContextKey: `"Ann"`},
		"wrong shape": {authz.UserContextKey: `["Ann"]`},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := svc.Greet(context.Background(), ctx)
			require.ErrorIs(t, err, greeting.ErrInvalidContext)
			assert.Nil(t, got)
		})
	}
}
