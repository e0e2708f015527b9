package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	appauthz "github.com/WilsonSunBritten/serverless-tools/internal/app/authz"
	"github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
)

type mockDomainService struct {
	gotHeader, gotResource string
}

func (m *mockDomainService) Authorize(_ context.Context, header, resource string) *authz.Decision {
	m.gotHeader, m.gotResource = header, resource
	if header == "Bearer good-token" {
		return &authz.Decision{
			Effect:      authz.EffectAllow,
			PrincipalID: "u1",
			Resource:    resource,
			Context:     map[string]string{authz.UserContextKey: `{"name":"Ann"}`},
		}
	}
	return &authz.Decision{Effect: authz.EffectDeny, PrincipalID: authz.AnonymousPrincipal, Resource: resource}
}

func TestService_Invoke_MapsEventToPolicy(t *testing.T) {
	domain := &mockDomainService{}
	svc := appauthz.NewService(domain)

	policy := svc.Invoke(context.Background(), authz.TokenEvent{
		Type:               "TOKEN",
		AuthorizationToken: "Bearer good-token",
		MethodArn:          "arn:test/GET/demo",
	})

	assert.Equal(t, "Bearer good-token", domain.gotHeader)
	assert.Equal(t, "arn:test/GET/demo", domain.gotResource)
	assert.Equal(t, "u1", policy.PrincipalID)
	assert.Equal(t, authz.PolicyVersion, policy.PolicyDocument.Version)
	assert.Len(t, policy.PolicyDocument.Statement, 1)
	assert.Equal(t, authz.EffectAllow, policy.PolicyDocument.Statement[0].Effect)
	assert.Equal(t, authz.InvokeAction, policy.PolicyDocument.Statement[0].Action)
	assert.Equal(t, "arn:test/GET/demo", policy.PolicyDocument.Statement[0].Resource)
	assert.Equal(t, `{"name":"Ann"}`, policy.Context[authz.UserContextKey])
}

func TestService_Check_Deny(t *testing.T) {
	svc := appauthz.NewService(&mockDomainService{})

	decision := svc.Check(context.Background(), "Bearer bad-token", "arn:test/GET/demo")

	assert.False(t, decision.Allowed())
	assert.Nil(t, decision.Policy().Context)
}
