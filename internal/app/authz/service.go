package authz

import (
	"context"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
	"github.com/WilsonSunBritten/serverless-tools/pkg/tracer"
	"go.opentelemetry.io/otel/attribute"
)

type Service interface {
	Check(ctx context.Context, authorizationHeader, resource string) *authz.Decision
	Invoke(ctx context.Context, event authz.TokenEvent) *authz.PolicyResponse
}

type service struct {
	domainService authz.Service
}

func NewService(domainService authz.Service) Service {
	return &service{
		domainService: domainService,
	}
}

func (s *service) Check(ctx context.Context, authorizationHeader, resource string) *authz.Decision {
	ctx, span := tracer.Start(ctx, "app.authz.Check")
	defer span.End()

	span.SetAttributes(
		attribute.String("authz.resource", resource),
		attribute.String("authz.token_prefix", tokenPrefix(authorizationHeader)),
	)

	decision := s.domainService.Authorize(ctx, authorizationHeader, resource)

	span.SetAttributes(attribute.Bool("authz.allowed", decision.Allowed()))
	if decision.Allowed() {
		span.SetAttributes(attribute.String("authz.principal_id", decision.PrincipalID))
	}

	return decision
}

// Invoke answers a TOKEN authorizer event with its policy document.
func (s *service) Invoke(ctx context.Context, event authz.TokenEvent) *authz.PolicyResponse {
	ctx, span := tracer.Start(ctx, "app.authz.Invoke")
	defer span.End()

	span.SetAttributes(attribute.String("authz.event_type", event.Type))

	return s.Check(ctx, event.AuthorizationToken, event.MethodArn).Policy()
}

const tokenPrefixLength = 15

func tokenPrefix(header string) string {
	if len(header) > tokenPrefixLength {
		return header[:tokenPrefixLength] + "..."
	}
	return "***"
}
