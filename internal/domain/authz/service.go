package authz

import (
	"context"
	"log/slog"
	"strings"

	"github.com/WilsonSunBritten/serverless-tools/internal/infra/firebase"
	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
)

const bearerPrefix = "Bearer "

type Service interface {
	// Authorize never fails: every problem with the credential yields Deny.
	Authorize(ctx context.Context, authorizationHeader, resource string) *Decision
}

type service struct {
	verifier firebase.Verifier
}

func NewService(verifier firebase.Verifier) Service {
	return &service{verifier: verifier}
}

func (s *service) Authorize(ctx context.Context, authorizationHeader, resource string) *Decision {
	token, ok := strings.CutPrefix(authorizationHeader, bearerPrefix)
	if !ok || token == "" {
		logger.WarnContext(ctx, "authorization header is not a bearer credential",
			slog.Bool("header_present", authorizationHeader != ""),
		)
		return deny(resource)
	}

	claims, err := s.verifier.Verify(ctx, token)
	if err != nil {
		logger.WarnContext(ctx, "token verification failed", slog.String("error", err.Error()))
		return deny(resource)
	}
	if claims == nil || claims.Subject == "" {
		logger.WarnContext(ctx, "verifier returned no subject")
		return deny(resource)
	}

	user, err := UserContext{Email: claims.Email, Name: claims.Name}.Encode()
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode user context", slog.String("error", err.Error()))
		return deny(resource)
	}

	return &Decision{
		Effect:      EffectAllow,
		PrincipalID: claims.Subject,
		Resource:    resource,
		Context:     map[string]string{UserContextKey: user},
	}
}

func deny(resource string) *Decision {
	return &Decision{
		Effect:      EffectDeny,
		PrincipalID: AnonymousPrincipal,
		Resource:    resource,
	}
}
