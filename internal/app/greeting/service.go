package greeting

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/greeting"
	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
	"github.com/WilsonSunBritten/serverless-tools/pkg/tracer"
)

type Service interface {
	Greet(ctx context.Context, authorizerContext map[string]string) (*greeting.Greeting, error)
}

type service struct {
	domainService greeting.Service
}

func NewService(domainService greeting.Service) Service {
	return &service{domainService: domainService}
}

func (s *service) Greet(ctx context.Context, authorizerContext map[string]string) (*greeting.Greeting, error) {
	ctx, span := tracer.Start(ctx, "app.greeting.Greet")
	defer span.End()

	span.SetAttributes(attribute.Int("greeting.context_entries", len(authorizerContext)))

	g, err := s.domainService.Greet(ctx, authorizerContext)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid authorizer context")
		logger.WarnContext(ctx, "protected handler reached without usable context", slog.String("error", err.Error()))
		return nil, err
	}

	return g, nil
}
