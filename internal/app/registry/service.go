package registry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
	"github.com/WilsonSunBritten/serverless-tools/pkg/tracer"
)

type Service interface {
	ListFunctions(ctx context.Context) ([]registry.FunctionDescriptor, error)
	RegisterFunction(ctx context.Context, descriptor registry.FunctionDescriptor) error
}

type service struct {
	domainService registry.Service
}

func NewService(domainService registry.Service) Service {
	return &service{domainService: domainService}
}

func (s *service) ListFunctions(ctx context.Context) ([]registry.FunctionDescriptor, error) {
	ctx, span := tracer.Start(ctx, "app.registry.ListFunctions")
	defer span.End()

	functions, err := s.domainService.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list functions failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("registry.function_count", len(functions)))
	return functions, nil
}

func (s *service) RegisterFunction(ctx context.Context, descriptor registry.FunctionDescriptor) error {
	ctx, span := tracer.Start(ctx, "app.registry.RegisterFunction")
	defer span.End()

	span.SetAttributes(attribute.String("registry.function_name", descriptor.Name))

	if err := s.domainService.Register(ctx, descriptor); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "register function failed")
		return err
	}
	return nil
}
