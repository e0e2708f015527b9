package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
)

type Service interface {
	List(ctx context.Context) ([]FunctionDescriptor, error)
	Register(ctx context.Context, descriptor FunctionDescriptor) error
}

type service struct {
	seed  []FunctionDescriptor
	store Store
}

func NewService(seed []FunctionDescriptor, store Store) Service {
	return &service{
		seed:  seed,
		store: store,
	}
}

func (s *service) List(ctx context.Context) ([]FunctionDescriptor, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored functions: %w", err)
	}

	out := make([]FunctionDescriptor, 0, len(s.seed)+len(stored))
	out = append(out, s.seed...)
	out = append(out, stored...)
	return out, nil
}

func (s *service) Register(ctx context.Context, descriptor FunctionDescriptor) error {
	if err := descriptor.Validate(); err != nil {
		return err
	}

	if err := s.store.Save(ctx, descriptor); err != nil {
		return fmt.Errorf("failed to save function %q: %w", descriptor.Name, err)
	}

	logger.InfoContext(ctx, "function registered",
		slog.String("name", descriptor.Name),
		slog.String("url", descriptor.URL),
	)
	return nil
}
